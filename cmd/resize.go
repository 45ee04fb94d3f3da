// Package cmd — resize command.
// Scales images to one preset width and packs them into resized_images.zip.
package cmd

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/gaurav-prasanna/coursebuild/core/images"
	"github.com/spf13/cobra"
)

var (
	flagWidth   int
	flagEnlarge bool
)

var resizeCmd = &cobra.Command{
	Use:   "resize <image>...",
	Short: "Resize images to a preset width and zip them",
	Long: `Resize scales jpg, jpeg and png images to one of the configured widths
(400, 800 or 1900 by default), keeping the aspect ratio. Images narrower than
the width are skipped unless --enlarge is given.

Examples:
  coursebuild resize hero.png campus.jpg --width 800
  coursebuild resize small.png --width 1900 --enlarge`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResize,
}

func init() {
	rootCmd.AddCommand(resizeCmd)

	resizeCmd.Flags().IntVar(&flagWidth, "width", 800, "Target width in pixels (one of images.widths)")
	resizeCmd.Flags().BoolVar(&flagEnlarge, "enlarge", false, "Scale up images narrower than the target width")
}

func runResize(cmd *cobra.Command, args []string) error {
	if !slices.Contains(cfg.Images.Widths, flagWidth) {
		return fmt.Errorf("--width must be one of %v, got %d", cfg.Images.Widths, flagWidth)
	}

	inputs := make([]images.Input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		inputs = append(inputs, images.Input{Name: path, Data: data})
	}

	report, err := images.Batch(inputs, images.Options{Width: flagWidth, Enlarge: flagEnlarge})
	for _, s := range report.Skipped {
		fmt.Fprintf(os.Stderr, "  ✗ Skipped %s: %v\n", s.Name, s.Err)
		log.Warn("image skipped", "file", s.Name, "error", s.Err)
	}
	if err != nil {
		return err
	}

	for _, r := range report.Resized {
		fmt.Fprintf(os.Stdout, "  ✓ %s (%dx%d)\n", r.Name, r.Width, r.Height)
	}

	var buf bytes.Buffer
	if err := images.WriteZip(&buf, report.Resized); err != nil {
		return err
	}
	return writeRaw(images.ZipName, buf.Bytes())
}
