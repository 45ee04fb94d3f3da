// Package cmd — mbz command.
// Repacks a Moodle backup as a plain zip next to the other outputs.
package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/coursebuild/core/archive"
	"github.com/spf13/cobra"
)

var mbzCmd = &cobra.Command{
	Use:   "mbz <backup.mbz>",
	Short: "Convert a Moodle backup (.mbz) to a .zip",
	Long: `Mbz rewrites a Moodle backup, zip or tar.gz, as a standard zip archive with
the same entry paths.

Examples:
  coursebuild mbz backup-moodle2-course-42.mbz --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runMBZ,
}

func init() {
	rootCmd.AddCommand(mbzCmd)
}

func runMBZ(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var buf bytes.Buffer
	res, err := archive.ToZip(data, &buf)
	if err != nil {
		return fmt.Errorf("converting %s: %w", args[0], err)
	}
	log.Info("converted backup", "file", args[0], "format", res.Format, "entries", res.Entries)
	fmt.Fprintf(os.Stdout, "Repacked %d entries from %s backup\n", res.Entries, res.Format)

	return writeRaw(archive.ZipName(args[0]), buf.Bytes())
}
