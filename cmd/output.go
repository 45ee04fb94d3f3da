// Package cmd — shared output handling.
// Every command that produces HTML can render it as Markdown, PDF or JSON
// instead; the format flags are mutually exclusive and default to HTML.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/core/output"
	"github.com/gaurav-prasanna/coursebuild/core/render"
	"github.com/spf13/cobra"
)

// Output format flag variables.
var (
	flagPDF      bool
	flagMarkdown bool
	flagJSON     bool
)

// addFormatFlags registers the output format flags on cmd.
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	cmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
}

// validateFormatFlags checks that at most one output format is chosen.
func validateFormatFlags() error {
	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() core.Renderer {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer()
	case flagJSON:
		return render.NewJSONRenderer()
	case flagPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewHTMLRenderer()
	}
}

func newWriter() (*output.Writer, error) {
	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}
	return writer, nil
}

// writeRendered renders html with the selected renderer and writes it as
// <stem><ext>.
func writeRendered(stem, html string, meta core.DocumentMeta) error {
	renderer := selectRenderer()
	meta.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := renderer.Render(html, meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	writer, err := newWriter()
	if err != nil {
		return err
	}
	path, err := writer.Write(stem, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// writeRaw writes a finished file as-is.
func writeRaw(name string, data []byte) error {
	writer, err := newWriter()
	if err != nil {
		return err
	}
	path, err := writer.WriteFile(name, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// readInput reads a file argument; "-" reads stdin.
func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
