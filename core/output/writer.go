// Package output handles file naming and writing for coursebuild outputs.
// Every tool writes fixed, well-known file names (HTML_Formatted_Headings,
// processed_course, course_<id>_activities, ...) into one output directory.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as <stem><ext> in the output directory and returns the
// full path. The stem is sanitized to a flat file name.
func (w *Writer) Write(stem string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, sanitize(stem)+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteFile stores data under a complete file name such as
// "resized_images.zip".
func (w *Writer) WriteFile(name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	return w.Write(strings.TrimSuffix(name, ext), data, ext)
}

// CourseStem builds a per-course stem, e.g. course_42_activities.
func CourseStem(courseID, suffix string) string {
	return fmt.Sprintf("course_%s_%s", courseID, suffix)
}

// sanitize replaces characters outside [A-Za-z0-9_.-] with underscores.
func sanitize(s string) string {
	s = filepath.Base(s)
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') ||
			ch == '_' || ch == '-' || ch == '.' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 || s == "." || s == ".." {
		return "output"
	}
	return b.String()
}
