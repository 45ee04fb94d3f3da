// Package images batch-resizes course images to preset widths and packs
// the results into a zip. Height always follows the source aspect ratio.
package images

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// ZipName is the archive produced for a batch.
const ZipName = "resized_images.zip"

var (
	// ErrNoImages is returned when a batch produces nothing to pack.
	ErrNoImages = errors.New("no images to resize")
	// ErrTooNarrow marks a source narrower than the target width.
	ErrTooNarrow = errors.New("image narrower than target width")
	// ErrUnsupported marks a file that is not jpg, jpeg or png.
	ErrUnsupported = errors.New("unsupported image type")
	// ErrDuplicateName marks an input whose output name is already taken
	// by an earlier image in the batch.
	ErrDuplicateName = errors.New("duplicate output name")
)

// Input is one source image.
type Input struct {
	Name string
	Data []byte
}

// Options controls a resize.
type Options struct {
	Width int
	// Enlarge allows scaling images up to Width.
	Enlarge bool
}

// Resized is one encoded output image.
type Resized struct {
	Name   string
	Width  int
	Height int
	Data   []byte
}

// Skipped records an input that produced no output and why.
type Skipped struct {
	Name string
	Err  error
}

// Report is the outcome of a batch.
type Report struct {
	Resized []Resized
	Skipped []Skipped
}

// IsSupported reports whether name has a jpg, jpeg or png extension.
func IsSupported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// OutputName returns "<stem>-<width><ext>".
func OutputName(name string, width int) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(base, ext), width, ext)
}

// TargetHeight scales origH by width/origW, truncating, with a floor of 1.
func TargetHeight(origW, origH, width int) int {
	h := int(float64(origH) * (float64(width) / float64(origW)))
	if h < 1 {
		h = 1
	}
	return h
}

// Scale resamples src to width pixels wide with Catmull-Rom.
func Scale(src image.Image, width int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, width, TargetHeight(b.Dx(), b.Dy(), width)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// ResizeOne decodes, scales and re-encodes a single image in its original
// format.
func ResizeOne(in Input, opts Options) (*Resized, error) {
	if opts.Width <= 0 {
		return nil, fmt.Errorf("invalid width %d", opts.Width)
	}
	if !IsSupported(in.Name) {
		return nil, ErrUnsupported
	}

	src, format, err := image.Decode(bytes.NewReader(in.Data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", in.Name, err)
	}
	if src.Bounds().Dx() < opts.Width && !opts.Enlarge {
		return nil, ErrTooNarrow
	}

	dst := Scale(src, opts.Width)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpeg.DefaultQuality})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", in.Name, err)
	}

	return &Resized{
		Name:   OutputName(in.Name, opts.Width),
		Width:  dst.Bounds().Dx(),
		Height: dst.Bounds().Dy(),
		Data:   buf.Bytes(),
	}, nil
}

// Batch resizes every input. Per-image problems are collected as skips;
// ErrNoImages is returned only when nothing was resized. Output names are
// unique within a batch: the first input to claim a name keeps it.
func Batch(inputs []Input, opts Options) (*Report, error) {
	report := &Report{}
	taken := make(map[string]bool)
	for _, in := range inputs {
		out, err := ResizeOne(in, opts)
		if err == nil && taken[out.Name] {
			err = fmt.Errorf("%w: %s", ErrDuplicateName, out.Name)
		}
		if err != nil {
			report.Skipped = append(report.Skipped, Skipped{Name: in.Name, Err: err})
			continue
		}
		taken[out.Name] = true
		report.Resized = append(report.Resized, *out)
	}
	if len(report.Resized) == 0 {
		return report, ErrNoImages
	}
	return report, nil
}

// WriteZip packs resized images into a zip written to w.
func WriteZip(w io.Writer, resized []Resized) error {
	zw := zip.NewWriter(w)
	for _, r := range resized {
		f, err := zw.Create(r.Name)
		if err != nil {
			return fmt.Errorf("adding %s to zip: %w", r.Name, err)
		}
		if _, err := f.Write(r.Data); err != nil {
			return fmt.Errorf("writing %s to zip: %w", r.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip: %w", err)
	}
	return nil
}
