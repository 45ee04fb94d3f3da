// Package archive re-packs Moodle backups (.mbz) as plain zip files.
// Older Moodle versions write .mbz as zip, newer ones as gzip-compressed
// tar; both are accepted. Entry paths are kept relative to the backup root.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrUnsafePath is returned for entries that would escape the backup root.
	ErrUnsafePath = errors.New("unsafe entry path")
	// ErrUnknownFormat is returned when the input is neither zip nor tar.gz.
	ErrUnknownFormat = errors.New("unrecognised backup format")
)

var (
	zipMagic  = []byte("PK")
	gzipMagic = []byte{0x1f, 0x8b}
)

// Format identifies the container of a backup.
type Format string

const (
	FormatZip   Format = "zip"
	FormatTarGz Format = "tar.gz"
)

// Result summarises a conversion.
type Result struct {
	Format  Format
	Entries int
}

// ZipName returns "<stem>.zip" for a backup file name.
func ZipName(mbzName string) string {
	base := filepath.Base(mbzName)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".zip"
}

// Detect sniffs the container format from the leading bytes.
func Detect(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatZip, nil
	case bytes.HasPrefix(data, gzipMagic):
		return FormatTarGz, nil
	}
	return "", ErrUnknownFormat
}

// ToZip writes the files of the backup in data to w as a zip archive.
// Directory entries are skipped.
func ToZip(data []byte, w io.Writer) (*Result, error) {
	format, err := Detect(data)
	if err != nil {
		return nil, err
	}

	zw := zip.NewWriter(w)
	var n int
	switch format {
	case FormatZip:
		n, err = copyFromZip(data, zw)
	case FormatTarGz:
		n, err = copyFromTarGz(data, zw)
	}
	if err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing zip: %w", err)
	}
	return &Result{Format: format, Entries: n}, nil
}

// CleanEntryPath normalises an archive entry name and rejects names that
// are absolute or climb out of the root.
func CleanEntryPath(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	// Drive letters count as absolute whatever the host OS.
	if strings.HasPrefix(name, "/") || (len(name) >= 2 && name[1] == ':') {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	cleaned := path.Clean(strings.TrimPrefix(name, "./"))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return cleaned, nil
}

func copyFromZip(data []byte, zw *zip.Writer) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	// Insecure names are vetted entry by entry below.
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return 0, fmt.Errorf("reading zip backup: %w", err)
	}

	n := 0
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name, err := CleanEntryPath(f.Name)
		if err != nil {
			return n, err
		}

		rc, err := f.Open()
		if err != nil {
			return n, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		err = writeEntry(zw, name, f.Modified, rc)
		rc.Close()
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func copyFromTarGz(data []byte, zw *zip.Writer) (int, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("reading gzip backup: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	n := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("reading tar backup: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		name, err := CleanEntryPath(hdr.Name)
		if err != nil {
			return n, err
		}
		if err := writeEntry(zw, name, hdr.ModTime, tr); err != nil {
			return n, err
		}
		n++
	}
}

func writeEntry(zw *zip.Writer, name string, modified time.Time, r io.Reader) error {
	f, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("copying %s: %w", name, err)
	}
	return nil
}
