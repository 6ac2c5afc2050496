package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	ErrFormat = errors.New("raster: unknown image format")
	ErrFilter = errors.New("raster: unknown filter")
)

type Format uint8

const (
	PNG Format = iota
	BMP
	TIFF
)

// FormatFor picks the format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("%q: %w", path, ErrFormat)
}

// Encode writes m to w in format f.
func Encode(w io.Writer, m image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, m)
	case BMP:
		return bmp.Encode(w, m)
	case TIFF:
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return ErrFormat
}

// Save writes m to path in the format its extension names.
func Save(path string, m image.Image) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(out, m, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

var filters = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

// ParseFilter returns the resampling filter by name, e.g. "lanczos3".
func ParseFilter(name string) (resize.InterpolationFunction, error) {
	if f, ok := filters[strings.ToLower(name)]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrFilter)
}
