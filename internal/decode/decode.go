// Package decode turns image sources into gg image buffers and runs the
// decoding on a bounded pool of worker goroutines.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/gogpu/gg"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// Decoding errors.
var (
	// ErrUnsupportedFormat is returned when no registered decoder accepts
	// the data.
	ErrUnsupportedFormat = errors.New("decode: unsupported format")

	// ErrEmptyData is returned when the source has no bytes.
	ErrEmptyData = errors.New("decode: empty data")

	// ErrEmptySource is returned for an empty source string.
	ErrEmptySource = errors.New("decode: empty source")
)

// Decode decodes an image from r, auto-detecting the format among PNG,
// JPEG, GIF, WebP, BMP and TIFF. It returns the buffer and format name.
func Decode(r io.Reader) (*gg.ImageBuf, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	return gg.ImageBufFromImage(img), format, nil
}

// Bytes decodes an image held in memory.
func Bytes(data []byte) (*gg.ImageBuf, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// File decodes the image named by source from fsys.
func File(fsys fs.FS, source string) (*gg.ImageBuf, error) {
	name, err := SourcePath(source)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("decode: read %s: %w", name, err)
	}
	img, _, err := Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %s: %w", name, err)
	}
	return img, nil
}

// SourcePath converts a document source such as "/img/a.webp?v=2" into a
// valid fs.FS path ("img/a.webp").
func SourcePath(source string) (string, error) {
	s := strings.TrimSpace(source)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimLeft(s, "/")
	if s == "" {
		return "", ErrEmptySource
	}
	name := path.Clean(s)
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("decode: invalid source %q", source)
	}
	return name, nil
}
