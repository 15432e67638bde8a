// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docfile

import (
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// portableImage lists the image formats the PDF library reads directly.
var portableImage = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// PortableImage returns a path to in that the PDF library can read. BMP and
// GIF inputs are decoded and re-encoded as a temporary PNG, which cleanup
// removes; other formats are returned unchanged with a no-op cleanup.
func PortableImage(in string) (path string, cleanup func(), err error) {
	ext := strings.ToLower(filepath.Ext(in))
	if portableImage[ext] {
		return in, func() {}, nil
	}

	f, err := os.Open(in)
	if err != nil {
		return "", nil, fmt.Errorf("opening image %s: %v: %w", in, err, types.ErrInvalidFile)
	}
	defer f.Close()

	var img image.Image
	switch ext {
	case ".bmp":
		img, err = bmp.Decode(f)
	case ".gif":
		img, err = gif.Decode(f)
	default:
		return "", nil, fmt.Errorf("unsupported image type %s: %w", ext, types.ErrUnsupportedFormat)
	}
	if err != nil {
		return "", nil, fmt.Errorf("decoding %s: %v: %w", filepath.Base(in), err, types.ErrUnsupportedFormat)
	}

	tmp, err := os.CreateTemp("", "pdf-toolkit-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("creating temporary image: %w", err)
	}
	cleanup = func() { os.Remove(tmp.Name()) }

	// Flatten to NRGBA so the copy is a plain truecolour PNG.
	flat := image.NewNRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Src)

	if err := png.Encode(tmp, flat); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("re-encoding %s as PNG: %w", filepath.Base(in), err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temporary image: %w", err)
	}
	return tmp.Name(), cleanup, nil
}
