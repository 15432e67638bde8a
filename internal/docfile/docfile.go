// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docfile validates document references and prepares output paths.
// A document reference is valid when it exists, is a regular file, and has an
// extension the toolkit knows how to handle.
package docfile

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var kindByExt = map[string]types.DocumentKind{
	".pdf":  types.KindPDF,
	".docx": types.KindWord,
	".doc":  types.KindWord,
	".jpg":  types.KindImage,
	".jpeg": types.KindImage,
	".png":  types.KindImage,
	".bmp":  types.KindImage,
	".tiff": types.KindImage,
	".tif":  types.KindImage,
	".gif":  types.KindImage,
	".webp": types.KindImage,
}

// KindOf classifies path by its extension. It does not touch the file system.
func KindOf(path string) types.DocumentKind {
	return kindByExt[strings.ToLower(filepath.Ext(path))]
}

// Validate checks that path exists, is a regular file, and is of one of the
// wanted kinds (any known kind when want is empty). It returns the kind.
func Validate(path string, want ...types.DocumentKind) (types.DocumentKind, error) {
	if strings.TrimSpace(path) == "" {
		return types.KindUnknown, fmt.Errorf("no file given: %w", types.ErrInvalidFile)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.KindUnknown, fmt.Errorf("file not found: %s: %w", path, types.ErrInvalidFile)
		}
		return types.KindUnknown, fmt.Errorf("checking %s: %v: %w", path, err, types.ErrInvalidFile)
	}
	if !info.Mode().IsRegular() {
		return types.KindUnknown, fmt.Errorf("not a regular file: %s: %w", path, types.ErrInvalidFile)
	}

	kind := KindOf(path)
	if kind == types.KindUnknown {
		return kind, fmt.Errorf("unsupported file type %q: %w", filepath.Ext(path), types.ErrUnsupportedFormat)
	}
	if len(want) == 0 {
		return kind, nil
	}
	for _, k := range want {
		if k == kind {
			return kind, nil
		}
	}
	return kind, fmt.Errorf("%s is a %s file, want %s: %w", filepath.Base(path), kind, joinKinds(want), types.ErrUnsupportedFormat)
}

// ValidatePDF is shorthand for Validate(path, types.KindPDF).
func ValidatePDF(path string) error {
	_, err := Validate(path, types.KindPDF)
	return err
}

func joinKinds(kinds []types.DocumentKind) string {
	s := make([]string, len(kinds))
	for i, k := range kinds {
		s[i] = string(k)
	}
	return strings.Join(s, " or ")
}

// EnsureDir creates dir when it does not exist. A path that exists but is
// not a directory is an error.
func EnsureDir(dir string) error {
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("output path exists but is not a directory: %s: %w", dir, types.ErrInvalidFile)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("checking output directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// SamePath reports whether a and b name the same file location.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputName normalises a user-supplied output name and makes sure it ends
// in ext (".pdf", ".docx"). An empty name yields fallback. Directory
// components are dropped; outputs always land in the output directory.
func OutputName(name, ext, fallback string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return fallback
	}
	name = filepath.Base(name)
	if !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return name
}

// OutputPath joins dir and the normalised output name.
func OutputPath(dir, name, ext, fallback string) string {
	return filepath.Join(dir, OutputName(name, ext, fallback))
}

// SizeMB returns the size of path in megabytes.
func SizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return float64(info.Size()) / (1024 * 1024), nil
}

// ImageDims returns the pixel dimensions of an image file.
func ImageDims(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("reading image %s: %v: %w", path, err, types.ErrUnsupportedFormat)
	}
	return cfg.Width, cfg.Height, nil
}
