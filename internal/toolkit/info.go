// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"fmt"
	"path/filepath"

	"github.com/pdiddy/pdf-toolkit/internal/docfile"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Info describes a file in one line: "name (N pages, X.Y MB)" for PDFs,
// "name (WxHpx, X.Y MB)" for images and "name (X.Y MB)" otherwise.
// Info is read-only and never journaled.
func (t *Toolkit) Info(path string) types.Result {
	return t.try(OpInfo, func() (outcome, error) {
		kind, err := docfile.Validate(path)
		if err != nil {
			return outcome{}, err
		}
		mb, err := docfile.SizeMB(path)
		if err != nil {
			return outcome{}, fmt.Errorf("reading %s: %v: %w", path, err, types.ErrInvalidFile)
		}
		name := filepath.Base(path)

		switch kind {
		case types.KindPDF:
			n, err := t.engine.PageCount(path)
			if err != nil {
				return outcome{}, err
			}
			return outcome{message: fmt.Sprintf("%s (%d pages, %.1f MB)", name, n, mb)}, nil
		case types.KindImage:
			w, h, err := docfile.ImageDims(path)
			if err != nil {
				return outcome{}, err
			}
			return outcome{message: fmt.Sprintf("%s (%dx%dpx, %.1f MB)", name, w, h, mb)}, nil
		default:
			return outcome{message: fmt.Sprintf("%s (%.1f MB)", name, mb)}, nil
		}
	})
}
