// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "github.com/pdiddy/pdf-toolkit/internal/docfile"

func (cv *Converter) imageToPDF(in, out string) error {
	src, cleanup, err := docfile.PortableImage(in)
	if err != nil {
		return err
	}
	defer cleanup()
	return cv.engine.ImportImages([]string{src}, out)
}
