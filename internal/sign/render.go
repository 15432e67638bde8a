// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sign

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Rendered signature canvas in pixels.
const (
	canvasWidth  = 200
	canvasHeight = 60
	canvasPad    = 10
)

// RenderText draws text in black on a white canvas and encodes it as PNG.
// The canvas widens to fit long text.
func RenderText(w io.Writer, text string) error {
	face := basicfont.Face7x13
	width := max(canvasWidth, font.MeasureString(face, text).Ceil()+2*canvasPad)

	img := image.NewRGBA(image.Rect(0, 0, width, canvasHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(canvasPad, 20+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	return png.Encode(w, img)
}

// SignRendered renders text to a temporary image and stamps it like an image
// signature, sized by the configured rendered width and height. The
// temporary image is removed before returning.
func (s *Signer) SignRendered(in, outDir, name string, pl Placement, text string) (Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return Outcome{}, fmt.Errorf("no signature text given: %w", types.ErrInvalidInput)
	}

	tmp, err := os.CreateTemp("", "signature-*.png")
	if err != nil {
		return Outcome{}, fmt.Errorf("creating signature image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := RenderText(tmp, text); err != nil {
		tmp.Close()
		return Outcome{}, fmt.Errorf("rendering signature: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Outcome{}, fmt.Errorf("writing signature image: %w", err)
	}

	s.log.WithFields(logrus.Fields{"image": tmp.Name()}).Debug("rendered signature")
	return s.signImage(in, outDir, name, pl, tmp.Name(), s.cfg.RenderedWidth, s.cfg.RenderedHeight)
}
