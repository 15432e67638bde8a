// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sign places visible signatures on a PDF page: a text box, a raster
// image, or text rendered to an image. A signature goes to one or more
// positions on a single page, either a named preset near the bottom corners
// or explicit coordinates. Coordinates are measured in points from the
// top-left corner of the page.
package sign

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/docfile"
	"github.com/pdiddy/pdf-toolkit/internal/pagerange"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Text signatures occupy a fixed box.
const (
	textBoxWidth  = 200.0
	textBoxHeight = 30.0
)

// ParsePreset accepts "bottom_left", "bottom_right", "both" or "custom";
// dashes are treated as underscores.
func ParsePreset(s string) (types.Preset, error) {
	p := types.Preset(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch p {
	case types.PresetBottomLeft, types.PresetBottomRight, types.PresetBoth, types.PresetCustom:
		return p, nil
	case "":
		return types.PresetBottomLeft, nil
	}
	return "", fmt.Errorf("unknown position %q (want bottom_left, bottom_right, both or custom): %w", s, types.ErrInvalidInput)
}

// Positions resolves a preset to the top-left corners of w x h boxes on a
// page, keeping margin points from the page edges. PresetCustom returns
// custom unchanged and requires at least one position.
func Positions(page pdfengine.PageSize, preset types.Preset, custom []types.Position, w, h, margin float64) ([]types.Position, error) {
	left := types.Position{X: margin, Y: page.Height - h - margin}
	right := types.Position{X: page.Width - w - margin, Y: page.Height - h - margin}

	switch preset {
	case types.PresetBottomLeft:
		return []types.Position{left}, nil
	case types.PresetBottomRight:
		return []types.Position{right}, nil
	case types.PresetBoth:
		return []types.Position{left, right}, nil
	case types.PresetCustom:
		if len(custom) == 0 {
			return nil, fmt.Errorf("custom position needs x and y: %w", types.ErrInvalidInput)
		}
		return custom, nil
	}
	return nil, fmt.Errorf("unknown position %q: %w", preset, types.ErrInvalidInput)
}

// Placement says where a signature goes. Page is 1-based.
type Placement struct {
	Page   int
	Preset types.Preset
	Custom []types.Position
}

// Outcome describes a signed document.
type Outcome struct {
	Output    string
	Page      int // 0-based
	Positions []types.Position
}

// DefaultName returns "signed_<file name of in>".
func DefaultName(in string) string {
	return "signed_" + filepath.Base(in)
}

// Signer signs documents through a PDF engine.
type Signer struct {
	engine pdfengine.Engine
	cfg    types.SignConfig
	log    logrus.FieldLogger
}

// New returns a Signer. Zero fields of cfg take their defaults.
func New(engine pdfengine.Engine, cfg types.SignConfig, log logrus.FieldLogger) *Signer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cfg = types.ToolkitConfig{Sign: cfg}.WithDefaults().Sign
	return &Signer{engine: engine, cfg: cfg, log: log}
}

// target validates in and resolves the page, its size, and the box
// positions for a w x h signature.
func (s *Signer) target(in string, pl Placement, w, h float64) (int, pdfengine.PageSize, []types.Position, error) {
	if err := docfile.ValidatePDF(in); err != nil {
		return 0, pdfengine.PageSize{}, nil, err
	}
	total, err := s.engine.PageCount(in)
	if err != nil {
		return 0, pdfengine.PageSize{}, nil, err
	}
	page, err := pagerange.FromUser(pl.Page, total)
	if err != nil {
		return 0, pdfengine.PageSize{}, nil, err
	}
	size, err := s.engine.PageSize(in, page)
	if err != nil {
		return 0, pdfengine.PageSize{}, nil, err
	}
	positions, err := Positions(size, pl.Preset, pl.Custom, w, h, s.cfg.Margin)
	if err != nil {
		return 0, pdfengine.PageSize{}, nil, err
	}
	return page, size, positions, nil
}

func (s *Signer) output(in, outDir, name string) (string, error) {
	if err := docfile.EnsureDir(outDir); err != nil {
		return "", err
	}
	out := docfile.OutputPath(outDir, name, ".pdf", DefaultName(in))
	if docfile.SamePath(in, out) {
		return "", fmt.Errorf("output %s would overwrite the input: %w", out, types.ErrInvalidInput)
	}
	return out, nil
}

// SignText writes text at every resolved position. A fontSize of zero uses
// the configured text size.
func (s *Signer) SignText(in, outDir, name string, pl Placement, text string, fontSize float64) (Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return Outcome{}, fmt.Errorf("no signature text given: %w", types.ErrInvalidInput)
	}
	if fontSize <= 0 {
		fontSize = s.cfg.TextSize
	}
	page, size, positions, err := s.target(in, pl, textBoxWidth, textBoxHeight)
	if err != nil {
		return Outcome{}, err
	}
	out, err := s.output(in, outDir, name)
	if err != nil {
		return Outcome{}, err
	}

	stamps := make([]pdfengine.TextStamp, len(positions))
	for i, p := range positions {
		// The first line hangs from the top of the box.
		stamps[i] = pdfengine.TextStamp{
			Text:     text,
			X:        p.X,
			Y:        size.Height - p.Y - fontSize,
			FontSize: fontSize,
		}
	}
	s.log.WithFields(logrus.Fields{"in": in, "page": page + 1, "positions": len(stamps)}).Debug("text signature")
	if err := s.engine.StampText(in, out, page, stamps); err != nil {
		return Outcome{}, err
	}
	return Outcome{Output: out, Page: page, Positions: positions}, nil
}

// SignImage fits the image at imagePath into a w x h box at every resolved
// position, keeping its aspect ratio and centring it in the box. Zero sizes
// use the configured image size.
func (s *Signer) SignImage(in, outDir, name string, pl Placement, imagePath string, w, h float64) (Outcome, error) {
	if w <= 0 {
		w = s.cfg.ImageWidth
	}
	if h <= 0 {
		h = s.cfg.ImageHeight
	}
	return s.signImage(in, outDir, name, pl, imagePath, w, h)
}

func (s *Signer) signImage(in, outDir, name string, pl Placement, imagePath string, w, h float64) (Outcome, error) {
	if _, err := docfile.Validate(imagePath, types.KindImage); err != nil {
		return Outcome{}, err
	}
	imgW, imgH, err := docfile.ImageDims(imagePath)
	if err != nil {
		return Outcome{}, err
	}
	page, size, positions, err := s.target(in, pl, w, h)
	if err != nil {
		return Outcome{}, err
	}
	out, err := s.output(in, outDir, name)
	if err != nil {
		return Outcome{}, err
	}
	src, cleanup, err := docfile.PortableImage(imagePath)
	if err != nil {
		return Outcome{}, err
	}
	defer cleanup()

	scale, drawW, drawH := fit(float64(imgW), float64(imgH), w, h)
	stamps := make([]pdfengine.ImageStamp, len(positions))
	for i, p := range positions {
		stamps[i] = pdfengine.ImageStamp{
			Path:  src,
			X:     p.X + (w-drawW)/2,
			Y:     size.Height - p.Y - h + (h-drawH)/2,
			Scale: scale,
		}
	}
	s.log.WithFields(logrus.Fields{"in": in, "image": imagePath, "page": page + 1, "scale": scale}).Debug("image signature")
	if err := s.engine.StampImage(in, out, page, stamps); err != nil {
		return Outcome{}, err
	}
	return Outcome{Output: out, Page: page, Positions: positions}, nil
}

// fit scales an imgW x imgH image to fit inside w x h.
func fit(imgW, imgH, w, h float64) (scale, drawW, drawH float64) {
	scale = min(w/imgW, h/imgH)
	return scale, imgW * scale, imgH * scale
}
