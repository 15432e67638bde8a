// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfengine

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/pagerange"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Options configures the pdfcpu engine.
type Options struct {
	// UserPassword and OwnerPassword open encrypted inputs.
	UserPassword  string
	OwnerPassword string

	// Logger receives debug lines around each library call. Nil discards them.
	Logger *logrus.Logger
}

// PDFCPU implements Engine with github.com/pdfcpu/pdfcpu.
type PDFCPU struct {
	opts Options
	log  *logrus.Logger
}

var _ Engine = (*PDFCPU)(nil)

// New returns a pdfcpu-backed Engine.
func New(opts Options) *PDFCPU {
	// pdfcpu would otherwise install a configuration directory under the
	// user's config dir on first use.
	model.ConfigPath = "disable"

	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &PDFCPU{opts: opts, log: log}
}

// conf builds a fresh library configuration for one call.
func (e *PDFCPU) conf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = e.opts.UserPassword
	conf.OwnerPW = e.opts.OwnerPassword
	return conf
}

func (e *PDFCPU) debug(op string, fields logrus.Fields) {
	fields["op"] = op
	e.log.WithFields(fields).Debug("pdfcpu call")
}

func (e *PDFCPU) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	e.debug("page_count", logrus.Fields{"in": path})
	n, err := api.PageCount(f, e.conf())
	if err != nil {
		return 0, fmt.Errorf("cannot read PDF %s: %v: %w", path, err, types.ErrInvalidFile)
	}
	return n, nil
}

func (e *PDFCPU) PageSize(path string, page int) (PageSize, error) {
	f, err := os.Open(path)
	if err != nil {
		return PageSize{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	e.debug("page_dims", logrus.Fields{"in": path, "page": page + 1})
	dims, err := api.PageDims(f, e.conf())
	if err != nil {
		return PageSize{}, fmt.Errorf("reading page sizes of %s: %v: %w", path, err, types.ErrInvalidFile)
	}
	if page < 0 || page >= len(dims) {
		return PageSize{}, fmt.Errorf("page %d of %d: %w", page+1, len(dims), types.ErrPageOutOfRange)
	}
	return PageSize{Width: dims[page].Width, Height: dims[page].Height}, nil
}

func (e *PDFCPU) WritePages(in, out string, iv types.Interval) error {
	sel := pagerange.Selection(iv)
	e.debug("trim", logrus.Fields{"in": in, "out": out, "pages": sel})
	if err := api.TrimFile(in, out, []string{sel}, e.conf()); err != nil {
		return fmt.Errorf("writing pages %s of %s: %w", sel, in, err)
	}
	return nil
}

func (e *PDFCPU) Merge(ins []string, out string) error {
	e.debug("merge", logrus.Fields{"in": ins, "out": out})
	if err := api.MergeCreateFile(ins, out, false, e.conf()); err != nil {
		return fmt.Errorf("merging into %s: %w", out, err)
	}
	return nil
}

func (e *PDFCPU) Optimize(in, out string) error {
	e.debug("optimize", logrus.Fields{"in": in, "out": out})
	if err := api.OptimizeFile(in, out, e.conf()); err != nil {
		return fmt.Errorf("optimizing %s: %w", in, err)
	}
	return nil
}

func (e *PDFCPU) RemovePages(in, out string, pages []int) error {
	sel := pagerange.Selections(pages)
	e.debug("remove_pages", logrus.Fields{"in": in, "out": out, "pages": sel})
	if err := api.RemovePagesFile(in, out, sel, e.conf()); err != nil {
		return fmt.Errorf("removing pages from %s: %w", in, err)
	}
	return nil
}

func (e *PDFCPU) Rotate(in, out string, pages []int, degrees int) error {
	sel := pagerange.Selections(pages)
	e.debug("rotate", logrus.Fields{"in": in, "out": out, "pages": sel, "degrees": degrees})
	if err := api.RotateFile(in, out, degrees, sel, e.conf()); err != nil {
		return fmt.Errorf("rotating pages of %s: %w", in, err)
	}
	return nil
}

func (e *PDFCPU) Collect(in, out string, pages []int) error {
	sel := pagerange.Selections(pages)
	e.debug("collect", logrus.Fields{"in": in, "out": out, "pages": sel})
	if err := api.CollectFile(in, out, sel, e.conf()); err != nil {
		return fmt.Errorf("collecting pages of %s: %w", in, err)
	}
	return nil
}

func (e *PDFCPU) StampText(in, out string, page int, stamps []TextStamp) error {
	wms := make([]*model.Watermark, 0, len(stamps))
	for _, s := range stamps {
		desc := fmt.Sprintf(
			"fontname:Helvetica, points:%s, position:bl, offset:%s %s, scalefactor:1 abs, rotation:0, fillcolor:#000000, opacity:1",
			points(s.FontSize), num(s.X), num(s.Y))
		wm, err := api.TextWatermark(s.Text, desc, true, false, pdftypes.POINTS)
		if err != nil {
			return fmt.Errorf("preparing text stamp: %w", err)
		}
		wms = append(wms, wm)
	}
	return e.stamp(in, out, page, wms)
}

func (e *PDFCPU) StampImage(in, out string, page int, stamps []ImageStamp) error {
	wms := make([]*model.Watermark, 0, len(stamps))
	for _, s := range stamps {
		desc := fmt.Sprintf(
			"position:bl, offset:%s %s, scalefactor:%s abs, rotation:0, opacity:1",
			num(s.X), num(s.Y), strconv.FormatFloat(s.Scale, 'f', 4, 64))
		wm, err := api.ImageWatermark(s.Path, desc, true, false, pdftypes.POINTS)
		if err != nil {
			return fmt.Errorf("preparing image stamp from %s: %w", s.Path, err)
		}
		wms = append(wms, wm)
	}
	return e.stamp(in, out, page, wms)
}

// stamp applies all watermarks to one page in a single library call.
func (e *PDFCPU) stamp(in, out string, page int, wms []*model.Watermark) error {
	e.debug("stamp", logrus.Fields{"in": in, "out": out, "page": page + 1, "stamps": len(wms)})
	m := map[int][]*model.Watermark{page + 1: wms}
	if err := api.AddWatermarksSliceMapFile(in, out, m, e.conf()); err != nil {
		return fmt.Errorf("stamping page %d of %s: %w", page+1, in, err)
	}
	return nil
}

func (e *PDFCPU) ImportImages(images []string, out string) error {
	// The library appends when out already exists.
	if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replacing %s: %w", out, err)
	}
	e.debug("import_images", logrus.Fields{"in": images, "out": out})
	if err := api.ImportImagesFile(images, out, pdfcpu.DefaultImportConfig(), e.conf()); err != nil {
		return fmt.Errorf("importing images into %s: %w", out, err)
	}
	return nil
}

// points renders a font size the way the library parses it: a whole number
// of at least 1.
func points(size float64) string {
	return strconv.Itoa(max(1, int(math.Round(size))))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
