// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolkit

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-toolkit/internal/edit"
	"github.com/pdiddy/pdf-toolkit/internal/merge"
	"github.com/pdiddy/pdf-toolkit/internal/pagerange"
	"github.com/pdiddy/pdf-toolkit/internal/sign"
	"github.com/pdiddy/pdf-toolkit/internal/split"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// SplitRequest collects the split parameters as the user gave them. Sizes,
// when not blank, is a comma-separated list of custom part sizes and wins
// over Size. Start is the 1-based first page; zero means page 1.
type SplitRequest struct {
	Input     string
	OutputDir string
	Size      int
	Sizes     string
	Start     int
}

func (r SplitRequest) plan() (split.Plan, error) {
	p := split.Plan{Size: r.Size, Start: r.Start}
	if p.Start == 0 {
		p.Start = 1
	}
	if strings.TrimSpace(r.Sizes) != "" {
		sizes, err := pagerange.ParseSizes(r.Sizes)
		if err != nil {
			return split.Plan{}, err
		}
		p.Sizes = sizes
	}
	return p, nil
}

// PlanSplit resolves a split without writing anything.
func (t *Toolkit) PlanSplit(req SplitRequest) ([]split.Part, types.Result) {
	var parts []split.Part
	res := t.try(OpSplit, func() (outcome, error) {
		p, err := req.plan()
		if err != nil {
			return outcome{}, err
		}
		parts, err = t.splitter.Plan(req.Input, t.outDir(req.OutputDir), p)
		if err != nil {
			return outcome{}, err
		}
		return outcome{message: fmt.Sprintf("%s would be split into %d files", filepath.Base(req.Input), len(parts))}, nil
	})
	return parts, res
}

// Split writes one file per resolved part.
func (t *Toolkit) Split(ctx context.Context, req SplitRequest) types.Result {
	return t.run(ctx, OpSplit, []string{req.Input}, func() (outcome, error) {
		p, err := req.plan()
		if err != nil {
			return outcome{}, err
		}
		dir := t.outDir(req.OutputDir)
		parts, err := t.splitter.Split(req.Input, dir, p, t.status)
		if err != nil {
			return outcome{outputs: partPaths(parts)}, err
		}
		return outcome{
			message: fmt.Sprintf("PDF split into %d files in %s", len(parts), dir),
			outputs: partPaths(parts),
		}, nil
	})
}

func partPaths(parts []split.Part) []string {
	paths := make([]string, len(parts))
	for i, p := range parts {
		paths[i] = p.Path
	}
	return paths
}

// PreviewMerge counts the pages of each input without writing.
func (t *Toolkit) PreviewMerge(ins []string) (merge.Summary, types.Result) {
	var sum merge.Summary
	res := t.try(OpMerge, func() (outcome, error) {
		var err error
		if sum, err = t.merger.Preview(ins); err != nil {
			return outcome{}, err
		}
		return outcome{message: fmt.Sprintf("%d files, %d pages total", len(sum.Inputs), sum.TotalPages)}, nil
	})
	return sum, res
}

// Merge concatenates ins, in order, into one document.
func (t *Toolkit) Merge(ctx context.Context, ins []string, outDir, name string) types.Result {
	return t.run(ctx, OpMerge, ins, func() (outcome, error) {
		sum, err := t.merger.Merge(ins, t.outDir(outDir), name)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			message: fmt.Sprintf("Merged %d files (%d pages) into %s", len(sum.Inputs), sum.TotalPages, sum.Output),
			outputs: []string{sum.Output},
		}, nil
	})
}

// Compress writes an optimized copy of in.
func (t *Toolkit) Compress(ctx context.Context, in, outDir, name string) types.Result {
	return t.run(ctx, OpCompress, []string{in}, func() (outcome, error) {
		r, err := t.compressor.Compress(in, t.outDir(outDir), name)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			message: fmt.Sprintf("Compressed PDF saved as %s: %s", r.Output, r),
			outputs: []string{r.Output},
		}, nil
	})
}

// Convert converts one file, choosing the direction from its extension.
func (t *Toolkit) Convert(ctx context.Context, in, outDir, name string) types.Result {
	return t.run(ctx, OpConvert, []string{in}, func() (outcome, error) {
		out, err := t.converter.Convert(ctx, in, t.outDir(outDir), name)
		if err != nil {
			return outcome{}, err
		}
		return outcome{message: "Converted to " + out, outputs: []string{out}}, nil
	})
}

// ConvertBatch converts each input under its default name, writing one
// status line per file. The Result fails when any file failed.
func (t *Toolkit) ConvertBatch(ctx context.Context, ins []string, outDir string, skipExisting bool) types.Result {
	return t.run(ctx, OpConvert, ins, func() (outcome, error) {
		if len(ins) == 0 {
			return outcome{}, fmt.Errorf("no files to convert: %w", types.ErrInvalidInput)
		}
		br := t.converter.ConvertBatch(ctx, ins, t.outDir(outDir), skipExisting, t.status)
		o := outcome{
			message: fmt.Sprintf("%d converted, %d skipped, %d failed (total: %d)", br.Converted, br.Skipped, br.Failed, br.Total()),
			outputs: br.Outputs,
		}
		if br.HasFailures() {
			return o, fmt.Errorf("%d of %d files failed", br.Failed, br.Total())
		}
		return o, nil
	})
}

// DeletePages removes the 1-based pages in pageList.
func (t *Toolkit) DeletePages(ctx context.Context, in, pageList, outDir, name string) types.Result {
	return t.run(ctx, OpDelete, []string{in}, func() (outcome, error) {
		o, err := t.editor.DeletePages(in, pageList, t.outDir(outDir), name)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			message: fmt.Sprintf("Deleted pages %s, saved as %s", pagerange.Describe(o.Pages), o.Output),
			outputs: []string{o.Output},
		}, nil
	})
}

// RotatePages turns the 1-based pages in pageList by degrees clockwise.
func (t *Toolkit) RotatePages(ctx context.Context, in, pageList string, degrees int, outDir, name string) types.Result {
	return t.run(ctx, OpRotate, []string{in}, func() (outcome, error) {
		o, err := t.editor.RotatePages(in, pageList, degrees, t.outDir(outDir), name)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			message: fmt.Sprintf("Rotated pages %s by %d degrees, saved as %s", pagerange.Describe(o.Pages), degrees, o.Output),
			outputs: []string{o.Output},
		}, nil
	})
}

// ExtractPages copies the 1-based pages in pageList into a new document.
func (t *Toolkit) ExtractPages(ctx context.Context, in, pageList, outDir, name string) types.Result {
	return t.run(ctx, OpExtract, []string{in}, func() (outcome, error) {
		o, err := t.editor.ExtractPages(in, pageList, t.outDir(outDir), name)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			message: fmt.Sprintf("Extracted %d pages to %s", len(o.Pages), o.Output),
			outputs: []string{o.Output},
		}, nil
	})
}

// AddText writes text on one page.
func (t *Toolkit) AddText(ctx context.Context, in string, req edit.TextRequest, outDir, name string) types.Result {
	return t.run(ctx, OpAddText, []string{in}, func() (outcome, error) {
		o, err := t.editor.AddText(in, req, t.outDir(outDir), name)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			message: fmt.Sprintf("Text added on page %d, saved as %s", req.Page, o.Output),
			outputs: []string{o.Output},
		}, nil
	})
}

// SignText stamps a text signature.
func (t *Toolkit) SignText(ctx context.Context, in, outDir, name string, pl sign.Placement, text string, fontSize float64) types.Result {
	return t.run(ctx, OpSign, []string{in}, func() (outcome, error) {
		o, err := t.signer.SignText(in, t.outDir(outDir), name, pl, text, fontSize)
		return signed(o, "Text", err)
	})
}

// SignImage stamps an image signature.
func (t *Toolkit) SignImage(ctx context.Context, in, outDir, name string, pl sign.Placement, imagePath string, w, h float64) types.Result {
	return t.run(ctx, OpSign, []string{in, imagePath}, func() (outcome, error) {
		o, err := t.signer.SignImage(in, t.outDir(outDir), name, pl, imagePath, w, h)
		return signed(o, "Image", err)
	})
}

// SignRendered renders text to an image and stamps it as a signature.
func (t *Toolkit) SignRendered(ctx context.Context, in, outDir, name string, pl sign.Placement, text string) types.Result {
	return t.run(ctx, OpSign, []string{in}, func() (outcome, error) {
		o, err := t.signer.SignRendered(in, t.outDir(outDir), name, pl, text)
		return signed(o, "Rendered", err)
	})
}

func signed(o sign.Outcome, kind string, err error) (outcome, error) {
	if err != nil {
		return outcome{}, err
	}
	return outcome{
		message: fmt.Sprintf("%s signature added on page %d at %d position(s), saved as %s", kind, o.Page+1, len(o.Positions), o.Output),
		outputs: []string{o.Output},
	}, nil
}
