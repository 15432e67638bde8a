// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns documents into other formats: PDF to Word, Word to
// PDF, and images to PDF. The conversion is chosen from the input extension.
// Office conversions run through LibreOffice; image conversions go straight
// to the PDF library.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/docfile"
	"github.com/pdiddy/pdf-toolkit/internal/office"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Conversion names one supported conversion.
type Conversion string

const (
	PDFToWord  Conversion = "pdf_to_word"
	WordToPDF  Conversion = "word_to_pdf"
	ImageToPDF Conversion = "image_to_pdf"
)

// Describe returns a human-readable label such as "PDF -> Word".
func (c Conversion) Describe() string {
	switch c {
	case PDFToWord:
		return "PDF -> Word"
	case WordToPDF:
		return "Word -> PDF"
	case ImageToPDF:
		return "Image -> PDF"
	}
	return string(c)
}

// Ext returns the output extension for c.
func (c Conversion) Ext() string {
	if c == PDFToWord {
		return ".docx"
	}
	return ".pdf"
}

// Detect picks the conversion for path from its extension.
func Detect(path string) (Conversion, error) {
	switch docfile.KindOf(path) {
	case types.KindPDF:
		return PDFToWord, nil
	case types.KindWord:
		return WordToPDF, nil
	case types.KindImage:
		return ImageToPDF, nil
	}
	return "", fmt.Errorf("unsupported file type: %s: %w", strings.ToLower(filepath.Ext(path)), types.ErrUnsupportedFormat)
}

// DefaultName returns "<stem>_converted<ext>" for in.
func DefaultName(in string, c Conversion) string {
	return docfile.Stem(in) + "_converted" + c.Ext()
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Outputs   []string
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Converter dispatches each input to the right backend.
type Converter struct {
	engine pdfengine.Engine
	office office.Converter
	log    logrus.FieldLogger
}

// New returns a Converter. office may be nil when only image conversions
// are needed; Office conversions then fail with ErrMissingDependency.
func New(engine pdfengine.Engine, oc office.Converter, log logrus.FieldLogger) *Converter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Converter{engine: engine, office: oc, log: log}
}

// CheckDependencies reports whether the backend for c can run.
func (cv *Converter) CheckDependencies(ctx context.Context, c Conversion) error {
	if c == ImageToPDF {
		return nil
	}
	if cv.office == nil {
		return fmt.Errorf("%s: %w", office.MissingMessage, types.ErrMissingDependency)
	}
	return cv.office.Check(ctx)
}

// Convert converts in and writes the result to outDir/name, or to
// outDir/DefaultName when name is empty. It returns the output path.
func (cv *Converter) Convert(ctx context.Context, in, outDir, name string) (string, error) {
	if _, err := docfile.Validate(in); err != nil {
		return "", err
	}
	c, err := Detect(in)
	if err != nil {
		return "", err
	}
	if err := cv.CheckDependencies(ctx, c); err != nil {
		return "", err
	}
	if err := docfile.EnsureDir(outDir); err != nil {
		return "", err
	}

	out := docfile.OutputPath(outDir, name, c.Ext(), DefaultName(in, c))
	cv.log.WithFields(logrus.Fields{"in": in, "out": out, "conversion": c}).Debug("converting")

	switch c {
	case PDFToWord:
		err = cv.office.Convert(ctx, in, out, office.FormatDOCX)
	case WordToPDF:
		err = cv.office.Convert(ctx, in, out, office.FormatPDF)
	case ImageToPDF:
		err = cv.imageToPDF(in, out)
	}
	if err != nil {
		return "", fmt.Errorf("%s conversion failed: %w", c.Describe(), err)
	}
	return out, nil
}

// ConvertBatch converts each input into outDir under its default name,
// printing per-file status to w and returning a summary. With skipExisting,
// inputs whose default output already exists are skipped.
func (cv *Converter) ConvertBatch(ctx context.Context, ins []string, outDir string, skipExisting bool, w io.Writer) BatchResult {
	var result BatchResult
	for i, in := range ins {
		base := filepath.Base(in)
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(ins), base)

		if skipExisting {
			if c, err := Detect(in); err == nil {
				if _, err := os.Stat(filepath.Join(outDir, DefaultName(in, c))); err == nil {
					fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
					result.Skipped++
					continue
				}
			}
		}

		out, err := cv.Convert(ctx, in, outDir, "")
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "converted: %s -> %s\n", base, filepath.Base(out))
		result.Converted++
		result.Outputs = append(result.Outputs, out)
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
