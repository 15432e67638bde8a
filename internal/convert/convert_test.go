// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/pdiddy/pdf-toolkit/internal/office"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// fakeOffice implements office.Converter for testing. It writes a marker
// file or returns an error, depending on configuration.
type fakeOffice struct {
	checkErr error
	err      error
	formats  []office.Format
}

func (f *fakeOffice) Name() string { return "fake" }

func (f *fakeOffice) Check(context.Context) error { return f.checkErr }

func (f *fakeOffice) Convert(_ context.Context, _, out string, format office.Format) error {
	f.formats = append(f.formats, format)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(out, []byte("converted"), 0o644)
}

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("input"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for x := 0; x < 16; x++ {
		img.Set(x, 4, color.Black)
	}
	return img
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch filepath.Ext(name) {
	case ".png":
		err = png.Encode(f, testImage())
	case ".bmp":
		err = bmp.Encode(f, testImage())
	case ".gif":
		err = gif.Encode(f, testImage(), nil)
	}
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path    string
		want    Conversion
		wantErr bool
	}{
		{"a.pdf", PDFToWord, false},
		{"a.DOCX", WordToPDF, false},
		{"a.doc", WordToPDF, false},
		{"a.png", ImageToPDF, false},
		{"a.tif", ImageToPDF, false},
		{"a.txt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Detect(tt.path)
			if tt.wantErr {
				if !errors.Is(err, types.ErrUnsupportedFormat) {
					t.Fatalf("want ErrUnsupportedFormat, got %v", err)
				}
				if !strings.Contains(err.Error(), "unsupported file type: .txt") {
					t.Errorf("error should name the extension, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertOffice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		outName    string
		wantOut    string
		wantFormat office.Format
	}{
		{"pdf to word default name", "paper.pdf", "", "paper_converted.docx", office.FormatDOCX},
		{"word to pdf default name", "letter.docx", "", "letter_converted.pdf", office.FormatPDF},
		{"custom name gains extension", "letter.doc", "final", "final.pdf", office.FormatPDF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeInput(t, dir, tt.input)
			outDir := filepath.Join(dir, "out")
			fo := &fakeOffice{}

			out, err := New(nil, fo, nil).Convert(context.Background(), in, outDir, tt.outName)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != filepath.Join(outDir, tt.wantOut) {
				t.Errorf("output = %s, want %s", out, tt.wantOut)
			}
			if len(fo.formats) != 1 || fo.formats[0] != tt.wantFormat {
				t.Errorf("formats = %v, want [%s]", fo.formats, tt.wantFormat)
			}
		})
	}
}

func TestConvertMissingOffice(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "letter.docx")

	_, err := New(nil, nil, nil).Convert(context.Background(), in, dir, "")
	if !errors.Is(err, types.ErrMissingDependency) {
		t.Fatalf("want ErrMissingDependency, got %v", err)
	}
	if !strings.Contains(err.Error(), "LibreOffice not found") {
		t.Errorf("error should mention LibreOffice, got: %v", err)
	}

	fo := &fakeOffice{checkErr: errors.New("no soffice: " + types.ErrMissingDependency.Error())}
	if _, err := New(nil, fo, nil).Convert(context.Background(), in, dir, ""); err == nil {
		t.Fatal("expected error from failing dependency check")
	}
	if len(fo.formats) != 0 {
		t.Error("converter must not run when the dependency check fails")
	}
}

func TestConvertImages(t *testing.T) {
	engine := pdfengine.New(pdfengine.Options{})
	for _, name := range []string{"photo.png", "scan.bmp", "anim.gif"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeImage(t, dir, name)

			out, err := New(engine, nil, nil).Convert(context.Background(), in, dir, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			n, err := engine.PageCount(out)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if n != 1 {
				t.Errorf("pages = %d, want 1", n)
			}
		})
	}
}

func TestConvertRejectsCorruptBMP(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "broken.bmp")
	engine := pdfengine.New(pdfengine.Options{})
	if _, err := New(engine, nil, nil).Convert(context.Background(), in, dir, ""); !errors.Is(err, types.ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	ok := writeInput(t, dir, "a.docx")
	bad := writeInput(t, dir, "b.txt")
	existing := writeInput(t, dir, "c.pdf")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeInput(t, outDir, "c_converted.docx")

	var buf bytes.Buffer
	result := New(nil, &fakeOffice{}, nil).
		ConvertBatch(context.Background(), []string{ok, bad, existing}, outDir, true, &buf)

	if result.Converted != 1 || result.Failed != 1 || result.Skipped != 1 {
		t.Errorf("got %+v, want 1 converted, 1 failed, 1 skipped", result)
	}
	if result.Total() != 3 || !result.HasFailures() {
		t.Errorf("Total() = %d, HasFailures() = %v", result.Total(), result.HasFailures())
	}

	log := buf.String()
	for _, want := range []string{
		"converted: a.docx -> a_converted.pdf",
		"failed:  b.txt",
		"skipped: c.pdf (already exists)",
		"Batch summary: 1 converted, 1 skipped, 1 failed (total: 3)",
	} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}
}
