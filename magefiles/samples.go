//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pdf-toolkit/internal/pdftest"
)

// samplesDir holds generated documents for trying the CLI by hand.
const samplesDir = "samples"

var samples = []struct {
	name          string
	pages         int
	width, height int
}{
	{"letter_10.pdf", 10, pdftest.LetterWidth, pdftest.LetterHeight},
	{"letter_3.pdf", 3, pdftest.LetterWidth, pdftest.LetterHeight},
	{"a4_5.pdf", 5, 595, 842},
}

// Samples writes small PDFs into samples/ for manual runs, e.g.
// "pdf-toolkit split samples/letter_10.pdf --size 3".
func Samples() error {
	if err := os.MkdirAll(samplesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", samplesDir, err)
	}
	for _, s := range samples {
		path := filepath.Join(samplesDir, s.name)
		if err := os.WriteFile(path, pdftest.BuildSized(s.pages, s.width, s.height), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	return nil
}
