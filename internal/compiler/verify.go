package compiler

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// VerifyPDF checks that path parses as a PDF with at least one page.
func VerifyPDF(path string) (err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			err = &CompilationError{
				Kind:    KindInvalidArtifact,
				Message: fmt.Sprintf("failed to parse PDF: %s", path),
				Cause:   fmt.Errorf("%v", rec),
			}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return &CompilationError{
			Kind:    KindInvalidArtifact,
			Message: fmt.Sprintf("failed to parse PDF: %s", path),
			Cause:   err,
		}
	}
	defer f.Close()

	if reader.NumPage() == 0 {
		return &CompilationError{
			Kind:    KindInvalidArtifact,
			Message: fmt.Sprintf("PDF has no pages: %s", path),
		}
	}
	return nil
}
