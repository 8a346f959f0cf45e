package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxExtractedChars caps text handed to chat prompts.
const MaxExtractedChars = 20000

var ErrNoText = errors.New("no text extracted from PDF")

// ExtractPDFText returns the plain text layer of a PDF. Scanned PDFs without
// a text layer yield ErrNoText.
func ExtractPDFText(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// the reader panics on some malformed xref tables
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("failed to read PDF: %v", p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	result := strings.TrimSpace(buf.String())
	if result == "" {
		return "", ErrNoText
	}
	if len(result) > MaxExtractedChars {
		result = result[:MaxExtractedChars]
	}
	return result, nil
}
