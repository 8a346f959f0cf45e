package rasterize

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// nativeDPI is the resolution at which a PDF point maps to one pixel.
const nativeDPI = 72.0

type fitzEngine struct{}

// LoadFitz checks that MuPDF can open a document before handing out the
// engine.
func LoadFitz(ctx context.Context) (Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := fitz.NewFromMemory(BlankPDF(72, 72))
	if err != nil {
		return nil, fmt.Errorf("mupdf probe: %w", err)
	}
	defer doc.Close()
	if doc.NumPage() != 1 {
		return nil, fmt.Errorf("mupdf probe: expected 1 page, got %d", doc.NumPage())
	}
	return fitzEngine{}, nil
}

func (fitzEngine) RenderFirstPage(data []byte, scale float64) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("open document: empty input")
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() < 1 {
		return nil, ErrNoPages
	}

	img, err := doc.ImageDPI(0, nativeDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("render page 1: %w", err)
	}
	return img, nil
}
