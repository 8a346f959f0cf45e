// Package rasterize renders the first page of a PDF into a PNG preview.
package rasterize

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/singleflight"
)

const (
	// Scale is applied to the page's native size.
	Scale = 2.0

	PreviewName        = "resume-preview.png"
	PreviewContentType = "image/png"
)

var ErrNoPages = errors.New("document has no pages")

// Engine renders page 1 of a PDF at the given scale.
type Engine interface {
	RenderFirstPage(pdf []byte, scale float64) (image.Image, error)
}

// Loader prepares an Engine. It runs at most once successfully per Rasterizer
// and its context is never cancelled by a caller.
type Loader func(ctx context.Context) (Engine, error)

type Preview struct {
	Name        string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// Result is either a rendered preview or a failure. File is nil exactly
// when Err is set.
type Result struct {
	ImageURL string
	File     *Preview
	Err      string
}

func (r Result) OK() bool {
	return r.File != nil
}

type Rasterizer struct {
	load  Loader
	group singleflight.Group

	mu     sync.RWMutex
	engine Engine
}

// New returns a Rasterizer that loads its engine on first use. A nil loader
// selects the MuPDF engine.
func New(load Loader) *Rasterizer {
	if load == nil {
		load = LoadFitz
	}
	return &Rasterizer{load: load}
}

// Render never returns a partial result: any error or panic yields a
// Result with only Err set.
func (r *Rasterizer) Render(ctx context.Context, pdf []byte) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = failure(fmt.Errorf("renderer panic: %v", p))
		}
	}()

	engine, err := r.engineFor(ctx)
	if err != nil {
		return failure(fmt.Errorf("load renderer: %w", err))
	}
	if err := ctx.Err(); err != nil {
		return failure(err)
	}

	img, err := engine.RenderFirstPage(pdf, Scale)
	if err != nil {
		return failure(err)
	}
	if img == nil {
		return failure(errors.New("renderer returned no image"))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return failure(fmt.Errorf("encode png: %w", err))
	}

	bounds := img.Bounds()
	data := buf.Bytes()
	return Result{
		ImageURL: "data:" + PreviewContentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		File: &Preview{
			Name:        PreviewName,
			ContentType: PreviewContentType,
			Data:        data,
			Width:       bounds.Dx(),
			Height:      bounds.Dy(),
		},
	}
}

func (r *Rasterizer) engineFor(ctx context.Context) (Engine, error) {
	r.mu.RLock()
	e := r.engine
	r.mu.RUnlock()
	if e != nil {
		return e, nil
	}

	v, err, _ := r.group.Do("engine", func() (any, error) {
		r.mu.RLock()
		e := r.engine
		r.mu.RUnlock()
		if e != nil {
			return e, nil
		}

		// the load outlives any single caller
		e, err := r.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, errors.New("loader returned no engine")
		}
		r.mu.Lock()
		r.engine = e
		r.mu.Unlock()
		log.Debug("pdf renderer loaded")
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Engine), nil
}

func failure(err error) Result {
	msg := "Failed to convert PDF"
	if err != nil && err.Error() != "" {
		msg += ": " + err.Error()
	}
	return Result{Err: msg}
}
