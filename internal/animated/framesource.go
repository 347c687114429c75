// Package animated renders the looping welcome GIF. Per-frame drawing uses
// the same primitives as the static cards; frame extraction from the
// animated background is behind the FrameSource interface so the decoding
// strategy can vary without touching composition.
package animated

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"

	"github.com/youruser/cardforge/internal/assets"
)

// FrameSource extracts an ordered list of raw frames from an image source.
type FrameSource interface {
	Frames(ctx context.Context, src assets.Source) ([]image.Image, error)
}

// GIFSource decodes an animated GIF and coalesces its frames onto a shared
// canvas, honoring per-frame disposal, so each returned frame is a complete
// picture.
type GIFSource struct {
	Fetcher assets.Fetcher
}

func (s GIFSource) Frames(ctx context.Context, src assets.Source) ([]image.Image, error) {
	fetcher := s.Fetcher
	if fetcher == nil {
		fetcher = assets.NewHTTPFetcher()
	}
	b, err := fetcher.FetchBytes(ctx, src)
	if err != nil {
		return nil, err
	}
	g, err := gif.DecodeAll(bytes.NewReader(b))
	if err != nil {
		return nil, &assets.LoadError{Source: src.String(), Err: fmt.Errorf("decode gif: %w", err)}
	}
	if len(g.Image) == 0 {
		return nil, &assets.LoadError{Source: src.String(), Err: fmt.Errorf("gif has no frames")}
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(g.Image))
	for i, frame := range g.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		snap := image.NewRGBA(bounds)
		copy(snap.Pix, canvas.Pix)
		frames = append(frames, snap)

		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalBackground {
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		}
	}
	return frames, nil
}

// StillSource treats any decodable image as a one-frame animation, letting
// static backgrounds drive the same frame loop.
type StillSource struct {
	Fetcher assets.Fetcher
}

func (s StillSource) Frames(ctx context.Context, src assets.Source) ([]image.Image, error) {
	fetcher := s.Fetcher
	if fetcher == nil {
		fetcher = assets.NewHTTPFetcher()
	}
	img, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	return []image.Image{img}, nil
}
