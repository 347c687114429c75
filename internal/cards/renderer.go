// Package cards composes the four card variants (welcome, rank, profile,
// banner) into PNG buffers. Each render call validates its options, fetches
// the card's assets (avatar and background concurrently), then issues a
// fixed sequence of draws onto a fresh surface. Surfaces are per-call; the
// only shared state is the font registry and the circular-mask cache.
package cards

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/youruser/cardforge/internal/assets"
	"github.com/youruser/cardforge/internal/fonts"
	"github.com/youruser/cardforge/internal/logx"
	"github.com/youruser/cardforge/internal/mask"
)

// Config carries the renderer's collaborators. Zero fields get production
// defaults, so cards.New(cards.Config{}) is a working renderer.
type Config struct {
	Fetcher assets.Fetcher
	Fonts   *fonts.Registry
	Masks   *mask.Cache
	Logger  *slog.Logger
}

// Renderer renders card images. Safe for concurrent use: every render
// allocates its own surface and the shared caches are read-mostly.
type Renderer struct {
	fetcher assets.Fetcher
	fonts   *fonts.Registry
	masks   *mask.Cache
	log     *slog.Logger
}

func New(cfg Config) *Renderer {
	r := &Renderer{
		fetcher: cfg.Fetcher,
		fonts:   cfg.Fonts,
		masks:   cfg.Masks,
		log:     logx.OrNop(cfg.Logger),
	}
	if r.fetcher == nil {
		r.fetcher = assets.NewHTTPFetcher()
	}
	if r.fonts == nil {
		r.fonts = fonts.Default()
	}
	if r.masks == nil {
		r.masks = mask.Default()
	}
	return r
}

// face resolves a font face for the requested family, warning once per
// render about unregistered custom families.
func (r *Renderer) face(family, weight string, size float64) font.Face {
	r.fonts.WarnUnknown(r.log, family)
	return r.fonts.Face(fonts.Family{Name: family, Weight: weight}, size)
}

// fetchPair loads the avatar (fatal on failure) and the optional background
// image (recoverable: a failed load logs and leaves bg nil so the composer
// falls back to a solid fill). The two fetches are independent, so they run
// concurrently and are awaited jointly.
func (r *Renderer) fetchPair(ctx context.Context, avatarSrc string, bg BackgroundConfig, subject string) (avatar, background image.Image, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, ferr := r.fetcher.Fetch(gctx, assets.FromString(avatarSrc))
		if ferr != nil {
			return &AvatarError{Subject: subject, Err: ferr}
		}
		avatar = img
		return nil
	})
	if bg.Image != "" {
		g.Go(func() error {
			img, ferr := r.fetcher.Fetch(gctx, assets.FromString(bg.Image))
			if ferr != nil {
				r.log.Warn("background load failed, falling back to solid fill",
					"source", bg.Image, "error", ferr)
				return nil
			}
			background = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return avatar, background, nil
}

// drawAvatar draws the border disc and the circular-cropped avatar centered
// at (cx, cy). Masking failures are fatal and carry the subject identity.
func (r *Renderer) drawAvatar(dc *gg.Context, avatar image.Image, cx, cy float64, size int, borderWidth float64, border color.Color, subject string) error {
	cropped, err := r.masks.CircularCrop(avatar, size)
	if err != nil {
		return &AvatarError{Subject: subject, Err: err}
	}
	if borderWidth > 0 {
		dc.SetColor(border)
		dc.DrawCircle(cx, cy, float64(size)/2+borderWidth)
		dc.Fill()
	}
	dc.DrawImageAnchored(cropped, int(cx), int(cy), 0.5, 0.5)
	return nil
}

// encodePNG serializes the finished surface. This is the sole output of a
// composer; nothing is persisted by the library itself.
func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, &EncodeError{Err: err}
	}
	return buf.Bytes(), nil
}
