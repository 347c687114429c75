package animated

import (
	"context"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/cardforge/internal/assets"
	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/fonts"
	"github.com/youruser/cardforge/internal/logx"
	"github.com/youruser/cardforge/internal/mask"
	"github.com/youruser/cardforge/internal/textlayout"
)

// Animated welcome layout and encoding constants.
const (
	gifWidth  = 500
	gifHeight = 250

	gifAvatarSize   = 120
	gifAvatarCX     = 250
	gifAvatarCY     = 95
	gifAvatarBorder = 3

	gifTitleY    = 190
	gifUsernameY = 225

	// maxFrames hard-caps the loop regardless of what was requested.
	maxFrames = 60
	// defaultFrames is used when the request does not say.
	defaultFrames = 30
	// frameDelay is the fixed inter-frame delay in 1/100ths of a second.
	frameDelay = 6
)

// WelcomeGIFOptions configures the animated welcome loop.
type WelcomeGIFOptions struct {
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	Title      string `json:"title,omitempty"` // default "WELCOME"
	Background string `json:"background"`      // animated GIF URL or path
	Frames     int    `json:"frames,omitempty"`
	TextColor  string `json:"text_color,omitempty"`
	Font       string `json:"font,omitempty"`
}

func (o *WelcomeGIFOptions) Validate() error {
	if o.Username == "" {
		return &cards.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if o.Avatar == "" {
		return &cards.ValidationError{Field: "avatar", Reason: "must not be empty"}
	}
	if o.Background == "" {
		return &cards.ValidationError{Field: "background", Reason: "must not be empty"}
	}
	if o.Frames < 0 {
		return &cards.ValidationError{Field: "frames", Reason: "must not be negative"}
	}
	return nil
}

// Config carries the composer's collaborators; zero fields get production
// defaults.
type Config struct {
	Fetcher assets.Fetcher
	Source  FrameSource
	Fonts   *fonts.Registry
	Masks   *mask.Cache
	Logger  *slog.Logger
}

// Composer renders looping welcome GIFs.
type Composer struct {
	fetcher assets.Fetcher
	source  FrameSource
	fonts   *fonts.Registry
	masks   *mask.Cache
	log     *slog.Logger
}

func New(cfg Config) *Composer {
	c := &Composer{
		fetcher: cfg.Fetcher,
		source:  cfg.Source,
		fonts:   cfg.Fonts,
		masks:   cfg.Masks,
		log:     logx.OrNop(cfg.Logger),
	}
	if c.fetcher == nil {
		c.fetcher = assets.NewHTTPFetcher()
	}
	if c.source == nil {
		c.source = GIFSource{Fetcher: c.fetcher}
	}
	if c.fonts == nil {
		c.fonts = fonts.Default()
	}
	if c.masks == nil {
		c.masks = mask.Default()
	}
	return c
}

// RenderWelcomeGIF composes the looping welcome animation and returns it as
// GIF bytes. Avatar fetch and background frame extraction run concurrently;
// either failing aborts before any frame is composed. Partial output is
// never returned.
func (c *Composer) RenderWelcomeGIF(ctx context.Context, opts WelcomeGIFOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var (
		avatarImg image.Image
		bgFrames  []image.Image
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := c.fetcher.Fetch(gctx, assets.FromString(opts.Avatar))
		if err != nil {
			return &cards.AvatarError{Subject: opts.Username, Err: err}
		}
		avatarImg = img
		return nil
	})
	g.Go(func() error {
		frames, err := c.source.Frames(gctx, assets.FromString(opts.Background))
		if err != nil {
			return err
		}
		bgFrames = frames
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	avatar, err := c.masks.CircularCrop(avatarImg, gifAvatarSize)
	if err != nil {
		return nil, &cards.AvatarError{Subject: opts.Username, Err: err}
	}

	n := frameBudget(opts.Frames, len(bgFrames))
	out := &gif.GIF{LoopCount: 0} // 0 = loop forever

	text := parseText(opts.TextColor)
	title := opts.Title
	if title == "" {
		title = "WELCOME"
	}
	titleFace := c.fonts.Face(fonts.Family{Name: opts.Font, Weight: "bold"}, 28)
	nameFace := c.fonts.Face(fonts.Family{Name: opts.Font, Weight: "normal"}, 20)
	c.fonts.WarnUnknown(c.log, opts.Font)

	for i := 0; i < n; i++ {
		bg := bgFrames[frameIndex(i, len(bgFrames))]

		dc := gg.NewContext(gifWidth, gifHeight)
		dc.DrawImage(imaging.Fill(bg, gifWidth, gifHeight, imaging.Center, imaging.Lanczos), 0, 0)

		// Dark overlay keeps the text readable over any background frame.
		dc.SetColor(color.NRGBA{A: 0x99})
		dc.DrawRectangle(0, 0, gifWidth, gifHeight)
		dc.Fill()

		dc.SetColor(color.White)
		dc.DrawCircle(gifAvatarCX, gifAvatarCY, float64(gifAvatarSize)/2+gifAvatarBorder)
		dc.Fill()
		dc.DrawImageAnchored(avatar, gifAvatarCX, gifAvatarCY, 0.5, 0.5)

		textlayout.DrawString(dc, titleFace, title,
			gifWidth/2, gifTitleY, 0.5, 0, text, textlayout.DefaultShadow())
		textlayout.DrawString(dc, nameFace, opts.Username,
			gifWidth/2, gifUsernameY, 0.5, 0, text, nil)

		out.Image = append(out.Image, quantize(dc.Image()))
		out.Delay = append(out.Delay, frameDelay)
	}

	return encodeGIF(out)
}

// frameBudget bounds the loop: the requested count (defaultFrames when
// unset) capped at maxFrames. A short source does not shrink the loop; it
// is cycled through by frameIndex instead.
func frameBudget(requested, available int) int {
	if available <= 0 {
		return 0
	}
	if requested <= 0 {
		requested = defaultFrames
	}
	if requested > maxFrames {
		return maxFrames
	}
	return requested
}

// frameIndex modulo-cycles through the available background frames.
func frameIndex(i, available int) int {
	return i % available
}

// quantize reduces a composed frame to a paletted image for GIF encoding.
func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

// encodeGIF writes the assembled animation through a temp file that is
// removed on every exit path, then returns the bytes. The encoder only
// finalizes once all frames are added; callers never see partial output.
func encodeGIF(g *gif.GIF) ([]byte, error) {
	tmp, err := os.CreateTemp("", "cardforge-*.gif")
	if err != nil {
		return nil, &cards.EncodeError{Err: err}
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := gif.EncodeAll(tmp, g); err != nil {
		return nil, &cards.EncodeError{Err: err}
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, &cards.EncodeError{Err: err}
	}
	buf, err := io.ReadAll(tmp)
	if err != nil {
		return nil, &cards.EncodeError{Err: err}
	}
	return buf, nil
}

func parseText(s string) color.Color {
	if s == "" {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	// Defer to the cards color rules so both surfaces accept the same input.
	return cards.ParseColor(s, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
}
