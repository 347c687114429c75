package cards

import (
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/cardforge/internal/assets"
	"github.com/youruser/cardforge/internal/textlayout"
)

// Profile card layout constants.
const (
	profileWidth  = 700
	profileHeight = 560

	profileAvatarSize   = 140
	profileAvatarCY     = 110
	profileAvatarBorder = 4

	profileNameY    = 220
	profileBioY     = 255
	profileBioWidth = 500
	profileBioGap   = 24

	profilePanelX      = 50.0
	profilePanelY      = 330.0
	profilePanelHeight = 90.0
	profilePanelRadius = 12.0

	profileBadgeTop     = 450.0
	profileBadgeSize    = 48
	profileBadgeCols    = 5
	profileBadgeCellW   = 120.0
	profileBadgeNameGap = 16.0
)

// RenderProfile composes the profile card and returns it as PNG bytes.
func (r *Renderer) RenderProfile(ctx context.Context, opts ProfileOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	buf, err := r.renderProfile(ctx, opts)
	return buf, withSubject(err, opts.Username)
}

func (r *Renderer) renderProfile(ctx context.Context, opts ProfileOptions) ([]byte, error) {
	bg := opts.Background.withDefaults()

	// Avatar, background and all badge icons are independent: fetch them
	// concurrently and await the lot before any drawing starts. Badge icon
	// failures are per-badge recoverable (placeholder), never fatal.
	var (
		avatar image.Image
		bgImg  image.Image
		icons  = make([]image.Image, len(opts.Badges))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := r.fetcher.Fetch(gctx, assets.FromString(opts.Avatar))
		if err != nil {
			return &AvatarError{Subject: opts.Username, Err: err}
		}
		avatar = img
		return nil
	})
	if bg.Image != "" {
		g.Go(func() error {
			img, err := r.fetcher.Fetch(gctx, assets.FromString(bg.Image))
			if err != nil {
				r.log.Warn("background load failed, falling back to solid fill",
					"source", bg.Image, "error", err)
				return nil
			}
			bgImg = img
			return nil
		})
	}
	for i, badge := range opts.Badges {
		if badge.Icon == "" {
			continue
		}
		i, badge := i, badge
		g.Go(func() error {
			img, err := r.fetcher.Fetch(gctx, assets.FromString(badge.Icon))
			if err != nil {
				r.log.Warn("badge icon load failed, using placeholder",
					"badge", badge.Name, "source", badge.Icon, "error", err)
				return nil
			}
			icons[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(profileWidth, profileHeight)
	drawBackground(dc, bgImg, bg)

	if err := r.drawAvatar(dc, avatar, profileWidth/2, profileAvatarCY,
		profileAvatarSize, profileAvatarBorder, color.White, opts.Username); err != nil {
		return nil, err
	}

	text := parseHex(opts.TextColor, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	nameFace := r.face(opts.Font, "bold", 32)
	textlayout.DrawString(dc, nameFace, opts.Username,
		profileWidth/2, profileNameY, 0.5, 0, text, textlayout.DefaultShadow())

	// Bio is body copy: wrapped, centered, no shadow.
	bioFace := r.face(opts.Font, "normal", 18)
	textlayout.DrawWrapped(dc, bioFace, opts.Bio,
		profileWidth/2, profileBioY, profileBioGap, profileBioWidth, 0.5, text, nil)

	if len(opts.Stats) > 0 {
		r.drawStatPanel(dc, opts.Stats, opts.Font, text)
	}
	r.drawBadges(dc, opts.Badges, icons, opts.Font, text)

	return encodePNG(dc)
}

// drawStatPanel draws the translucent rounded panel with the stats laid out
// in evenly divided columns, name above value, each centered in its column.
func (r *Renderer) drawStatPanel(dc *gg.Context, stats []Stat, font string, text color.Color) {
	panelWidth := float64(profileWidth) - 2*profilePanelX

	dc.SetColor(color.NRGBA{A: 0x80})
	dc.DrawRoundedRectangle(profilePanelX, profilePanelY, panelWidth, profilePanelHeight, profilePanelRadius)
	dc.Fill()

	nameFace := r.face(font, "normal", 16)
	valueFace := r.face(font, "bold", 24)
	colWidth := panelWidth / float64(len(stats))
	for i, stat := range stats {
		cx := profilePanelX + colWidth*(float64(i)+0.5)
		textlayout.DrawString(dc, nameFace, stat.Name, cx, profilePanelY+32, 0.5, 0, text, nil)
		textlayout.DrawString(dc, valueFace, stat.Value, cx, profilePanelY+68, 0.5, 0, text, nil)
	}
}

// drawBadges lays the badge grid out in fixed columns. icons[i] is the
// pre-fetched icon for badges[i], or nil for the gray placeholder.
func (r *Renderer) drawBadges(dc *gg.Context, badges []Badge, icons []image.Image, font string, text color.Color) {
	if len(badges) == 0 {
		return
	}
	nameFace := r.face(font, "normal", 14)
	gridWidth := profileBadgeCellW * float64(min(len(badges), profileBadgeCols))
	left := (float64(profileWidth) - gridWidth) / 2

	for i, badge := range badges {
		col := i % profileBadgeCols
		row := i / profileBadgeCols
		cx := left + profileBadgeCellW*(float64(col)+0.5)
		cy := profileBadgeTop + float64(row)*(profileBadgeSize+profileBadgeNameGap+24)

		if icons[i] != nil {
			icon := imaging.Fill(icons[i], profileBadgeSize, profileBadgeSize, imaging.Center, imaging.Lanczos)
			dc.DrawImageAnchored(icon, int(cx), int(cy), 0.5, 0.5)
		} else {
			drawBadgePlaceholder(dc, cx, cy)
		}
		textlayout.DrawString(dc, nameFace, badge.Name,
			cx, cy+profileBadgeSize/2+profileBadgeNameGap, 0.5, 0, text, nil)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// drawBadgePlaceholder is the per-badge fallback: a gray rectangle with a
// 1px stroke where the icon would have been.
func drawBadgePlaceholder(dc *gg.Context, cx, cy float64) {
	half := float64(profileBadgeSize) / 2
	dc.SetColor(color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff})
	dc.DrawRectangle(cx-half, cy-half, profileBadgeSize, profileBadgeSize)
	dc.Fill()
	dc.SetColor(color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff})
	dc.SetLineWidth(1)
	dc.DrawRectangle(cx-half, cy-half, profileBadgeSize, profileBadgeSize)
	dc.Stroke()
}
