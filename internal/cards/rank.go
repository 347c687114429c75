package cards

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/youruser/cardforge/internal/textlayout"
)

// Rank card layout constants.
const (
	rankWidth  = 934
	rankHeight = 282

	rankAvatarSize   = 180
	rankAvatarCX     = 140
	rankAvatarCY     = 141
	rankAvatarBorder = 4

	rankTextX     = 280
	rankNameY     = 118
	rankBarX      = 280.0
	rankBarY      = 168.0
	rankBarWidth  = 580.0
	rankBarHeight = 38.0
)

// RenderRank composes the rank card and returns it as PNG bytes.
func (r *Renderer) RenderRank(ctx context.Context, opts RankOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	buf, err := r.renderRank(ctx, opts)
	return buf, withSubject(err, opts.Username)
}

func (r *Renderer) renderRank(ctx context.Context, opts RankOptions) ([]byte, error) {
	bg := opts.Background.withDefaults()
	avatar, bgImg, err := r.fetchPair(ctx, opts.Avatar, bg, opts.Username)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(rankWidth, rankHeight)
	drawBackground(dc, bgImg, bg)

	if err := r.drawAvatar(dc, avatar, rankAvatarCX, rankAvatarCY,
		rankAvatarSize, rankAvatarBorder, color.White, opts.Username); err != nil {
		return nil, err
	}

	text := parseHex(opts.TextColor, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	barColor := parseHex(opts.BarColor, color.NRGBA{R: 0x58, G: 0x65, B: 0xf2, A: 0xff})
	trackColor := parseHex(opts.TrackColor, color.NRGBA{R: 0x48, G: 0x4b, B: 0x4e, A: 0xff})
	shadow := textlayout.DefaultShadow()

	nameFace := r.face(opts.Font, "bold", 30)
	textlayout.DrawString(dc, nameFace, opts.Username,
		rankTextX, rankNameY, 0, 0, text, shadow)

	// Level and rank, right-aligned along the top edge.
	statFace := r.face(opts.Font, "bold", 24)
	textlayout.DrawString(dc, statFace, fmt.Sprintf("Level %d", opts.Level),
		rankWidth-40, 60, 1, 0, text, shadow)
	textlayout.DrawString(dc, statFace, fmt.Sprintf("Rank #%d", opts.Rank),
		rankWidth-40, 95, 1, 0, text, shadow)

	// XP fraction above the bar's right end, no shadow.
	xpFace := r.face(opts.Font, "normal", 18)
	textlayout.DrawString(dc, xpFace, fmt.Sprintf("%d / %d XP", opts.XP, opts.RequiredXP),
		rankBarX+rankBarWidth, rankBarY-12, 1, 0, text, nil)

	drawProgressBar(dc, opts.XP, opts.RequiredXP, barColor, trackColor)

	// Percentage label centered in the bar, no shadow.
	labelFace := r.face(opts.Font, "bold", 18)
	textlayout.DrawString(dc, labelFace, progressLabel(opts.XP, opts.RequiredXP),
		rankBarX+rankBarWidth/2, rankBarY+rankBarHeight/2+6, 0.5, 0, text, nil)

	return encodePNG(dc)
}

// drawProgressBar draws the track, the fill scaled by xp/required, and an
// outline stroke.
func drawProgressBar(dc *gg.Context, xp, required int, bar, track color.Color) {
	radius := rankBarHeight / 2

	dc.SetColor(track)
	dc.DrawRoundedRectangle(rankBarX, rankBarY, rankBarWidth, rankBarHeight, radius)
	dc.Fill()

	if fill := progressFill(xp, required, rankBarWidth); fill > 0 {
		dc.SetColor(bar)
		dc.DrawRoundedRectangle(rankBarX, rankBarY, fill, rankBarHeight, radius)
		dc.Fill()
	}

	dc.SetColor(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x59})
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(rankBarX, rankBarY, rankBarWidth, rankBarHeight, radius)
	dc.Stroke()
}

// progressRatio clamps xp/required to [0, 1].
func progressRatio(xp, required int) float64 {
	if required <= 0 {
		return 0
	}
	return clamp01(float64(xp) / float64(required))
}

// progressFill is the fill width for a bar of the given total width.
func progressFill(xp, required int, barWidth float64) float64 {
	return progressRatio(xp, required) * barWidth
}

// progressLabel renders the rounded percentage, e.g. 1250/2000 -> "63%".
func progressLabel(xp, required int) string {
	return fmt.Sprintf("%d%%", int(math.Round(progressRatio(xp, required)*100)))
}
