package cards

import (
	"context"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/youruser/cardforge/internal/textlayout"
)

// Welcome banner layout constants.
const (
	welcomeWidth  = 700
	welcomeHeight = 250

	welcomeAvatarSize   = 160
	welcomeAvatarCX     = 125
	welcomeAvatarCY     = 125
	welcomeAvatarBorder = 4

	welcomeTextX          = 260
	welcomeTitleY         = 95
	welcomeUsernameY      = 150
	welcomeMessageY       = 195
	welcomeMessageWidth   = 410
	welcomeMessageLineGap = 26
)

// RenderWelcome composes the welcome banner and returns it as PNG bytes.
func (r *Renderer) RenderWelcome(ctx context.Context, opts WelcomeOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	buf, err := r.renderWelcome(ctx, opts)
	return buf, withSubject(err, opts.Username)
}

func (r *Renderer) renderWelcome(ctx context.Context, opts WelcomeOptions) ([]byte, error) {
	bg := opts.Background.withDefaults()
	avatar, bgImg, err := r.fetchPair(ctx, opts.Avatar, bg, opts.Username)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(welcomeWidth, welcomeHeight)
	drawBackground(dc, bgImg, bg)

	if err := r.drawAvatar(dc, avatar, welcomeAvatarCX, welcomeAvatarCY,
		welcomeAvatarSize, welcomeAvatarBorder, color.White, opts.Username); err != nil {
		return nil, err
	}

	text := parseHex(opts.TextColor, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	title := opts.Title
	if title == "" {
		title = "WELCOME"
	}

	titleFace := r.face(opts.Font, "bold", 38)
	textlayout.DrawString(dc, titleFace, title,
		welcomeTextX, welcomeTitleY, 0, 0, text, textlayout.DefaultShadow())

	nameFace := r.face(opts.Font, "bold", 28)
	textlayout.DrawString(dc, nameFace, opts.Username,
		welcomeTextX, welcomeUsernameY, 0, 0, text, textlayout.DefaultShadow())

	// Message is body copy: wrapped, no shadow.
	msgFace := r.face(opts.Font, "normal", 18)
	textlayout.DrawWrapped(dc, msgFace, opts.Message,
		welcomeTextX, welcomeMessageY, welcomeMessageLineGap, welcomeMessageWidth, 0, text, nil)

	return encodePNG(dc)
}
