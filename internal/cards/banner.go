package cards

import (
	"context"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fogleman/gg"

	"github.com/youruser/cardforge/internal/textlayout"
)

// Server banner layout constants.
const (
	bannerWidth  = 960
	bannerHeight = 540

	bannerIconSize   = 160
	bannerIconCY     = 190
	bannerIconBorder = 5

	bannerNameY    = 340
	bannerMembersY = 395

	bannerQRSize   = 96
	bannerQRMargin = 24
)

// memberPrinter locale-formats the member count ("12,345").
var memberPrinter = message.NewPrinter(language.English)

// RenderBanner composes the server banner and returns it as PNG bytes.
func (r *Renderer) RenderBanner(ctx context.Context, opts BannerOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	buf, err := r.renderBanner(ctx, opts)
	return buf, withSubject(err, opts.ServerName)
}

func (r *Renderer) renderBanner(ctx context.Context, opts BannerOptions) ([]byte, error) {
	bg := opts.Background.withDefaults()
	// The banner always dims its background so the large text stays legible.
	if bg.OverlayOpacity == 0 {
		bg.OverlayOpacity = 0.6
	}

	icon, bgImg, err := r.fetchPair(ctx, opts.Icon, bg, opts.ServerName)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(bannerWidth, bannerHeight)
	drawBackground(dc, bgImg, bg)

	if err := r.drawAvatar(dc, icon, bannerWidth/2, bannerIconCY,
		bannerIconSize, bannerIconBorder, color.White, opts.ServerName); err != nil {
		return nil, err
	}

	text := parseHex(opts.TextColor, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	nameFace := r.face(opts.Font, "bold", 48)
	textlayout.DrawString(dc, nameFace, opts.ServerName,
		bannerWidth/2, bannerNameY, 0.5, 0, text, textlayout.DefaultShadow())

	membersFace := r.face(opts.Font, "normal", 26)
	members := memberPrinter.Sprintf("%d Members", opts.MemberCount)
	textlayout.DrawString(dc, membersFace, members,
		bannerWidth/2, bannerMembersY, 0.5, 0, text, nil)

	if opts.InviteURL != "" {
		r.drawInviteQR(dc, opts.InviteURL)
	}

	return encodePNG(dc)
}

// drawInviteQR places a small invite QR code in the bottom-right corner.
// QR generation failures are decorative-stage failures: logged and skipped.
func (r *Renderer) drawInviteQR(dc *gg.Context, url string) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		r.log.Warn("invite QR generation failed, skipping", "url", url, "error", err)
		return
	}
	x := bannerWidth - bannerQRMargin - bannerQRSize
	y := bannerHeight - bannerQRMargin - bannerQRSize
	dc.DrawImage(q.Image(bannerQRSize), x, y)
}
