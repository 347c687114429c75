package cards

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// drawBackground fills the surface from cfg. The solid Color fill always
// goes down first; when img is non-nil it is cover-scaled over it, blurred
// and opacity-blended per cfg, then the optional overlay tint is applied.
// img == nil is the fallback path (no background requested, or its load
// already failed upstream) and produces the plain solid fill.
func drawBackground(dc *gg.Context, img image.Image, cfg BackgroundConfig) {
	fill := parseHex(cfg.Color, color.NRGBA{R: 0x23, G: 0x27, B: 0x2a, A: 0xff})
	dc.SetColor(fill)
	dc.Clear()

	if img != nil {
		w, h := dc.Width(), dc.Height()
		scaled := imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
		if cfg.Blur > 0 {
			scaled = imaging.Blur(scaled, cfg.Blur)
		}
		opacity := 1.0
		if cfg.Opacity != nil {
			opacity = clamp01(*cfg.Opacity)
		}
		drawWithOpacity(dc, scaled, opacity)
	}

	if cfg.OverlayOpacity > 0 {
		overlay := withAlpha(parseHex(cfg.OverlayColor, color.NRGBA{A: 0xff}), cfg.OverlayOpacity)
		dc.SetColor(overlay)
		dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
		dc.Fill()
	}
}

// drawWithOpacity composites img onto the surface with a uniform alpha.
// gg has no global alpha for image draws, so this goes through draw.DrawMask
// on the surface's backing image.
func drawWithOpacity(dc *gg.Context, img image.Image, opacity float64) {
	if opacity >= 1 {
		dc.DrawImage(img, 0, 0)
		return
	}
	if opacity <= 0 {
		return
	}
	dst, ok := dc.Image().(draw.Image)
	if !ok {
		dc.DrawImage(img, 0, 0)
		return
	}
	alpha := image.NewUniform(color.Alpha{A: uint8(opacity * 255)})
	draw.DrawMask(dst, dst.Bounds(), img, image.Point{}, alpha, image.Point{}, draw.Over)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
