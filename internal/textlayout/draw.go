package textlayout

import (
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Shadow default values, applied for zero-valued fields of ShadowSpec.
var (
	defaultShadowColor = color.NRGBA{A: 128}
	defaultShadowBlur  = 5.0
	defaultShadowOff   = 2.0
)

// ShadowSpec describes a drop shadow behind one text draw. A nil *ShadowSpec
// means no shadow.
type ShadowSpec struct {
	Color   color.Color
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// DefaultShadow returns the standard card shadow: half-opaque black, blur 5,
// offset (2, 2).
func DefaultShadow() *ShadowSpec {
	return &ShadowSpec{
		Color:   defaultShadowColor,
		Blur:    defaultShadowBlur,
		OffsetX: defaultShadowOff,
		OffsetY: defaultShadowOff,
	}
}

func (s ShadowSpec) withDefaults() ShadowSpec {
	if s.Color == nil {
		s.Color = defaultShadowColor
	}
	if s.Blur == 0 {
		s.Blur = defaultShadowBlur
	}
	if s.OffsetX == 0 && s.OffsetY == 0 {
		s.OffsetX, s.OffsetY = defaultShadowOff, defaultShadowOff
	}
	return s
}

// DrawString draws s on dc at (x, y) with gg anchor semantics, casting a
// blurred drop shadow first when shadow is non-nil. The face is set on dc
// for the fill pass and on a scratch layer for the shadow pass.
func DrawString(dc *gg.Context, face font.Face, s string, x, y, ax, ay float64, fill color.Color, shadow *ShadowSpec) {
	if s == "" {
		return
	}
	if shadow != nil {
		sp := shadow.withDefaults()
		layer := gg.NewContext(dc.Width(), dc.Height())
		layer.SetFontFace(face)
		layer.SetColor(sp.Color)
		layer.DrawStringAnchored(s, x+sp.OffsetX, y+sp.OffsetY, ax, ay)
		blurred := imaging.Blur(layer.Image(), sp.Blur)
		dc.DrawImage(blurred, 0, 0)
	}
	dc.SetFontFace(face)
	dc.SetColor(fill)
	dc.DrawStringAnchored(s, x, y, ax, ay)
}

// DrawWrapped wraps text to maxWidth and draws the lines top-down starting
// at baseline y, advancing by lineHeight. ax controls horizontal anchoring
// of each line around x. Returns the number of lines drawn.
func DrawWrapped(dc *gg.Context, face font.Face, text string, x, y, lineHeight, maxWidth, ax float64, fill color.Color, shadow *ShadowSpec) int {
	lines := Wrap(text, maxWidth, FaceMeasure(face))
	for i, line := range lines {
		DrawString(dc, face, line, x, y+float64(i)*lineHeight, ax, 0, fill, shadow)
	}
	return len(lines)
}
