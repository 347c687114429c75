package cards

import (
	"fmt"
	"image/color"
)

// ParseColor parses a card color string with the same rules as the card
// composers, returning fallback on bad input.
func ParseColor(s string, fallback color.NRGBA) color.NRGBA {
	return parseHex(s, fallback)
}

// parseHex parses #RGB, #RRGGBB and #RRGGBBAA color strings, returning
// fallback for anything it cannot parse. Card colors come from user input,
// so a bad value degrades to the default instead of failing the render.
func parseHex(s string, fallback color.NRGBA) color.NRGBA {
	c, err := hexColor(s)
	if err != nil {
		return fallback
	}
	return c
}

func hexColor(s string) (color.NRGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("color %q: missing # prefix", s)
	}
	hex := s[1:]
	var r, g, b, a uint8
	a = 0xff
	switch len(hex) {
	case 3:
		_, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		_, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
	case 8:
		_, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
	default:
		return color.NRGBA{}, fmt.Errorf("color %q: bad length", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// withAlpha scales the color's alpha by opacity in [0, 1].
func withAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}
