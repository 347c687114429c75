package cards

import (
	"encoding/json"
	"image/color"
	"testing"
)

func TestBackgroundConfigShorthand(t *testing.T) {
	var bg BackgroundConfig
	if err := json.Unmarshal([]byte(`"https://cdn.example/bg.png"`), &bg); err != nil {
		t.Fatal(err)
	}
	if bg.Image != "https://cdn.example/bg.png" {
		t.Errorf("shorthand image = %q", bg.Image)
	}

	if err := json.Unmarshal([]byte(`{"image":"bg.png","color":"#112233","blur":4,"overlay_opacity":0.5}`), &bg); err != nil {
		t.Fatal(err)
	}
	if bg.Image != "bg.png" || bg.Color != "#112233" || bg.Blur != 4 || bg.OverlayOpacity != 0.5 {
		t.Errorf("object form mis-parsed: %+v", bg)
	}
}

func TestBackgroundConfigDefaults(t *testing.T) {
	var nilCfg *BackgroundConfig
	got := nilCfg.withDefaults()
	if got.Color != "#23272a" {
		t.Errorf("default color = %q", got.Color)
	}
	if got.Opacity == nil || *got.Opacity != 1 {
		t.Errorf("default opacity = %v", got.Opacity)
	}

	user := &BackgroundConfig{Color: "#ff0000"}
	if got := user.withDefaults(); got.Color != "#ff0000" {
		t.Error("user color must win over the default")
	}
}

func TestParseColor(t *testing.T) {
	fallback := color.NRGBA{R: 1, G: 2, B: 3, A: 4}
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#112233", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}},
		{"#ff000080", color.NRGBA{R: 0xff, A: 0x80}},
		{"", fallback},
		{"red", fallback},
		{"#12345", fallback},
	}
	for _, tc := range cases {
		if got := ParseColor(tc.in, fallback); got != tc.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.NRGBA{R: 10, A: 200}
	if got := withAlpha(c, 0.5); got.A != 100 {
		t.Errorf("alpha = %d, want 100", got.A)
	}
	if got := withAlpha(c, 2); got.A != 200 {
		t.Errorf("alpha = %d, want clamped 200", got.A)
	}
}
