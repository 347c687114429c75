package cards

import (
	"context"
	"errors"
	"image/color"
	"testing"
)

func TestProgressMath(t *testing.T) {
	if got, want := progressFill(1250, 2000, 580), 0.625*580; got != want {
		t.Errorf("fill = %v, want %v", got, want)
	}
	if got := progressLabel(1250, 2000); got != "63%" {
		t.Errorf("label = %q, want 63%%", got)
	}
	if got := progressFill(5000, 2000, 100); got != 100 {
		t.Errorf("overflow fill = %v, want clamped 100", got)
	}
	if got := progressLabel(0, 2000); got != "0%" {
		t.Errorf("label = %q, want 0%%", got)
	}
	if got := progressLabel(2000, 2000); got != "100%" {
		t.Errorf("label = %q, want 100%%", got)
	}
}

func TestRenderRank(t *testing.T) {
	f := newFakeFetcher()
	f.serve("ada.png", 128, 128, color.NRGBA{B: 250, A: 255})

	buf, err := newTestRenderer(f).RenderRank(context.Background(), RankOptions{
		Username:   "Ada",
		Avatar:     "ada.png",
		Level:      12,
		Rank:       3,
		XP:         1250,
		RequiredXP: 2000,
	})
	if err != nil {
		t.Fatal(err)
	}
	assertPNG(t, buf)
}

func TestRankValidation(t *testing.T) {
	cases := []struct {
		name  string
		opts  RankOptions
		field string
	}{
		{"missing username", RankOptions{Avatar: "a.png", RequiredXP: 100}, "username"},
		{"missing avatar", RankOptions{Username: "Ada", RequiredXP: 100}, "avatar"},
		{"zero required xp", RankOptions{Username: "Ada", Avatar: "a.png"}, "required_xp"},
		{"negative xp", RankOptions{Username: "Ada", Avatar: "a.png", RequiredXP: 100, XP: -1}, "xp"},
	}
	r := newTestRenderer(newFakeFetcher())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.RenderRank(context.Background(), tc.opts)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}
