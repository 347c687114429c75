package cards

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestRenderWelcome(t *testing.T) {
	f := newFakeFetcher()
	f.serve("https://cdn.example/ada.png", 256, 256, color.NRGBA{R: 200, A: 255})

	buf, err := newTestRenderer(f).RenderWelcome(context.Background(), WelcomeOptions{
		Username: "Ada",
		Avatar:   "https://cdn.example/ada.png",
		Title:    "WELCOME",
		Message:  "so glad you could join us today",
	})
	if err != nil {
		t.Fatal(err)
	}
	assertPNG(t, buf)
	if got := f.count(); got != 1 {
		t.Errorf("fetch count = %d, want 1", got)
	}
}

func TestRenderWelcomeValidatesBeforeFetch(t *testing.T) {
	f := newFakeFetcher()
	_, err := newTestRenderer(f).RenderWelcome(context.Background(), WelcomeOptions{
		Username: "",
		Avatar:   "https://cdn.example/ada.png",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Field != "username" {
		t.Errorf("offending field = %q, want username", verr.Field)
	}
	if got := f.count(); got != 0 {
		t.Errorf("validation must precede any fetch, got %d fetches", got)
	}
}

func TestRenderWelcomeAvatarFailureIsFatal(t *testing.T) {
	f := newFakeFetcher()
	f.fail("https://cdn.example/ada.png", errors.New("boom"))

	_, err := newTestRenderer(f).RenderWelcome(context.Background(), WelcomeOptions{
		Username: "Ada",
		Avatar:   "https://cdn.example/ada.png",
	})
	var aerr *AvatarError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *AvatarError, got %v", err)
	}
	if aerr.Subject != "Ada" {
		t.Errorf("subject = %q, want Ada", aerr.Subject)
	}
	if !strings.Contains(err.Error(), "Ada") {
		t.Errorf("fatal error must name the subject: %v", err)
	}
}

func TestRenderWelcomeBackgroundFallback(t *testing.T) {
	avatar := "https://cdn.example/ada.png"

	withBrokenBG := newFakeFetcher()
	withBrokenBG.serve(avatar, 256, 256, color.NRGBA{G: 120, A: 255})
	withBrokenBG.fail("https://cdn.example/bg.png", errors.New("unreachable"))

	noBG := newFakeFetcher()
	noBG.serve(avatar, 256, 256, color.NRGBA{G: 120, A: 255})

	opts := WelcomeOptions{Username: "Ada", Avatar: avatar}

	got, err := newTestRenderer(withBrokenBG).RenderWelcome(context.Background(), WelcomeOptions{
		Username:   "Ada",
		Avatar:     avatar,
		Background: &BackgroundConfig{Image: "https://cdn.example/bg.png", Color: "#112233"},
	})
	if err != nil {
		t.Fatalf("background failure must be recoverable: %v", err)
	}

	opts.Background = &BackgroundConfig{Color: "#112233"}
	want, err := newTestRenderer(noBG).RenderWelcome(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got, want) {
		t.Error("unreachable background must degrade to the same solid fill as no background")
	}
}
