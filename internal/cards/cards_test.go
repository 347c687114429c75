package cards

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"
	"testing"

	"github.com/youruser/cardforge/internal/assets"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// fakeFetcher serves canned images by source string and counts invocations,
// so tests can assert that validation failures reach zero fetches.
type fakeFetcher struct {
	mu     sync.Mutex
	calls  int
	images map[string]image.Image
	errs   map[string]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		images: make(map[string]image.Image),
		errs:   make(map[string]error),
	}
}

func (f *fakeFetcher) serve(src string, w, h int, c color.Color) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	f.images[src] = img
}

func (f *fakeFetcher) fail(src string, err error) { f.errs[src] = err }

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeFetcher) Fetch(ctx context.Context, src assets.Source) (image.Image, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	key := src.String()
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if img, ok := f.images[key]; ok {
		return img, nil
	}
	return nil, &assets.LoadError{Source: key, Err: errors.New("no canned image")}
}

func (f *fakeFetcher) FetchBytes(ctx context.Context, src assets.Source) ([]byte, error) {
	img, err := f.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newTestRenderer(f *fakeFetcher) *Renderer {
	return New(Config{Fetcher: f})
}

func assertPNG(t *testing.T, buf []byte) {
	t.Helper()
	if len(buf) == 0 || !bytes.HasPrefix(buf, pngMagic) {
		t.Fatalf("output is not a PNG (len=%d)", len(buf))
	}
}
