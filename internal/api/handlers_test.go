package api

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardforge/internal/assets"
	"github.com/youruser/cardforge/internal/cards"
)

type stubFetcher struct{}

func (stubFetcher) Fetch(ctx context.Context, src assets.Source) (image.Image, error) {
	if strings.Contains(src.String(), "missing") {
		return nil, errors.New("not found")
	}
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 120, A: 255}), image.Point{}, draw.Src)
	return img, nil
}

func (s stubFetcher) FetchBytes(ctx context.Context, src assets.Source) ([]byte, error) {
	img, err := s.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := NewServer(cards.New(cards.Config{Fetcher: stubFetcher{}}), nil, nil)
	r := gin.New()
	RegisterRoutes(r, s)
	return r
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestWelcomeCard(t *testing.T) {
	body := `{"username":"Ada","avatar":"https://cdn.example/ada.png","title":"WELCOME"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cards/welcome", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	testRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("body is not a PNG")
	}
}

func TestWelcomeCardValidation(t *testing.T) {
	body := `{"username":"","avatar":"https://cdn.example/ada.png"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cards/welcome", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	testRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestWelcomeCardAvatarFailure(t *testing.T) {
	body := `{"username":"Ada","avatar":"https://cdn.example/missing.png"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cards/welcome", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	testRouter().ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Ada") {
		t.Errorf("error body must name the subject: %s", w.Body.String())
	}
}

func TestQR(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/qr?text=hello&size=128", nil)
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
}

func TestRankCardBadJSON(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cards/rank", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
