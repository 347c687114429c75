// Package assets resolves image sources (remote URLs, local paths, raw
// bytes, decoded images) into validated pixel data. Every load path attempts
// a decode before returning, so callers never see bytes that are not a
// recognizable image.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// FetchTimeout bounds remote fetches. A slow origin fails the load rather
// than hanging the whole render.
const FetchTimeout = 5 * time.Second

// maxAssetBytes caps how much we read from a remote origin.
const maxAssetBytes = 32 << 20

// Source identifies an image to load. Exactly one field should be set;
// Image takes precedence over Bytes, which takes precedence over URL/Path.
type Source struct {
	URL   string
	Path  string
	Bytes []byte
	Image image.Image
}

// FromString builds a Source from a user-supplied reference, treating
// anything with an http(s) scheme as remote and everything else as a local
// path.
func FromString(s string) Source {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return Source{URL: s}
	}
	return Source{Path: s}
}

// FromBytes builds a Source from raw encoded image bytes.
func FromBytes(b []byte) Source { return Source{Bytes: b} }

// FromImage builds a passthrough Source from an already decoded image.
func FromImage(img image.Image) Source { return Source{Image: img} }

// IsZero reports whether the source identifies nothing.
func (s Source) IsZero() bool {
	return s.URL == "" && s.Path == "" && s.Bytes == nil && s.Image == nil
}

func (s Source) String() string {
	switch {
	case s.Image != nil:
		return "decoded image"
	case s.Bytes != nil:
		return fmt.Sprintf("raw buffer (%d bytes)", len(s.Bytes))
	case s.URL != "":
		return s.URL
	case s.Path != "":
		return s.Path
	}
	return "empty source"
}

// LoadError reports a failed asset load, carrying the source description so
// operators can tell which of a card's assets was at fault.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string { return "load asset " + e.Source + ": " + e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

// Fetcher resolves a Source into decoded pixel data. Implementations must
// validate that fetched bytes decode before returning them.
type Fetcher interface {
	// Fetch returns the decoded image for src.
	Fetch(ctx context.Context, src Source) (image.Image, error)
	// FetchBytes returns the raw encoded bytes for src, validated to be a
	// recognizable image format. Used where the caller needs the container
	// itself (animated GIF frame extraction).
	FetchBytes(ctx context.Context, src Source) ([]byte, error)
}

// HTTPFetcher is the production Fetcher: HTTP with a bounded timeout for
// remote sources, the filesystem for local paths.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with the default timeout client.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: FetchTimeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src Source) (image.Image, error) {
	if src.Image != nil {
		return src.Image, nil
	}
	b, err := f.FetchBytes(ctx, src)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	return img, nil
}

func (f *HTTPFetcher) FetchBytes(ctx context.Context, src Source) ([]byte, error) {
	var b []byte
	var err error
	switch {
	case src.Image != nil:
		return nil, &LoadError{Source: src.String(), Err: errors.New("decoded image has no byte form")}
	case src.Bytes != nil:
		b = src.Bytes
	case src.URL != "":
		b, err = f.fetchRemote(ctx, src.URL)
	case src.Path != "":
		b, err = readLocal(src.Path)
	default:
		return nil, &LoadError{Source: src.String(), Err: errors.New("source is neither URL, path nor buffer")}
	}
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	// Validation is mandatory: never hand corrupt bytes to a caller.
	if _, _, err := image.DecodeConfig(bytes.NewReader(b)); err != nil {
		return nil, &LoadError{Source: src.String(), Err: fmt.Errorf("not a decodable image: %w", err)}
	}
	return b, nil
}

func (f *HTTPFetcher) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: FetchTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
}

func readLocal(path string) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
