// Package fonts manages the process-wide set of registered font families
// and hands out cached faces for text drawing.
//
// Registration is a rare, typically startup-time operation; face lookup
// happens on every text draw. The registry therefore optimizes for
// concurrent reads and makes registration idempotent per
// (family, weight, style) key.
package fonts

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Generic families are always considered valid and never warned about.
const (
	SansSerif = "sans-serif"
	Serif     = "serif"
	Monospace = "monospace"
)

// Family identifies a registered font variant. Zero Weight/Style mean
// "normal".
type Family struct {
	Name   string
	Weight string // "normal" (default) or "bold"
	Style  string // "normal" (default) or "italic"
}

func (f Family) normalized() Family {
	if f.Weight == "" {
		f.Weight = "normal"
	}
	if f.Style == "" {
		f.Style = "normal"
	}
	return f
}

type faceKey struct {
	family Family
	size   float64
}

// Registry maps logical family names to parsed fonts and caches faces by
// (family, size). Safe for concurrent use; faces are populated
// compute-and-store-if-absent under a single writer lock.
type Registry struct {
	mu      sync.RWMutex
	fonts   map[Family]*truetype.Font
	faces   map[faceKey]font.Face
	regular *truetype.Font
	bold    *truetype.Font
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, initialized on first use and
// never torn down.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = NewRegistry() })
	return defaultReg
}

// NewRegistry returns a registry preloaded with the built-in Go fonts,
// which back the generic families and any unregistered request.
func NewRegistry() *Registry {
	regular, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		// The embedded Go fonts are known-good; this cannot happen with a
		// healthy toolchain.
		panic(fmt.Sprintf("fonts: parse builtin regular: %v", err))
	}
	bold, err := freetype.ParseFont(gobold.TTF)
	if err != nil {
		panic(fmt.Sprintf("fonts: parse builtin bold: %v", err))
	}
	return &Registry{
		fonts:   make(map[Family]*truetype.Font),
		faces:   make(map[faceKey]font.Face),
		regular: regular,
		bold:    bold,
	}
}

// RegisterFile parses the font file at path and registers it under fam.
// Registering the same (path, family) again is a no-op.
func (r *Registry) RegisterFile(path string, fam Family) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fonts: read %s: %w", path, err)
	}
	return r.RegisterBytes(b, fam)
}

// RegisterBytes parses raw TTF bytes and registers them under fam.
// Idempotent: a family already registered keeps its first font.
func (r *Registry) RegisterBytes(ttf []byte, fam Family) error {
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return fmt.Errorf("fonts: parse %q: %w", fam.Name, err)
	}
	fam = fam.normalized()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fonts[fam]; !ok {
		r.fonts[fam] = f
	}
	return nil
}

// Known reports whether family is a registered or generic family name.
func (r *Registry) Known(family string) bool {
	switch family {
	case "", SansSerif, Serif, Monospace:
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for fam := range r.fonts {
		if fam.Name == family {
			return true
		}
	}
	return false
}

// WarnUnknown logs a non-fatal warning when a requested custom family has
// not been registered. The render proceeds on the builtin fallback.
func (r *Registry) WarnUnknown(log *slog.Logger, family string) {
	if log == nil || r.Known(family) {
		return
	}
	log.Warn("requested font family is not registered, falling back to builtin",
		"family", family)
}

// Face returns a cached face for the family at the given point size,
// falling back to the builtin regular (or bold, per fam.Weight) when the
// family is generic or unregistered.
func (r *Registry) Face(fam Family, size float64) font.Face {
	fam = fam.normalized()
	key := faceKey{family: fam, size: size}

	r.mu.RLock()
	if face, ok := r.faces[key]; ok {
		r.mu.RUnlock()
		return face
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if face, ok := r.faces[key]; ok {
		return face
	}
	face := truetype.NewFace(r.resolveLocked(fam), &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[key] = face
	return face
}

func (r *Registry) resolveLocked(fam Family) *truetype.Font {
	if f, ok := r.fonts[fam]; ok {
		return f
	}
	// Weight-only match for registered families.
	for k, f := range r.fonts {
		if k.Name == fam.Name && k.Weight == fam.Weight {
			return f
		}
	}
	if fam.Weight == "bold" {
		return r.bold
	}
	return r.regular
}
