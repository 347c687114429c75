// Package mask produces anti-aliased circular alpha masks and applies them
// to cover-scaled source images. Masks are cached by diameter for the
// process lifetime and shared read-only across renders.
package mask

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/disintegration/imaging"
)

// Cache holds one mask per diameter. Read-mostly; population happens under
// a single writer lock so concurrent first use is safe.
type Cache struct {
	mu    sync.RWMutex
	masks map[int]*image.Alpha
}

var (
	defaultOnce  sync.Once
	defaultCache *Cache
)

// Default returns the process-wide mask cache.
func Default() *Cache {
	defaultOnce.Do(func() { defaultCache = NewCache() })
	return defaultCache
}

// NewCache returns an empty mask cache.
func NewCache() *Cache {
	return &Cache{masks: make(map[int]*image.Alpha)}
}

// For returns the cached circular mask for the given diameter, computing
// and storing it on first use. The returned mask is shared and must be
// treated as read-only.
func (c *Cache) For(diameter int) *image.Alpha {
	c.mu.RLock()
	m, ok := c.masks[diameter]
	c.mu.RUnlock()
	if ok {
		return m
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.masks[diameter]; ok {
		return m
	}
	m = circle(diameter)
	c.masks[diameter] = m
	return m
}

// circle rasterizes a soft-edged disc: alpha is 255 inside the radius and
// falls off linearly across the ~1px boundary band.
func circle(diameter int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, diameter, diameter))
	center := float64(diameter) / 2
	radius := center
	for y := 0; y < diameter; y++ {
		for x := 0; x < diameter; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Hypot(dx, dy)
			v := (dist - radius + 0.5) * 255
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			m.SetAlpha(x, y, color.Alpha{A: uint8(255 - v)})
		}
	}
	return m
}

// CircularCrop cover-scales src into a diameter×diameter square and
// multiplies in the cached circular mask, yielding an image with
// transparent corners and a fully opaque center.
func (c *Cache) CircularCrop(src image.Image, diameter int) (*image.RGBA, error) {
	if diameter <= 0 {
		return nil, fmt.Errorf("mask: non-positive diameter %d", diameter)
	}
	if src == nil {
		return nil, fmt.Errorf("mask: nil source image")
	}
	square := imaging.Fill(src, diameter, diameter, imaging.Center, imaging.Lanczos)
	out := image.NewRGBA(image.Rect(0, 0, diameter, diameter))
	draw.DrawMask(out, out.Bounds(), square, image.Point{}, c.For(diameter), image.Point{}, draw.Over)
	return out, nil
}
