package ideon

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the visible window onto the page. The page scrolls
// vertically; X never scrolls.
type Viewport struct {
	// ScrollY is the page-space Y coordinate shown at the top of the screen.
	ScrollY float64
	// Width and Height are the screen size in pixels.
	Width, Height float64
	// ContentHeight is the total page height. ScrollY is clamped to
	// [0, ContentHeight-Height].
	ContentHeight float64

	scrollTween *gween.Tween
}

// MaxScroll returns the largest valid ScrollY.
func (v *Viewport) MaxScroll() float64 {
	return max(0, v.ContentHeight-v.Height)
}

// ScrollBy moves the viewport by dy pixels immediately, cancelling any
// smooth scroll in flight.
func (v *Viewport) ScrollBy(dy float64) {
	v.scrollTween = nil
	v.ScrollY = v.clampScroll(v.ScrollY + dy)
}

// ScrollTo animates the viewport to y over duration seconds. A zero
// duration jumps immediately.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = v.clampScroll(y)
	if duration <= 0 {
		v.scrollTween = nil
		v.ScrollY = y
		return
	}
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	v.scrollTween = gween.New(float32(v.ScrollY), float32(y), duration, easeFn)
}

// Scrolling reports whether a smooth scroll is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Bounds returns the visible area in page space.
func (v *Viewport) Bounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// ToPage converts screen coordinates to page coordinates.
func (v *Viewport) ToPage(sx, sy float64) (float64, float64) {
	return sx, sy + v.ScrollY
}

// ToScreen converts page coordinates to screen coordinates.
func (v *Viewport) ToScreen(px, py float64) (float64, float64) {
	return px, py - v.ScrollY
}

// Progress returns how far the page has been scrolled in [0, 1]. A page
// that fits on screen reports 0.
func (v *Viewport) Progress() float64 {
	m := v.MaxScroll()
	if m <= 0 {
		return 0
	}
	return clamp01(v.ScrollY / m)
}

// SetContentHeight updates the page height and re-clamps the scroll position.
func (v *Viewport) SetContentHeight(h float64) {
	v.ContentHeight = h
	v.ScrollY = v.clampScroll(v.ScrollY)
}

func (v *Viewport) clampScroll(y float64) float64 {
	return clamp(y, 0, v.MaxScroll())
}

// update advances any smooth scroll. Called from Scene.Update.
func (v *Viewport) update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	val, done := v.scrollTween.Update(dt)
	v.ScrollY = v.clampScroll(float64(val))
	if done {
		v.scrollTween = nil
	}
}
