package ideon

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Style is the animatable visual state of an element.
type Style struct {
	Alpha    float64
	OffsetX  float64
	OffsetY  float64
	Scale    float64
	Rotation float64
}

// IdentityStyle is the fully shown, untransformed style.
var IdentityStyle = Style{Alpha: 1, Scale: 1}

// StyleOf reads the current style of e.
func StyleOf(e *Element) Style {
	return Style{Alpha: e.Alpha, OffsetX: e.OffsetX, OffsetY: e.OffsetY, Scale: e.Scale, Rotation: e.Rotation}
}

// Apply writes st to e.
func (st Style) Apply(e *Element) {
	e.Alpha = st.Alpha
	e.OffsetX = st.OffsetX
	e.OffsetY = st.OffsetY
	e.Scale = st.Scale
	e.Rotation = st.Rotation
}

// TweenGroup animates the five style fields of an element simultaneously.
// Call Update(dt) each frame; values are written to the element directly.
// If the target element is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [5]*gween.Tween
	fields [5]*float64
	target *Element
	delay  float32
	Done   bool
}

// TweenStyle creates a TweenGroup that animates e from its current style to
// st over duration using fn, after waiting delay.
func TweenStyle(e *Element, st Style, duration, delay time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: e, delay: float32(delay.Seconds())}
	d := float32(duration.Seconds())
	from := [5]float64{e.Alpha, e.OffsetX, e.OffsetY, e.Scale, e.Rotation}
	to := [5]float64{st.Alpha, st.OffsetX, st.OffsetY, st.Scale, st.Rotation}
	g.fields = [5]*float64{&e.Alpha, &e.OffsetX, &e.OffsetY, &e.Scale, &e.Rotation}
	for i := range g.tweens {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), d, fn)
	}
	return g
}

// Update advances all tweens by dt seconds and writes the values. Time
// spent in the initial delay writes nothing.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	if g.delay > 0 {
		g.delay -= dt
		if g.delay > 0 {
			return
		}
		dt = -g.delay
		g.delay = 0
	}

	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenValue animates a single float64 field.
func TweenValue(field *float64, to float64, duration time.Duration, fn ease.TweenFunc) *ValueTween {
	return &ValueTween{
		tween: gween.New(float32(*field), float32(to), float32(duration.Seconds()), fn),
		field: field,
		to:    to,
	}
}

// ValueTween animates one float64. On completion the field holds exactly
// the target value.
type ValueTween struct {
	tween *gween.Tween
	field *float64
	to    float64
	Done  bool
}

// Update advances the tween by dt seconds.
func (t *ValueTween) Update(dt float32) {
	if t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	if finished {
		*t.field = t.to
		t.Done = true
		return
	}
	*t.field = float64(val)
}
