package ideon

import (
	"fmt"
	"strings"
	"time"

	"github.com/tanema/gween/ease"
)

// RevealEffect selects the hidden style an element starts from before it
// is revealed.
type RevealEffect string

const (
	RevealFadeUp     RevealEffect = "fadeUp"
	RevealFadeIn     RevealEffect = "fadeIn"
	RevealSlideLeft  RevealEffect = "slideLeft"
	RevealSlideRight RevealEffect = "slideRight"
	RevealScale      RevealEffect = "scale"
	RevealRotate     RevealEffect = "rotate"
)

// HiddenStyle returns the style an element has before it is revealed.
// distance is the travel of the fade/slide variants in pixels.
func (r RevealEffect) HiddenStyle(distance float64) Style {
	st := Style{Alpha: 0, Scale: 1}
	switch r {
	case RevealFadeIn:
	case RevealSlideLeft:
		st.OffsetX = -distance
	case RevealSlideRight:
		st.OffsetX = distance
	case RevealScale:
		st.Scale = 0.9
	case RevealRotate:
		st.Rotation = -5
		st.OffsetY = distance / 2
	default:
		st.OffsetY = distance
	}
	return st
}

// RevealOptions configures a visibility-triggered reveal.
type RevealOptions struct {
	Threshold float64
	Margin    Margin
	// Once makes the reveal terminal: after the first reveal the element is
	// no longer observed. Otherwise it hides again when it leaves the view.
	Once bool
	// Delay postpones the visible transition after the element enters.
	Delay time.Duration
	// Effect and Duration control the style transition. An empty Effect
	// only tracks visibility and leaves the element's style alone.
	Effect   RevealEffect
	Duration time.Duration
	Distance float64
	Ease     ease.TweenFunc
	// OnChange, when set, is called after every visibility flip.
	OnChange func(visible bool)
}

// RevealOptions returns the configured defaults for a reveal.
func (c RevealConfig) RevealOptions() RevealOptions {
	return RevealOptions{
		Threshold: c.Threshold,
		Margin:    Margin{Bottom: -c.MarginBottom},
		Once:      true,
		Effect:    RevealEffect(c.Effect),
		Duration:  c.Duration,
		Distance:  c.Distance,
	}
}

// TextOptions returns the defaults for a word-by-word heading reveal.
func (c RevealConfig) TextOptions() StaggerOptions {
	return StaggerOptions{
		RevealOptions: RevealOptions{
			Threshold: c.TextThreshold,
			Margin:    Margin{Bottom: -c.MarginBottom},
			Once:      true,
			Effect:    RevealEffect(c.Effect),
			Duration:  c.TextDuration,
			Distance:  c.TextDistance,
		},
		Interval: c.WordInterval,
	}
}

// RevealSubject is an element tracked by a visibility-triggered reveal.
type RevealSubject struct {
	scene   *Scene
	el      *Element
	opts    RevealOptions
	obs     *Observation
	timer   TimerHandle
	tween   *TweenGroup
	frame   CallbackHandle
	visible bool
	settled bool
	done    bool
}

// Reveal starts a visibility-triggered reveal on el. When opts.Effect is
// set the element is put into the hidden style immediately.
func (s *Scene) Reveal(el *Element, opts RevealOptions) *RevealSubject {
	if opts.Ease == nil {
		opts.Ease = ease.OutExpo
	}
	r := &RevealSubject{scene: s, el: el, opts: opts}
	if opts.Effect != "" {
		opts.Effect.HiddenStyle(opts.Distance).Apply(el)
	}
	r.obs = s.Observe(el, ObserveOptions{Threshold: opts.Threshold, Margin: opts.Margin}, r.onIntersect)
	el.OnDispose(r.Release)
	return r
}

// Visible reports whether the element is currently revealed.
func (r *RevealSubject) Visible() bool {
	return r.visible
}

// Settled reports whether a once-only reveal has fired and stopped observing.
func (r *RevealSubject) Settled() bool {
	return r.settled
}

// Element returns the observed element.
func (r *RevealSubject) Element() *Element {
	return r.el
}

// Release stops observing and cancels any pending delay or transition.
func (r *RevealSubject) Release() {
	if r.done {
		return
	}
	r.done = true
	r.obs.Disconnect()
	r.timer.Cancel()
	r.frame.Remove()
}

func (r *RevealSubject) onIntersect(e IntersectionEntry) {
	if r.done {
		return
	}
	if e.Intersecting {
		if r.opts.Once {
			r.settled = true
			r.obs.Disconnect()
		}
		r.timer.Cancel()
		if r.opts.Delay > 0 {
			r.timer = r.scene.After(r.opts.Delay, func() { r.setVisible(true) })
		} else {
			r.setVisible(true)
		}
		return
	}
	if !r.opts.Once {
		r.timer.Cancel()
		r.setVisible(false)
	}
}

func (r *RevealSubject) setVisible(v bool) {
	if r.done || r.el.IsDisposed() || r.visible == v {
		return
	}
	r.visible = v
	if r.opts.Effect != "" {
		target := IdentityStyle
		if !v {
			target = r.opts.Effect.HiddenStyle(r.opts.Distance)
		}
		r.animate(target, 0)
	}
	if r.opts.OnChange != nil {
		r.opts.OnChange(v)
	}
}

func (r *RevealSubject) animate(st Style, delay time.Duration) {
	r.tween = TweenStyle(r.el, st, r.opts.Duration, delay, r.opts.Ease)
	if r.frame.reg == nil {
		r.frame = r.scene.OnFrame(r.step)
	}
}

func (r *RevealSubject) step(fc FrameContext) {
	if r.tween == nil {
		return
	}
	r.tween.Update(float32(fc.Dt))
	if r.tween.Done {
		r.tween = nil
		r.frame.Remove()
		r.frame = CallbackHandle{}
	}
}

// --- Parallax ---

// ParallaxSubject offsets an element vertically in proportion to its
// position in the viewport.
type ParallaxSubject struct {
	scene   *Scene
	el      *Element
	speed   float64
	handles []CallbackHandle
	offset  float64
	done    bool
}

// Parallax starts a parallax effect on el. The offset is computed once
// immediately and again on every scroll and resize.
func (s *Scene) Parallax(el *Element, speed float64) *ParallaxSubject {
	p := &ParallaxSubject{scene: s, el: el, speed: speed}
	p.handles = append(p.handles,
		s.OnScroll(func(ScrollContext) { p.update() }),
		s.OnResize(func(ResizeContext) { p.update() }),
	)
	el.OnDispose(p.Release)
	p.update()
	return p
}

// ParallaxOffset computes (viewportHeight - elementTop) * speed, where
// elementTop is the element's screen-space top.
func ParallaxOffset(viewportHeight, elementTop, speed float64) float64 {
	return (viewportHeight - elementTop) * speed
}

// Offset returns the most recently applied offset.
func (p *ParallaxSubject) Offset() float64 {
	return p.offset
}

func (p *ParallaxSubject) update() {
	if p.done || p.el.IsDisposed() {
		return
	}
	v := p.scene.viewport
	_, top := v.ToScreen(0, p.el.PageRect().Y)
	p.offset = ParallaxOffset(v.Height, top, p.speed)
	p.el.ScrollOffsetY = p.offset
}

// Release removes the scroll and resize listeners.
func (p *ParallaxSubject) Release() {
	if p.done {
		return
	}
	p.done = true
	p.handles = removeAll(p.handles)
}

// --- Scroll-linked progress ---

// ProgressSubject maps an element's traversal of the viewport to [0, 1]:
// 0 when its top reaches the bottom edge, 1 when its bottom passes the top.
type ProgressSubject struct {
	scene    *Scene
	el       *Element
	handles  []CallbackHandle
	progress float64
	onChange func(float64)
	done     bool
}

// ScrollProgress starts tracking el. onChange may be nil.
func (s *Scene) ScrollProgress(el *Element, onChange func(float64)) *ProgressSubject {
	p := &ProgressSubject{scene: s, el: el, onChange: onChange}
	p.handles = append(p.handles,
		s.OnScroll(func(ScrollContext) { p.update() }),
		s.OnResize(func(ResizeContext) { p.update() }),
	)
	el.OnDispose(p.Release)
	p.update()
	return p
}

// ElementProgress computes clamp((vh - top) / (vh + height), 0, 1).
func ElementProgress(viewportHeight, elementTop, elementHeight float64) float64 {
	span := viewportHeight + elementHeight
	if span <= 0 {
		return 0
	}
	return clamp01((viewportHeight - elementTop) / span)
}

// Progress returns the latest progress value.
func (p *ProgressSubject) Progress() float64 {
	return p.progress
}

func (p *ProgressSubject) update() {
	if p.done || p.el.IsDisposed() {
		return
	}
	v := p.scene.viewport
	r := p.el.PageRect()
	_, top := v.ToScreen(0, r.Y)
	p.progress = ElementProgress(v.Height, top, r.Height)
	if p.onChange != nil {
		p.onChange(p.progress)
	}
}

// Release removes the scroll and resize listeners.
func (p *ProgressSubject) Release() {
	if p.done {
		return
	}
	p.done = true
	p.handles = removeAll(p.handles)
}

// --- Stagger ---

// StaggerOptions configures a staggered children reveal.
type StaggerOptions struct {
	RevealOptions
	// Interval is the extra delay added per child index.
	Interval time.Duration
}

// StaggerSubject reveals a container's children one after another when the
// container becomes visible.
type StaggerSubject struct {
	scene  *Scene
	reveal *RevealSubject
	opts   StaggerOptions
	tweens []*TweenGroup
	frame  CallbackHandle
	done   bool
}

// Stagger hides every child of container and reveals child i after
// i*Interval once the container becomes visible.
func (s *Scene) Stagger(container *Element, opts StaggerOptions) *StaggerSubject {
	if opts.Ease == nil {
		opts.Ease = ease.OutExpo
	}
	if opts.Effect == "" {
		opts.Effect = RevealFadeUp
	}
	st := &StaggerSubject{scene: s, opts: opts}
	hidden := opts.Effect.HiddenStyle(opts.Distance)
	for _, c := range container.Children() {
		hidden.Apply(c)
	}
	ro := opts.RevealOptions
	ro.Effect = ""
	ro.OnChange = st.onChange
	st.reveal = s.Reveal(container, ro)
	container.OnDispose(st.Release)
	return st
}

// Visible reports whether the container has been revealed.
func (st *StaggerSubject) Visible() bool {
	return st.reveal.Visible()
}

// ChildDelay returns the stagger delay for the child at index.
func (st *StaggerSubject) ChildDelay(index int) time.Duration {
	return time.Duration(index) * st.opts.Interval
}

func (st *StaggerSubject) onChange(visible bool) {
	if st.done {
		return
	}
	target := IdentityStyle
	if !visible {
		target = st.opts.Effect.HiddenStyle(st.opts.Distance)
	}
	children := st.reveal.Element().Children()
	st.tweens = st.tweens[:0]
	for i, c := range children {
		delay := st.ChildDelay(i)
		if !visible {
			delay = 0
		}
		st.tweens = append(st.tweens, TweenStyle(c, target, st.opts.Duration, delay, st.opts.Ease))
	}
	if st.frame.reg == nil && len(st.tweens) > 0 {
		st.frame = st.scene.OnFrame(st.step)
	}
	if st.opts.OnChange != nil {
		st.opts.OnChange(visible)
	}
}

func (st *StaggerSubject) step(fc FrameContext) {
	all := true
	for _, tw := range st.tweens {
		tw.Update(float32(fc.Dt))
		if !tw.Done {
			all = false
		}
	}
	if all {
		st.frame.Remove()
		st.frame = CallbackHandle{}
	}
}

// Release stops the reveal and any running child transitions.
func (st *StaggerSubject) Release() {
	if st.done {
		return
	}
	st.done = true
	st.reveal.Release()
	st.frame.Remove()
}

// RevealText replaces el's text with one child element per word and
// reveals the words in order, word i after i*Interval. The words flow
// left to right inside el's width and wrap like the original text; el's
// height is updated to fit them.
func (s *Scene) RevealText(el *Element, opts StaggerOptions) *StaggerSubject {
	for i, w := range strings.Fields(el.Text) {
		ww, wh := MeasureText(w, el.TextSize, 0)
		word := NewElement(fmt.Sprintf("%s-word-%d", el.Name, i), "span")
		word.Text = w
		word.TextSize = el.TextSize
		word.TextColor = el.TextColor
		word.Width = ww + 2*TextPadding
		word.Height = wh + 2*TextPadding
		el.AddChild(word)
	}
	el.Text = ""
	el.LayoutRow(0, 0)
	return s.Stagger(el, opts)
}
