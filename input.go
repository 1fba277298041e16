package ideon

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

const (
	maxPointers = 10 // reported touch capacity once touches are seen

	// offSurface is where the pointer is assumed to be before the first
	// event, so nothing is drawn under a stale position.
	offSurface = -100.0
)

// pointerState is the mouse pointer as last observed.
type pointerState struct {
	inside    bool
	down      bool
	button    MouseButton
	lastX     float64
	lastY     float64
	hoverNode *Element
	hitNode   *Element
}

// PointerPosition returns the last observed screen position of the pointer.
func (s *Scene) PointerPosition() (float64, float64) {
	return s.pointer.lastX, s.pointer.lastY
}

// PointerInside reports whether the pointer is inside the window.
func (s *Scene) PointerInside() bool {
	return s.pointer.inside
}

// --- Hit testing ---

// collectInteractive walks the tree in painter order, appending visible
// interactive elements to buf.
func collectInteractive(e *Element, buf []*Element) []*Element {
	if !e.Visible {
		return buf
	}
	if e.Interactive {
		buf = append(buf, e)
	}
	for _, c := range e.children {
		buf = collectInteractive(c, buf)
	}
	return buf
}

// hitTest finds the topmost interactive element at the page-space point.
func (s *Scene) hitTest(px, py float64) *Element {
	s.hitBuf = collectInteractive(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		if s.hitBuf[i].VisualRect().Contains(px, py) {
			return s.hitBuf[i]
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update. Injected events take priority;
// real devices are polled only when the queue is empty and input is not
// manual.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.manualInput {
		return
	}
	s.processMousePointer()
	s.processWheel()
	s.processKeys()
}

// processMousePointer handles the real mouse.
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	inside := ebiten.IsFocused() &&
		x >= 0 && y >= 0 && x < s.viewport.Width && y < s.viewport.Height

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}

	s.processPointer(x, y, inside, pressed, button)
}

// processWheel scrolls the viewport by the wheel delta.
func (s *Scene) processWheel() {
	_, dy := ebiten.Wheel()
	if dy != 0 {
		s.viewport.ScrollBy(-dy * s.cfg.Scroll.WheelStep)
	}
}

// processKeys handles keyboard scrolling.
func (s *Scene) processKeys() {
	if s.noKeyScroll {
		return
	}
	v := s.viewport
	d := float32(s.cfg.Scroll.SmoothDuration.Seconds())
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.ScrollTo(v.ScrollY+v.Height*0.9, d, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		v.ScrollTo(v.ScrollY-v.Height*0.9, d, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.ScrollTo(0, d, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		v.ScrollTo(v.MaxScroll(), d, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.ScrollBy(s.cfg.Scroll.WheelStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.ScrollBy(-s.cfg.Scroll.WheelStep)
	}
}

// processPointer runs the pointer state machine for one observation.
func (s *Scene) processPointer(x, y float64, inside, pressed bool, button MouseButton) {
	ps := &s.pointer

	if inside != ps.inside {
		ps.inside = inside
		if inside {
			s.fire(&s.handlers.pointerEnter, x, y, button, nil, nil)
		} else {
			s.fire(&s.handlers.pointerLeave, x, y, button, nil, nil)
		}
	}

	var target *Element
	if inside {
		px, py := s.viewport.ToPage(x, y)
		target = s.hitTest(px, py)
	}
	if target != ps.hoverNode {
		prev := ps.hoverNode
		ps.hoverNode = target
		if prev != nil && prev.OnPointerLeave != nil {
			prev.OnPointerLeave(s.pointerContext(x, y, button, prev, nil))
		}
		if target != nil && target.OnPointerEnter != nil {
			target.OnPointerEnter(s.pointerContext(x, y, button, target, nil))
		}
		s.fire(&s.handlers.pointerOver, x, y, button, target, prev)
	}

	if inside && (x != ps.lastX || y != ps.lastY) {
		ps.lastX, ps.lastY = x, y
		s.fire(&s.handlers.pointerMove, x, y, button, target, nil)
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.fire(&s.handlers.pointerDown, x, y, button, target, nil)
	case !pressed && ps.down:
		ps.down = false
		hit := ps.hitNode
		ps.hitNode = nil
		s.fire(&s.handlers.pointerUp, x, y, ps.button, target, nil)
		if hit == target && (hit == nil || !hit.IsDisposed()) {
			ctx := s.pointerContext(x, y, ps.button, target, nil)
			s.handlers.click.dispatch(ctx)
			if target != nil && target.OnClick != nil {
				target.OnClick(ctx)
			}
		}
	}
}

func (s *Scene) pointerContext(x, y float64, button MouseButton, target, prev *Element) PointerContext {
	px, py := s.viewport.ToPage(x, y)
	return PointerContext{
		X: x, Y: y, PageX: px, PageY: py,
		Button: button, Target: target, Previous: prev,
	}
}

func (s *Scene) fire(l *handlerList[PointerContext], x, y float64, button MouseButton, target, prev *Element) {
	l.dispatch(s.pointerContext(x, y, button, target, prev))
}
