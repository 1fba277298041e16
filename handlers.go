package ideon

import "time"

// PointerContext carries pointer event data. X and Y are screen
// coordinates; PageX and PageY include the viewport scroll offset.
type PointerContext struct {
	X, Y         float64
	PageX, PageY float64
	Button       MouseButton
	PointerID    int
	// Target is the topmost interactive element under the pointer, or nil.
	Target *Element
	// Previous is the element hovered before an EventPointerOver, or nil.
	Previous *Element
}

// ScrollContext carries viewport scroll data.
type ScrollContext struct {
	ScrollY float64
	DeltaY  float64
	Width   float64
	Height  float64
}

// ResizeContext carries the new viewport size.
type ResizeContext struct {
	Width, Height float64
}

// FrameContext is passed to frame callbacks once per tick.
type FrameContext struct {
	// Now is the scene clock: the time elapsed since the scene was created.
	Now time.Duration
	// Dt is the tick length in seconds.
	Dt   float64
	Tick uint64
}

// handlerList is a set of callbacks that tolerates removal while it is
// being dispatched. Removed entries are tombstoned until the outermost
// dispatch finishes.
type handlerList[T any] struct {
	entries     []handlerEntry[T]
	dispatching int
	dirty       bool
	live        int
}

type handlerEntry[T any] struct {
	id   uint32
	fn   func(T)
	dead bool
}

func (l *handlerList[T]) add(id uint32, fn func(T)) {
	l.entries = append(l.entries, handlerEntry[T]{id: id, fn: fn})
	l.live++
}

func (l *handlerList[T]) remove(id uint32) {
	for i := range l.entries {
		e := &l.entries[i]
		if e.id != id || e.dead {
			continue
		}
		l.live--
		if l.dispatching > 0 {
			e.dead = true
			e.fn = nil
			l.dirty = true
			return
		}
		copy(l.entries[i:], l.entries[i+1:])
		l.entries[len(l.entries)-1] = handlerEntry[T]{}
		l.entries = l.entries[:len(l.entries)-1]
		return
	}
}

// dispatch calls every live handler registered before the dispatch began.
func (l *handlerList[T]) dispatch(ctx T) {
	l.dispatching++
	n := len(l.entries)
	for i := 0; i < n && i < len(l.entries); i++ {
		e := l.entries[i]
		if !e.dead {
			e.fn(ctx)
		}
	}
	l.dispatching--
	if l.dispatching == 0 && l.dirty {
		l.compact()
	}
}

func (l *handlerList[T]) compact() {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if !e.dead {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(l.entries); i++ {
		l.entries[i] = handlerEntry[T]{}
	}
	l.entries = kept
	l.dirty = false
}

func (l *handlerList[T]) len() int {
	return l.live
}

type handlerRegistry struct {
	pointerDown  handlerList[PointerContext]
	pointerUp    handlerList[PointerContext]
	pointerMove  handlerList[PointerContext]
	pointerEnter handlerList[PointerContext]
	pointerLeave handlerList[PointerContext]
	pointerOver  handlerList[PointerContext]
	click        handlerList[PointerContext]
	scroll       handlerList[ScrollContext]
	resize       handlerList[ResizeContext]
	frame        handlerList[FrameContext]
	nextID       uint32
}

func (r *handlerRegistry) count() int {
	return r.pointerDown.len() + r.pointerUp.len() + r.pointerMove.len() +
		r.pointerEnter.len() + r.pointerLeave.len() + r.pointerOver.len() +
		r.click.len() + r.scroll.len() + r.resize.len() + r.frame.len()
}

// CallbackHandle allows removing a registered scene-level callback.
// The zero value is valid and Remove on it is a no-op.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Safe to call more
// than once and from inside a callback.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown.remove(h.id)
	case EventPointerUp:
		h.reg.pointerUp.remove(h.id)
	case EventPointerMove:
		h.reg.pointerMove.remove(h.id)
	case EventPointerEnter:
		h.reg.pointerEnter.remove(h.id)
	case EventPointerLeave:
		h.reg.pointerLeave.remove(h.id)
	case EventPointerOver:
		h.reg.pointerOver.remove(h.id)
	case EventClick:
		h.reg.click.remove(h.id)
	case EventScroll:
		h.reg.scroll.remove(h.id)
	case EventResize:
		h.reg.resize.remove(h.id)
	case EventFrame:
		h.reg.frame.remove(h.id)
	}
}

// removeAll removes every handle and empties the slice.
func removeAll(hs []CallbackHandle) []CallbackHandle {
	for _, h := range hs {
		h.Remove()
	}
	return hs[:0]
}

func (s *Scene) pointerHandle(l *handlerList[PointerContext], ev EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	l.add(id, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: ev}
}

// OnPointerDown registers a callback for pointer button presses.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a callback for pointer button releases.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a callback for pointer movement inside the window.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a callback fired when the pointer enters the window.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a callback fired when the pointer leaves the window.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnPointerOver registers a callback fired when the hovered element changes.
func (s *Scene) OnPointerOver(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.pointerOver, EventPointerOver, fn)
}

// OnClick registers a scene-level click callback.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return s.pointerHandle(&s.handlers.click, EventClick, fn)
}

// OnScroll registers a callback fired when the viewport scroll position changes.
func (s *Scene) OnScroll(fn func(ScrollContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.scroll.add(id, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventScroll}
}

// OnResize registers a callback fired when the viewport size changes.
func (s *Scene) OnResize(fn func(ResizeContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.resize.add(id, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventResize}
}

// OnFrame registers a callback that runs once per tick until removed. It is
// the frame-loop equivalent of a self-rescheduling animation frame request.
func (s *Scene) OnFrame(fn func(FrameContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.frame.add(id, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventFrame}
}

// HandlerCount returns the number of registered callbacks of every kind.
func (s *Scene) HandlerCount() int {
	return s.handlers.count()
}
