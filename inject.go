package ideon

// syntheticKind identifies an injected event.
type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticPress
	syntheticRelease
	syntheticLeave
	syntheticScroll
)

// syntheticEvent is a single injected input event in screen coordinates.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	dy     float64
	button MouseButton
}

// InjectMove queues a pointer move to (x, y). The button state is unchanged.
// Each injected event is consumed by one Update.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectPress queues a left-button press at (x, y).
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPress, x: x, y: y})
}

// InjectRelease queues a left-button release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticRelease, x: x, y: y})
}

// InjectClick queues a press followed by a release at (x, y). Consumes two
// frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectLeave queues the pointer leaving the window.
func (s *Scene) InjectLeave() {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticLeave})
}

// InjectScroll queues a scroll of dy pixels (positive scrolls down).
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScroll, dy: dy})
}

// PendingInput returns the number of injected events not yet consumed.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the queue and feeds it through
// processPointer. Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	ps := &s.pointer
	switch evt.kind {
	case syntheticMove:
		s.processPointer(evt.x, evt.y, true, ps.down, ps.button)
	case syntheticPress:
		s.processPointer(evt.x, evt.y, true, true, evt.button)
	case syntheticRelease:
		s.processPointer(evt.x, evt.y, true, false, evt.button)
	case syntheticLeave:
		s.processPointer(ps.lastX, ps.lastY, false, ps.down, ps.button)
	case syntheticScroll:
		s.viewport.ScrollBy(evt.dy)
	}
	return true
}

// InjectDrag queues a press at (fromX, fromY), frames-2 intermediate moves
// and a release at (toX, toY). frames is clamped to at least 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	for i := 1; i < frames-1; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}
