package ideon

// PointerGate mounts pointer-driven effects only while the device classifier
// reports a non-touch device. It re-checks on every resize, mounting or
// unmounting its children when the classification flips.
type PointerGate struct {
	scene    *Scene
	children []Effect
	active   bool
	resize   CallbackHandle
}

// NewPointerGate gates children, typically the Cursor and Sparks.
func NewPointerGate(children ...Effect) *PointerGate {
	return &PointerGate{children: children}
}

// Mount implements Effect.
func (g *PointerGate) Mount(s *Scene) {
	g.scene = s
	g.resize = s.OnResize(func(ResizeContext) { g.sync() })
	g.sync()
}

// Unmount implements Effect.
func (g *PointerGate) Unmount() {
	g.resize.Remove()
	g.resize = CallbackHandle{}
	g.deactivate()
	g.scene = nil
}

// Active reports whether the gated effects are mounted.
func (g *PointerGate) Active() bool {
	return g.active
}

func (g *PointerGate) sync() {
	want := !g.scene.Device().IsTouchDevice()
	switch {
	case want && !g.active:
		g.active = true
		for _, c := range g.children {
			c.Mount(g.scene)
		}
	case !want && g.active:
		g.deactivate()
	}
}

func (g *PointerGate) deactivate() {
	if !g.active {
		return
	}
	g.active = false
	for i := len(g.children) - 1; i >= 0; i-- {
		g.children[i].Unmount()
	}
}

// Members implements EffectGroup. Children are reported only while mounted.
func (g *PointerGate) Members() []Effect {
	if !g.active {
		return nil
	}
	return g.children
}
