package ideon

// Margin grows (positive) or shrinks (negative) the viewport rectangle used
// for intersection tests, per side.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// ObserveOptions configures an Observation.
type ObserveOptions struct {
	// Threshold is the visible fraction of the element's area at which it
	// counts as intersecting.
	Threshold float64
	// Margin adjusts the viewport rectangle before testing.
	Margin Margin
}

// IntersectionEntry describes one visibility crossing.
type IntersectionEntry struct {
	Target         *Element
	Intersecting   bool
	Ratio          float64
	BoundingRect   Rect // screen space
	ViewportHeight float64
}

// Observation watches one element and calls back whenever it crosses the
// threshold. The first evaluation after Observe always reports, so the
// callback learns the initial state.
type Observation struct {
	scene    *Scene
	target   *Element
	opts     ObserveOptions
	fn       func(IntersectionEntry)
	reported bool
	last     bool
	released bool
}

// Observe starts watching target. The observation is released
// automatically when the element is disposed.
func (s *Scene) Observe(target *Element, opts ObserveOptions, fn func(IntersectionEntry)) *Observation {
	o := &Observation{scene: s, target: target, opts: opts, fn: fn}
	s.observations = append(s.observations, o)
	target.OnDispose(o.Disconnect)
	return o
}

// Disconnect stops the observation. Safe to call more than once and from
// inside the callback.
func (o *Observation) Disconnect() {
	if o.released {
		return
	}
	o.released = true
	o.fn = nil
	obs := o.scene.observations
	for i, x := range obs {
		if x == o {
			copy(obs[i:], obs[i+1:])
			obs[len(obs)-1] = nil
			o.scene.observations = obs[:len(obs)-1]
			return
		}
	}
}

// Active reports whether the observation is still registered.
func (o *Observation) Active() bool {
	return !o.released
}

// ObservationCount returns the number of live observations.
func (s *Scene) ObservationCount() int {
	return len(s.observations)
}

// intersectionRatio returns the fraction of r's area inside root. A
// zero-area r counts as fully visible when its origin is inside root.
func intersectionRatio(r, root Rect) float64 {
	if r.Area() <= 0 {
		if r.X >= root.X && r.X <= root.X+root.Width && r.Y >= root.Y && r.Y <= root.Y+root.Height {
			return 1
		}
		return 0
	}
	return r.Intersection(root).Area() / r.Area()
}

func (o *Observation) evaluate() {
	if o.released || o.target.IsDisposed() {
		o.Disconnect()
		return
	}
	v := o.scene.viewport
	root := Rect{
		X:      -o.opts.Margin.Left,
		Y:      v.ScrollY - o.opts.Margin.Top,
		Width:  v.Width + o.opts.Margin.Left + o.opts.Margin.Right,
		Height: v.Height + o.opts.Margin.Top + o.opts.Margin.Bottom,
	}
	r := o.target.PageRect()
	ratio := intersectionRatio(r, root)
	inter := ratio > 0 && ratio >= o.opts.Threshold
	if o.reported && inter == o.last {
		return
	}
	o.reported = true
	o.last = inter
	sx, sy := v.ToScreen(r.X, r.Y)
	o.fn(IntersectionEntry{
		Target:         o.target,
		Intersecting:   inter,
		Ratio:          ratio,
		BoundingRect:   Rect{X: sx, Y: sy, Width: r.Width, Height: r.Height},
		ViewportHeight: v.Height,
	})
}

// evaluateObservations is called once per Update, after input and scroll.
func (s *Scene) evaluateObservations() {
	if len(s.observations) == 0 || !s.sizeKnown {
		return
	}
	snapshot := append([]*Observation(nil), s.observations...)
	for _, o := range snapshot {
		o.evaluate()
	}
}
