package ideon

import "math"

// Step moves current toward target by the given fraction of the remaining
// distance. For 0 < factor < 1 the result never overshoots target.
func Step(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// Scalar is a single eased value chasing a target, such as a cursor's scale
// or rotation.
type Scalar struct {
	Current float64
	Target  float64
}

// NewScalar returns a Scalar settled at v.
func NewScalar(v float64) Scalar {
	return Scalar{Current: v, Target: v}
}

// Step advances Current toward Target by factor.
func (s *Scalar) Step(factor float64) {
	s.Current = Step(s.Current, s.Target, factor)
}

// Delta returns Target - Current.
func (s Scalar) Delta() float64 {
	return s.Target - s.Current
}

// Settled reports whether |Target - Current| < eps.
func (s Scalar) Settled(eps float64) bool {
	return math.Abs(s.Target-s.Current) < eps
}

// Snap sets Current to exactly Target.
func (s *Scalar) Snap() {
	s.Current = s.Target
}

// Point is a 2D position chasing a target position. Each axis is eased
// independently.
type Point struct {
	Current Vec2
	Target  Vec2
}

// Step advances both axes by factor.
func (p *Point) Step(factor float64) {
	p.Current.X = Step(p.Current.X, p.Target.X, factor)
	p.Current.Y = Step(p.Current.Y, p.Target.Y, factor)
}

// Settled reports whether both axes are within eps of the target.
func (p Point) Settled(eps float64) bool {
	return math.Abs(p.Target.X-p.Current.X) < eps &&
		math.Abs(p.Target.Y-p.Current.Y) < eps
}

// Snap sets Current to exactly Target.
func (p *Point) Snap() {
	p.Current = p.Target
}
