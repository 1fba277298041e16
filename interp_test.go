package ideon

import (
	"math"
	"testing"
)

func TestStepConvergesMonotonically(t *testing.T) {
	tests := []struct {
		name             string
		from, to, factor float64
	}{
		{"cursor position", 0, 100, 0.35},
		{"cursor style", 1, 0.8, 0.2},
		{"negative", 50, -25, 0.35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := tt.from
			prev := math.Abs(tt.to - cur)
			for i := 0; i < 200; i++ {
				cur = Step(cur, tt.to, tt.factor)
				d := math.Abs(tt.to - cur)
				if d > prev {
					t.Fatalf("distance grew at step %d: %v > %v", i, d, prev)
				}
				if (tt.to-tt.from)*(tt.to-cur) < 0 {
					t.Fatalf("overshot target at step %d: %v", i, cur)
				}
				prev = d
			}
			if prev > 1e-9 {
				t.Errorf("did not converge: distance %v", prev)
			}
		})
	}
}

func TestScalarSettleAndSnap(t *testing.T) {
	s := NewScalar(1)
	s.Target = 0.8
	if s.Settled(0.001) {
		t.Fatal("should not be settled before stepping")
	}
	n := 0
	for !s.Settled(0.001) {
		s.Step(0.2)
		n++
		if n > 100 {
			t.Fatal("never settled")
		}
	}
	s.Snap()
	if s.Current != 0.8 || s.Delta() != 0 {
		t.Errorf("after Snap current = %v", s.Current)
	}
}

func TestPointSettled(t *testing.T) {
	p := Point{Current: Vec2{0, 0}, Target: Vec2{10, 0.05}}
	if p.Settled(0.1) {
		t.Error("X is far from target")
	}
	p.Current.X = 9.95
	if !p.Settled(0.1) {
		t.Error("both axes are within epsilon")
	}
	p.Snap()
	if p.Current != p.Target {
		t.Error("Snap should copy the target")
	}
}
