package ideon

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestViewportScrollClamp(t *testing.T) {
	v := &Viewport{Width: 800, Height: 600, ContentHeight: 1000}
	tests := []struct {
		name string
		dy   float64
		want float64
	}{
		{"down", 100, 100},
		{"past end", 1000, 400},
		{"back up", -150, 250},
		{"past top", -1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.ScrollBy(tt.dy)
			if v.ScrollY != tt.want {
				t.Errorf("ScrollY = %v, want %v", v.ScrollY, tt.want)
			}
		})
	}
}

func TestViewportProgress(t *testing.T) {
	v := &Viewport{Width: 800, Height: 600, ContentHeight: 1000}
	if v.Progress() != 0 {
		t.Errorf("Progress at top = %v", v.Progress())
	}
	v.ScrollBy(200)
	if v.Progress() != 0.5 {
		t.Errorf("Progress = %v, want 0.5", v.Progress())
	}
	short := &Viewport{Height: 600, ContentHeight: 300}
	if short.Progress() != 0 || short.MaxScroll() != 0 {
		t.Error("a page that fits should not scroll")
	}
}

func TestViewportSmoothScroll(t *testing.T) {
	v := &Viewport{Width: 800, Height: 600, ContentHeight: 2000}
	v.ScrollTo(500, 0.5, ease.OutCubic)
	if !v.Scrolling() {
		t.Fatal("expected a smooth scroll in flight")
	}
	prev := v.ScrollY
	for i := 0; i < 40; i++ {
		v.update(1.0 / 60)
		if v.ScrollY < prev {
			t.Fatalf("smooth scroll went backwards at frame %d", i)
		}
		prev = v.ScrollY
	}
	if v.Scrolling() {
		t.Error("scroll should have finished")
	}
	if math.Abs(v.ScrollY-500) > 1e-3 {
		t.Errorf("ScrollY = %v, want 500", v.ScrollY)
	}
	v.ScrollTo(100, 0, nil)
	if v.ScrollY != 100 || v.Scrolling() {
		t.Error("zero duration should jump")
	}
}

func TestViewportCoordinates(t *testing.T) {
	v := &Viewport{Width: 800, Height: 600, ContentHeight: 2000, ScrollY: 300}
	px, py := v.ToPage(10, 20)
	if px != 10 || py != 320 {
		t.Errorf("ToPage = (%v, %v)", px, py)
	}
	sx, sy := v.ToScreen(px, py)
	if sx != 10 || sy != 20 {
		t.Errorf("ToScreen = (%v, %v)", sx, sy)
	}
	if b := v.Bounds(); b.Y != 300 || b.Height != 600 {
		t.Errorf("Bounds = %+v", b)
	}
}

func TestScrollEvent(t *testing.T) {
	s := newTestScene(t)
	s.Viewport().SetContentHeight(2000)
	var got []ScrollContext
	s.OnScroll(func(ctx ScrollContext) { got = append(got, ctx) })
	s.InjectScroll(120)
	tick(t, s, 2)
	if len(got) != 1 {
		t.Fatalf("scroll events = %d, want 1", len(got))
	}
	if got[0].ScrollY != 120 || got[0].DeltaY != 120 {
		t.Errorf("scroll = %+v", got[0])
	}
}
