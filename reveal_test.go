package ideon

import (
	"math"
	"testing"
	"time"
)

// newPageScene returns a test scene with a 3000px page.
func newPageScene(t *testing.T) *Scene {
	t.Helper()
	s := newTestScene(t)
	s.Viewport().SetContentHeight(3000)
	return s
}

func addSection(s *Scene, y, h float64) *Element {
	el := NewElement("section", "section")
	el.X, el.Y, el.Width, el.Height = 0, y, 800, h
	s.Root().AddChild(el)
	return el
}

func TestHiddenStyle(t *testing.T) {
	tests := []struct {
		effect RevealEffect
		want   Style
	}{
		{RevealFadeUp, Style{Alpha: 0, OffsetY: 40, Scale: 1}},
		{RevealFadeIn, Style{Alpha: 0, Scale: 1}},
		{RevealSlideLeft, Style{Alpha: 0, OffsetX: -40, Scale: 1}},
		{RevealSlideRight, Style{Alpha: 0, OffsetX: 40, Scale: 1}},
		{RevealScale, Style{Alpha: 0, Scale: 0.9}},
		{RevealRotate, Style{Alpha: 0, OffsetY: 20, Scale: 1, Rotation: -5}},
	}
	for _, tt := range tests {
		t.Run(string(tt.effect), func(t *testing.T) {
			if got := tt.effect.HiddenStyle(40); got != tt.want {
				t.Errorf("HiddenStyle = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRevealDefaults(t *testing.T) {
	opts := DefaultConfig().Reveal.RevealOptions()
	if opts.Margin.Bottom != -50 || !opts.Once || opts.Threshold != 0.1 || opts.Effect != RevealFadeUp {
		t.Errorf("defaults = %+v", opts)
	}
}

func TestRevealInView(t *testing.T) {
	s := newPageScene(t)
	el := addSection(s, 100, 100)
	r := s.Reveal(el, s.Config().Reveal.RevealOptions())
	if el.Alpha != 0 || el.OffsetY != 40 {
		t.Fatalf("element should start hidden, got alpha %v offset %v", el.Alpha, el.OffsetY)
	}

	tick(t, s, 1)
	if !r.Visible() || !r.Settled() {
		t.Fatal("element in view should be revealed on the first frame")
	}
	if s.ObservationCount() != 0 {
		t.Error("once-only reveal should stop observing")
	}
	tick(t, s, 60)
	if el.Alpha != 1 || el.OffsetY != 0 {
		t.Errorf("revealed style alpha %v offset %v", el.Alpha, el.OffsetY)
	}
	if s.HandlerCount() != 0 {
		t.Errorf("finished transition left %d handlers", s.HandlerCount())
	}
}

func TestRevealBelowFold(t *testing.T) {
	s := newPageScene(t)
	el := addSection(s, 1000, 100)
	r := s.Reveal(el, s.Config().Reveal.RevealOptions())
	tick(t, s, 5)
	if r.Visible() {
		t.Fatal("element below the fold should stay hidden")
	}
	s.InjectScroll(600)
	tick(t, s, 1)
	if !r.Visible() {
		t.Error("element should reveal once scrolled into view")
	}
}

func TestRevealMarginAndThreshold(t *testing.T) {
	tests := []struct {
		name      string
		y         float64
		margin    Margin
		threshold float64
		want      bool
	}{
		{"inside shrunk viewport", 400, Margin{Bottom: -50}, 0.1, true},
		{"below shrunk viewport", 560, Margin{Bottom: -50}, 0.1, false},
		{"no margin", 560, Margin{}, 0.1, true},
		{"threshold met", 540, Margin{}, 0.5, true},
		{"threshold missed", 540, Margin{}, 0.7, false},
		{"grown viewport", 620, Margin{Bottom: 50}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPageScene(t)
			el := addSection(s, tt.y, 100)
			r := s.Reveal(el, RevealOptions{Threshold: tt.threshold, Margin: tt.margin, Once: true, Effect: RevealFadeIn})
			tick(t, s, 1)
			if r.Visible() != tt.want {
				t.Errorf("Visible = %v, want %v", r.Visible(), tt.want)
			}
		})
	}
}

func TestRevealRepeats(t *testing.T) {
	s := newPageScene(t)
	el := addSection(s, 100, 100)
	var changes []bool
	opts := s.Config().Reveal.RevealOptions()
	opts.Once = false
	opts.OnChange = func(v bool) { changes = append(changes, v) }
	r := s.Reveal(el, opts)

	tick(t, s, 1)
	s.InjectScroll(1000)
	tick(t, s, 60)
	if r.Visible() || el.Alpha != 0 {
		t.Errorf("element should hide again, visible %v alpha %v", r.Visible(), el.Alpha)
	}
	s.InjectScroll(-1000)
	tick(t, s, 1)
	if !r.Visible() {
		t.Error("element should reveal again")
	}
	if len(changes) != 3 || !changes[0] || changes[1] || !changes[2] {
		t.Errorf("changes = %v", changes)
	}
	if r.Settled() {
		t.Error("repeating reveal never settles")
	}
}

func TestRevealDelay(t *testing.T) {
	s := newPageScene(t)
	el := addSection(s, 100, 100)
	opts := s.Config().Reveal.RevealOptions()
	opts.Delay = 300 * time.Millisecond
	r := s.Reveal(el, opts)
	tick(t, s, 10)
	if r.Visible() || el.Alpha != 0 {
		t.Fatal("reveal should wait for its delay")
	}
	tick(t, s, 20)
	if !r.Visible() {
		t.Error("reveal should fire after its delay")
	}
}

func TestRevealReleasedOnDispose(t *testing.T) {
	s := newPageScene(t)
	el := addSection(s, 1000, 100)
	opts := s.Config().Reveal.RevealOptions()
	opts.Delay = time.Second
	r := s.Reveal(el, opts)
	s.InjectScroll(600)
	tick(t, s, 1)

	el.Dispose()
	if s.ObservationCount() != 0 || s.HandlerCount() != 0 {
		t.Errorf("observations %d handlers %d after dispose", s.ObservationCount(), s.HandlerCount())
	}
	tick(t, s, 90)
	if r.Visible() {
		t.Error("pending delay should be cancelled on dispose")
	}
}

func TestParallax(t *testing.T) {
	s := newPageScene(t)
	el := addSection(s, 1000, 100)
	p := s.Parallax(el, 0.1)
	if got := p.Offset(); math.Abs(got-(-40)) > 1e-9 {
		t.Fatalf("initial offset = %v, want -40", got)
	}
	s.InjectScroll(500)
	tick(t, s, 1)
	if got := el.ScrollOffsetY; math.Abs(got-10) > 1e-9 {
		t.Errorf("offset after scroll = %v, want 10", got)
	}
	el.Dispose()
	if s.HandlerCount() != 0 {
		t.Errorf("parallax left %d handlers", s.HandlerCount())
	}
}

func TestElementProgress(t *testing.T) {
	tests := []struct {
		top, height float64
		want        float64
	}{
		{600, 100, 0},
		{800, 100, 0},
		{250, 100, 0.5},
		{-100, 100, 1},
		{-500, 100, 1},
	}
	for _, tt := range tests {
		if got := ElementProgress(600, tt.top, tt.height); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ElementProgress(600, %v, %v) = %v, want %v", tt.top, tt.height, got, tt.want)
		}
	}
	if ElementProgress(0, 0, 0) != 0 {
		t.Error("zero span should report 0")
	}
}

func TestScrollProgressSubject(t *testing.T) {
	s := newPageScene(t)
	el := addSection(s, 850, 100)
	var last float64
	p := s.ScrollProgress(el, func(v float64) { last = v })
	if p.Progress() != 0 {
		t.Fatalf("initial progress = %v", p.Progress())
	}
	s.InjectScroll(600)
	tick(t, s, 1)
	if math.Abs(p.Progress()-0.5) > 1e-9 || last != p.Progress() {
		t.Errorf("progress = %v (callback %v), want 0.5", p.Progress(), last)
	}
}

func TestStagger(t *testing.T) {
	s := newPageScene(t)
	grid := addSection(s, 100, 300)
	var kids []*Element
	for i := 0; i < 3; i++ {
		c := NewElement("card", "div")
		c.Width, c.Height = 200, 100
		grid.AddChild(c)
		kids = append(kids, c)
	}
	opts := StaggerOptions{RevealOptions: s.Config().Reveal.RevealOptions(), Interval: 100 * time.Millisecond}
	st := s.Stagger(grid, opts)
	for i, c := range kids {
		if c.Alpha != 0 || c.OffsetY != 40 {
			t.Fatalf("child %d should start hidden", i)
		}
	}
	if grid.Alpha != 1 {
		t.Error("container itself stays visible")
	}
	if st.ChildDelay(2) != 200*time.Millisecond {
		t.Errorf("ChildDelay(2) = %v", st.ChildDelay(2))
	}

	tick(t, s, 6)
	if !st.Visible() {
		t.Fatal("stagger should fire when the container is in view")
	}
	if kids[0].Alpha == 0 {
		t.Error("first child should be animating")
	}
	if kids[2].Alpha != 0 {
		t.Error("third child should still be waiting")
	}
	tick(t, s, 120)
	for i, c := range kids {
		if c.Alpha != 1 || c.OffsetY != 0 {
			t.Errorf("child %d alpha %v offset %v", i, c.Alpha, c.OffsetY)
		}
	}
	if s.HandlerCount() != 0 {
		t.Errorf("finished stagger left %d handlers", s.HandlerCount())
	}
}

func TestRevealText(t *testing.T) {
	s := newPageScene(t)
	title := addSection(s, 100, 80)
	title.Text = "We Build, You Shine"
	title.TextSize = 56

	var changes int
	opts := s.Config().Reveal.TextOptions()
	opts.OnChange = func(bool) { changes++ }
	st := s.RevealText(title, opts)

	if title.Text != "" || title.NumChildren() != 4 {
		t.Fatalf("text %q with %d children, want 4 word elements", title.Text, title.NumChildren())
	}
	words := title.Children()
	for i, want := range []string{"We", "Build,", "You", "Shine"} {
		if words[i].Text != want || words[i].TextSize != 56 {
			t.Errorf("word %d = %q size %v", i, words[i].Text, words[i].TextSize)
		}
		if words[i].Alpha != 0 || words[i].OffsetY != 30 {
			t.Errorf("word %d should start hidden, got alpha %v offset %v", i, words[i].Alpha, words[i].OffsetY)
		}
		if got, want := st.ChildDelay(i), time.Duration(i)*80*time.Millisecond; got != want {
			t.Errorf("ChildDelay(%d) = %v, want %v", i, got, want)
		}
	}
	for i := 1; i < len(words); i++ {
		if words[i].X <= words[i-1].X && words[i].Y <= words[i-1].Y {
			t.Errorf("word %d not placed after word %d", i, i-1)
		}
	}

	// 50ms in: only the first word has started.
	tick(t, s, 3)
	if words[0].Alpha == 0 || words[1].Alpha != 0 {
		t.Errorf("after 50ms alphas = %v, %v", words[0].Alpha, words[1].Alpha)
	}
	// 100ms in: the second word has started, the third waits until 160ms.
	tick(t, s, 3)
	if words[1].Alpha == 0 || words[2].Alpha != 0 {
		t.Errorf("after 100ms alphas = %v, %v", words[1].Alpha, words[2].Alpha)
	}
	tick(t, s, 60)
	for i, w := range words {
		if w.Alpha != 1 || w.OffsetY != 0 {
			t.Errorf("word %d alpha %v offset %v after reveal", i, w.Alpha, w.OffsetY)
		}
	}

	s.InjectScroll(1000)
	tick(t, s, 2)
	s.InjectScroll(-1000)
	tick(t, s, 2)
	if changes != 1 || s.ObservationCount() != 0 {
		t.Errorf("changes = %d observations = %d, want a single trigger", changes, s.ObservationCount())
	}
}

func TestRevealTextWraps(t *testing.T) {
	s := newPageScene(t)
	el := addSection(s, 100, 40)
	el.Width = 120
	el.Text = "Start a Conversation"
	el.TextSize = 40
	s.RevealText(el, s.Config().Reveal.TextOptions())
	last := el.Children()[el.NumChildren()-1]
	if last.Y == 0 {
		t.Error("words wider than the box should wrap to a new row")
	}
	if el.Height < last.Y+last.Height {
		t.Errorf("height %v does not fit the last row ending at %v", el.Height, last.Y+last.Height)
	}
}
