package ideon

import "testing"

func TestAddChildReparents(t *testing.T) {
	a := NewElement("a", "div")
	b := NewElement("b", "div")
	c := NewElement("c", "div")
	a.AddChild(c)
	b.AddChild(c)
	if c.Parent != b || a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Error("AddChild should move the child to its new parent")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewElement("a", "div")
	b := NewElement("b", "div")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	b.AddChild(a)
}

func TestDisposeRunsHooks(t *testing.T) {
	parent := NewElement("p", "div")
	child := NewElement("c", "div")
	parent.AddChild(child)
	var hooks []string
	parent.OnDispose(func() { hooks = append(hooks, "parent") })
	child.OnDispose(func() { hooks = append(hooks, "child") })
	parent.Dispose()
	parent.Dispose()
	if len(hooks) != 2 || hooks[0] != "child" {
		t.Errorf("hooks = %v, want child then parent once", hooks)
	}
	if !child.IsDisposed() || child.Parent != nil {
		t.Error("child should be disposed and detached")
	}
}

func TestPageAndVisualRect(t *testing.T) {
	root := NewElement("root", "body")
	sec := NewElement("sec", "section")
	sec.X, sec.Y = 10, 100
	sec.OffsetY = 20
	el := NewElement("el", "div")
	el.X, el.Y, el.Width, el.Height = 5, 50, 30, 40
	el.OffsetX = 3
	el.ScrollOffsetY = 7
	root.AddChild(sec)
	sec.AddChild(el)

	if r := el.PageRect(); r != (Rect{X: 15, Y: 150, Width: 30, Height: 40}) {
		t.Errorf("PageRect = %+v", r)
	}
	if r := el.VisualRect(); r != (Rect{X: 18, Y: 177, Width: 30, Height: 40}) {
		t.Errorf("VisualRect = %+v", r)
	}
}

func TestLayoutColumnAndRow(t *testing.T) {
	col := NewElement("col", "div")
	for _, h := range []float64{10, 20, 30} {
		c := NewElement("c", "div")
		c.Height = h
		col.AddChild(c)
	}
	col.LayoutColumn(5, 2)
	if ys := []float64{col.Children()[0].Y, col.Children()[1].Y, col.Children()[2].Y}; ys[0] != 5 || ys[1] != 17 || ys[2] != 39 {
		t.Errorf("column ys = %v", ys)
	}
	if col.Height != 74 {
		t.Errorf("column height = %v, want 74", col.Height)
	}

	row := NewElement("row", "div")
	row.Width = 100
	for i := 0; i < 3; i++ {
		c := NewElement("c", "div")
		c.Width, c.Height = 40, 10
		row.AddChild(c)
	}
	row.LayoutRow(0, 10)
	third := row.Children()[2]
	if third.X != 0 || third.Y != 20 {
		t.Errorf("third child at (%v, %v), want wrapped to (0, 20)", third.X, third.Y)
	}
	if row.Height != 30 {
		t.Errorf("row height = %v, want 30", row.Height)
	}
}

func TestIsClickable(t *testing.T) {
	plain := func() *Element { return NewElement("x", "div") }
	tests := []struct {
		name string
		el   func() *Element
		want bool
	}{
		{"plain div", plain, false},
		{"anchor", func() *Element { return NewElement("a", "a") }, true},
		{"button", func() *Element { return NewElement("b", "button") }, true},
		{"input", func() *Element { return NewElement("i", "input") }, true},
		{"role button", func() *Element { e := plain(); e.Role = "button"; return e }, true},
		{"btn class", func() *Element { e := plain(); e.Classes = []string{"btn"}; return e }, true},
		{"nav-link class", func() *Element { e := plain(); e.Classes = []string{"nav-link"}; return e }, true},
		{"href", func() *Element { e := plain(); e.Href = "/x"; return e }, true},
		{"pointer cursor", func() *Element { e := plain(); e.Cursor = CursorPointer; return e }, true},
		{"inside a link", func() *Element {
			a := NewElement("a", "a")
			span := NewElement("s", "span")
			a.AddChild(span)
			return span
		}, true},
		{"default cursor stops the walk", func() *Element {
			a := NewElement("a", "a")
			span := NewElement("s", "span")
			span.Cursor = CursorDefault
			a.AddChild(span)
			return span
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClickable(tt.el()); got != tt.want {
				t.Errorf("IsClickable = %v, want %v", got, tt.want)
			}
		})
	}
	if IsClickable(nil) {
		t.Error("nil should not be clickable")
	}
}
