package ideon

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// CursorStyle is the pointer style an element requests while hovered.
type CursorStyle uint8

const (
	CursorAuto    CursorStyle = iota // inherit from the parent
	CursorDefault                    // plain arrow
	CursorPointer                    // hand; marks the element as clickable
	CursorText                       // text caret
)

// elementIDCounter is a plain counter; the scene is single-threaded.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is a box in the page tree. Layout fields (X, Y, Width, Height) are
// relative to the parent; visual fields (Alpha, OffsetX, OffsetY, Scale,
// Rotation, ScrollOffsetY) are driven by animations and do not affect
// layout.
type Element struct {
	// Identity
	ID   uint32
	Name string
	// Tag, Role and Classes describe the element for hover detection, the
	// way markup would.
	Tag     string
	Role    string
	Classes []string
	Cursor  CursorStyle

	// Hierarchy
	Parent   *Element
	children []*Element

	// Layout (parent-relative)
	X, Y          float64
	Width, Height float64

	// Visual state
	Alpha    float64
	OffsetX  float64
	OffsetY  float64
	Scale    float64
	Rotation float64 // degrees
	// ScrollOffsetY is written by parallax and composes with OffsetY.
	ScrollOffsetY float64
	Visible       bool

	// Content
	Text      string
	TextSize  float64
	TextColor Color
	Fill      Color
	Border    Color
	Image     *ebiten.Image

	// Href is the route a click navigates to, when set.
	Href string
	// Interactive elements participate in hit testing.
	Interactive bool

	OnClick        func(PointerContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	UserData any

	disposed  bool
	onDispose []func()
}

// NewElement creates a visible, fully opaque element.
func NewElement(name, tag string) *Element {
	return &Element{
		ID:        nextElementID(),
		Name:      name,
		Tag:       tag,
		Alpha:     1,
		Scale:     1,
		Visible:   true,
		TextColor: ColorWhite,
	}
}

// AddChild appends child to this element's children. If child already has
// a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element.
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("ideon: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("ideon: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("ideon: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this element from its parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// HasClass reports whether name is one of the element's classes.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.Classes, name)
}

// OnDispose registers fn to run when the element is disposed. Observation
// and animation subjects use it to release themselves on unmount.
func (e *Element) OnDispose(fn func()) {
	e.onDispose = append(e.onDispose, fn)
}

// Dispose removes the element from its parent, marks it disposed, runs its
// dispose hooks, and disposes all descendants.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	hooks := e.onDispose
	e.onDispose = nil
	for _, fn := range hooks {
		fn()
	}
	e.children = nil
	e.Parent = nil
	e.OnClick = nil
	e.OnPointerEnter = nil
	e.OnPointerLeave = nil
	e.Image = nil
	e.UserData = nil
}

// IsDisposed reports whether Dispose has been called.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// PageRect returns the element's layout rectangle in page space. Visual
// offsets are not included.
func (e *Element) PageRect() Rect {
	x, y := e.X, e.Y
	for p := e.Parent; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return Rect{X: x, Y: y, Width: e.Width, Height: e.Height}
}

// VisualRect returns the page-space rectangle including the accumulated
// visual offsets of the element and its ancestors. Scale and rotation are
// not included.
func (e *Element) VisualRect() Rect {
	r := e.PageRect()
	for p := e; p != nil; p = p.Parent {
		r.X += p.OffsetX
		r.Y += p.OffsetY + p.ScrollOffsetY
	}
	return r
}

// LayoutColumn stacks children vertically inside padding, separated by gap,
// and grows Height to fit. Children keep their own X offset.
func (e *Element) LayoutColumn(padding, gap float64) {
	y := padding
	for i, c := range e.children {
		if i > 0 {
			y += gap
		}
		c.Y = y
		y += c.Height
	}
	e.Height = y + padding
}

// LayoutRow places children left to right separated by gap, wrapping to a
// new row when the next child would exceed Width. Height grows to fit.
func (e *Element) LayoutRow(padding, gap float64) {
	x, y, rowH := padding, padding, 0.0
	for _, c := range e.children {
		if x > padding && x+c.Width > e.Width-padding {
			x = padding
			y += rowH + gap
			rowH = 0
		}
		c.X = x
		c.Y = y
		x += c.Width + gap
		rowH = max(rowH, c.Height)
	}
	e.Height = y + rowH + padding
}

// isAncestor reports whether candidate is an ancestor of (or equal to) el.
func isAncestor(candidate, el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

var clickableTags = []string{"a", "button", "input", "select", "textarea", "label", "summary"}
var clickableRoles = []string{"button", "link"}
var clickableClasses = []string{"clickable", "btn", "nav-link"}

// IsClickable walks from el up its ancestry and reports whether any element
// is interactive: an interactive tag or role, a clickable class, an Href, or
// a pointer cursor style. The nearest explicit non-pointer cursor style
// stops the walk.
func IsClickable(el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if slices.Contains(clickableTags, p.Tag) || slices.Contains(clickableRoles, p.Role) {
			return true
		}
		if p.Href != "" {
			return true
		}
		for _, c := range clickableClasses {
			if p.HasClass(c) {
				return true
			}
		}
		switch p.Cursor {
		case CursorPointer:
			return true
		case CursorDefault, CursorText:
			return false
		}
	}
	return false
}
