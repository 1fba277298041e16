package site

import (
	"fmt"
	"time"

	"github.com/ideonstudio/ideon"
	"github.com/ideonstudio/ideon/content"
	"github.com/tanema/gween/ease"
)

const (
	gallerySlide    = 60.0
	gallerySlideDur = 300 * time.Millisecond
	galleryDot      = 10.0
)

// gallery is a device-framed screenshot carousel. Prev and next wrap
// around at both ends.
type gallery struct {
	shots []content.Screenshot
	index int

	root    *ideon.Element
	screen  *ideon.Element
	caption *ideon.Element
	counter *ideon.Element
	dots    []*ideon.Element
	slide   *ideon.TweenGroup
}

// galleryStep marks a prev or next control.
type galleryStep struct {
	g     *gallery
	delta int
}

// galleryJump marks a dot that shows one screenshot directly.
type galleryJump struct {
	g     *gallery
	index int
}

// gallery builds the carousel for shots, or returns nil when there are none.
// Web projects get a wide laptop frame, everything else a phone.
func (b *builder) gallery(shots []content.Screenshot, category string) *ideon.Element {
	if len(shots) == 0 {
		return nil
	}
	g := &gallery{shots: shots}

	fw, fh := 280.0, 500.0
	if category == "web" {
		fw, fh = min(640, b.width-120), 400.0
	}
	const ctrl = 44.0

	root := ideon.NewElement("gallery", "div")
	root.Width = b.width

	frame := ideon.NewElement("gallery-frame", "div")
	frame.Width, frame.Height = fw, fh
	frame.X = (b.width - fw) / 2
	frame.Border = colorBorder
	frame.Fill = colorCard
	root.AddChild(frame)

	g.screen = ideon.NewElement("gallery-screen", "div")
	g.screen.X, g.screen.Y = 12, 12
	g.screen.Width, g.screen.Height = fw-24, fh-24
	g.screen.Fill = colorInput
	frame.AddChild(g.screen)

	g.caption = b.textWidth("gallery-caption", "span", "", sizeSubhead, colorText, g.screen.Width)
	g.screen.AddChild(g.caption)

	prev := b.link("gallery-prev", "‹", "", sizeHeading, colorText)
	prev.Tag = "button"
	prev.Width, prev.Height = ctrl, ctrl
	prev.Border = colorBorder
	prev.X = frame.X - ctrl - 16
	prev.Y = (fh - ctrl) / 2
	prev.UserData = galleryStep{g: g, delta: -1}
	root.AddChild(prev)

	next := b.link("gallery-next", "›", "", sizeHeading, colorText)
	next.Tag = "button"
	next.Width, next.Height = ctrl, ctrl
	next.Border = colorBorder
	next.X = frame.X + fw + 16
	next.Y = prev.Y
	next.UserData = galleryStep{g: g, delta: 1}
	root.AddChild(next)

	dots := ideon.NewElement("gallery-dots", "div")
	for i := range shots {
		d := ideon.NewElement(fmt.Sprintf("gallery-dot-%d", i), "button")
		d.Width, d.Height = galleryDot, galleryDot
		d.Interactive = true
		d.UserData = galleryJump{g: g, index: i}
		dots.AddChild(d)
		g.dots = append(g.dots, d)
	}
	dots.Width = float64(len(shots))*(galleryDot+8) - 8
	dots.LayoutRow(0, 8)
	dots.X = (b.width - dots.Width) / 2
	dots.Y = fh + 20
	root.AddChild(dots)

	g.counter = b.textWidth("gallery-counter", "span", "", sizeSmall, colorMuted, 80)
	g.counter.X = (b.width - g.counter.Width) / 2
	g.counter.Y = dots.Y + galleryDot + 12
	root.AddChild(g.counter)

	root.Height = g.counter.Y + g.counter.Height
	g.root = root
	g.show(0, 0)
	b.pg.gallery = g
	return root
}

// Index returns the shown screenshot.
func (g *gallery) Index() int {
	return g.index
}

// Step moves by delta screenshots, wrapping past either end.
func (g *gallery) Step(delta int) {
	n := len(g.shots)
	g.show(((g.index+delta)%n+n)%n, delta)
}

// Jump shows screenshot i. Out of range indexes are ignored.
func (g *gallery) Jump(i int) {
	if i < 0 || i >= len(g.shots) || i == g.index {
		return
	}
	dir := 1
	if i < g.index {
		dir = -1
	}
	g.show(i, dir)
}

// show switches to screenshot i and slides the screen in from dir.
func (g *gallery) show(i, dir int) {
	g.index = i
	shot := g.shots[i]
	g.caption.Text = shot.Alt
	_, h := ideon.MeasureText(shot.Alt, g.caption.TextSize, g.caption.Width-2*ideon.TextPadding)
	g.caption.Height = h + 2*ideon.TextPadding
	g.caption.Y = (g.screen.Height - g.caption.Height) / 2
	g.counter.Text = fmt.Sprintf("%d / %d", i+1, len(g.shots))
	for j, d := range g.dots {
		d.Fill = colorBorder
		if j == i {
			d.Fill = colorAccent
		}
	}
	if dir == 0 {
		g.slide = nil
		return
	}
	g.screen.OffsetX = gallerySlide * float64(dir)
	g.screen.Alpha = 0
	g.slide = ideon.TweenStyle(g.screen, ideon.IdentityStyle, gallerySlideDur, 0, ease.OutCubic)
}

func (g *gallery) update(dt float32) {
	if g.slide == nil {
		return
	}
	g.slide.Update(dt)
	if g.slide.Done {
		g.slide = nil
	}
}
