package site

import (
	"slices"
	"time"

	"github.com/ideonstudio/ideon"
)

// page is a built route: a root element plus anything the site needs to
// reach after mounting it.
type page struct {
	title string
	root  *ideon.Element
	form  *ContactForm
	// gallery is the detail page's screenshot carousel, if any.
	gallery *gallery
	// mounted runs once the root is attached and laid out.
	mounted []func()
}

// builder creates page elements at a fixed content width and attaches
// scroll reveals as it goes.
type builder struct {
	scene *ideon.Scene
	site  *Site
	width float64
	cfg   ideon.RevealConfig
	pg    *page
}

func newBuilder(s *Site, viewportWidth float64) *builder {
	return &builder{
		scene: s.scene,
		site:  s,
		width: contentWidth(viewportWidth),
		cfg:   s.scene.Config().Reveal,
		pg:    &page{},
	}
}

// contentWidth is the page column width for a viewport width.
func contentWidth(vw float64) float64 {
	return max(0, min(vw-2*pagePadding, maxContentWidth))
}

// columns is how many grid cards fit across width.
func columns(width float64) int {
	switch {
	case width >= 900:
		return 3
	case width >= 600:
		return 2
	}
	return 1
}

func (b *builder) afterMount(fn func()) {
	b.pg.mounted = append(b.pg.mounted, fn)
}

func (b *builder) text(name, tag, txt string, size float64, clr ideon.Color) *ideon.Element {
	return b.textWidth(name, tag, txt, size, clr, b.width)
}

func (b *builder) textWidth(name, tag, txt string, size float64, clr ideon.Color, width float64) *ideon.Element {
	el := ideon.NewElement(name, tag)
	el.Text = txt
	el.TextSize = size
	el.TextColor = clr
	el.Width = width
	_, h := ideon.MeasureText(txt, size, width-2*ideon.TextPadding)
	el.Height = h + 2*ideon.TextPadding
	return el
}

func (b *builder) column(name string, width, padding, gap float64, kids ...*ideon.Element) *ideon.Element {
	el := ideon.NewElement(name, "div")
	el.Width = width
	for _, k := range kids {
		if k == nil {
			continue
		}
		k.X = padding
		el.AddChild(k)
	}
	el.LayoutColumn(padding, gap)
	return el
}

func (b *builder) row(name string, width, gap float64, kids ...*ideon.Element) *ideon.Element {
	el := ideon.NewElement(name, "div")
	el.Width = width
	for _, k := range kids {
		el.AddChild(k)
	}
	el.LayoutRow(0, gap)
	return el
}

// grid lays kids out in equal-width columns. Each kid is built by fn at the
// computed cell width.
func (b *builder) grid(name string, n int, fn func(i int, cellWidth float64) *ideon.Element) *ideon.Element {
	const gap = 24.0
	cols := columns(b.width)
	cell := (b.width - gap*float64(cols-1)) / float64(cols)
	kids := make([]*ideon.Element, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, fn(i, cell))
	}
	// equalize row heights so the grid reads as a grid
	for start := 0; start < len(kids); start += cols {
		end := min(start+cols, len(kids))
		h := 0.0
		for _, k := range kids[start:end] {
			h = max(h, k.Height)
		}
		for _, k := range kids[start:end] {
			k.Height = h
		}
	}
	return b.row(name, b.width, gap, kids...)
}

// card wraps kids in a bordered panel of the given width.
func (b *builder) card(name string, width float64, kids ...*ideon.Element) *ideon.Element {
	const pad = 20.0
	for _, k := range kids {
		if k != nil {
			k.Width = min(k.Width, width-2*pad)
		}
	}
	el := b.column(name, width, pad, 8, kids...)
	el.Fill = colorCard
	el.Border = colorBorder
	return el
}

// link creates a clickable label that navigates to href.
func (b *builder) link(name, label, href string, size float64, clr ideon.Color) *ideon.Element {
	w, h := ideon.MeasureText(label, size, 0)
	el := ideon.NewElement(name, "a")
	el.Text = label
	el.TextSize = size
	el.TextColor = clr
	el.Width = w + 2*ideon.TextPadding
	el.Height = h + 2*ideon.TextPadding
	el.Href = href
	el.Interactive = true
	el.Classes = []string{"nav-link"}
	return el
}

// button creates a padded, filled or outlined call to action.
func (b *builder) button(name, label, href string, primary bool) *ideon.Element {
	el := b.link(name, label, href, sizeBody, colorText)
	el.Tag = "button"
	el.Classes = []string{"btn"}
	el.Width += 24
	el.Height += 8
	if primary {
		el.Fill = colorAccent.WithAlpha(0.9)
	} else {
		el.Border = colorBorder
	}
	return el
}

// section stacks kids with a standard gap, centered in the content column.
func (b *builder) section(name string, kids ...*ideon.Element) *ideon.Element {
	return b.column(name, b.width, 0, 20, kids...)
}

// build finishes the page: sections are stacked vertically above the
// footer.
func (b *builder) build(title string, sections ...*ideon.Element) *page {
	kids := append(slices.Clip(sections), b.footer())
	root := b.column("page", b.width, 0, sectionGap, kids...)
	root.Height += sectionGap
	b.pg.title = title
	b.pg.root = root
	return b.pg
}

// --- animation helpers ---

func (b *builder) revealOptions(effect ideon.RevealEffect, delay time.Duration) ideon.RevealOptions {
	opts := b.cfg.RevealOptions()
	if effect != "" {
		opts.Effect = effect
	}
	opts.Delay = delay
	return opts
}

// reveal hides el and reveals it once when scrolled into view.
func (b *builder) reveal(el *ideon.Element, effect ideon.RevealEffect, delay time.Duration) *ideon.Element {
	b.scene.Reveal(el, b.revealOptions(effect, delay))
	return el
}

// stagger reveals el's children one after another.
func (b *builder) stagger(el *ideon.Element, effect ideon.RevealEffect) *ideon.Element {
	b.scene.Stagger(el, ideon.StaggerOptions{
		RevealOptions: b.revealOptions(effect, 0),
		Interval:      b.cfg.StaggerInterval,
	})
	return el
}

// animatedText builds a heading whose words reveal one after another.
func (b *builder) animatedText(name, tag, txt string, size float64, clr ideon.Color, effect ideon.RevealEffect) *ideon.Element {
	el := b.text(name, tag, txt, size, clr)
	opts := b.cfg.TextOptions()
	if effect != "" {
		opts.Effect = effect
	}
	b.scene.RevealText(el, opts)
	return el
}

// parallax attaches a parallax effect once el is on the page.
func (b *builder) parallax(el *ideon.Element, speed float64) *ideon.Element {
	b.afterMount(func() { b.scene.Parallax(el, speed) })
	return el
}

// stat builds a count-up number with a caption.
func (b *builder) stat(name string, end float64, suffix, caption string, width float64) *ideon.Element {
	num := b.textWidth(name+"-number", "span", "0"+suffix, sizeStat, colorAccent, width-40)
	b.scene.CountUp(num, ideon.CountUpOptions{End: end, Suffix: suffix})
	label := b.textWidth(name+"-label", "span", caption, sizeSmall, colorMuted, width-40)
	return b.card(name, width, num, label)
}
