// Package site builds the Ideon portfolio pages on top of the animation
// engine: a router, the pinned navigation bar, the scroll progress bar, the
// page builders and the contact form.
package site

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ideonstudio/ideon"
	"github.com/ideonstudio/ideon/contact"
	"github.com/ideonstudio/ideon/content"
	"github.com/tanema/gween/ease"
)

// navSolidAfter is the scroll offset past which the nav bar gets its
// backdrop.
const navSolidAfter = 50.0

// Site is an Effect that shows one page at a time. Navigation is deferred
// to the next frame so clicks never tear down the element being dispatched.
type Site struct {
	// Start is the first route shown on Mount.
	Start string

	scene   *ideon.Scene
	catalog *content.Catalog
	sender  contact.Sender
	router  Router

	nav      *ideon.Element
	progress *ideon.Element
	alert    *ideon.Element
	alertMsg string

	navAlpha float64
	navSolid bool
	navTween *ideon.ValueTween

	page       *page
	path       string
	history    []string
	filter     string
	builtWidth float64

	pending navigation

	lastExternal string
	setTitle     func(string)
	handles      []ideon.CallbackHandle
}

// New creates a site over catalog. sender delivers contact messages and may
// be nil, in which case every submission fails.
func New(catalog *content.Catalog, sender contact.Sender) *Site {
	s := &Site{
		Start:    "/",
		catalog:  catalog,
		sender:   sender,
		setTitle: ebiten.SetWindowTitle,
	}
	// patterns are constants; Add cannot fail on them
	_ = s.router.Add("/", homePage)
	_ = s.router.Add("/projects", projectsPage)
	_ = s.router.Add("/projects/{id}", projectDetailPage)
	_ = s.router.Add("/about", aboutPage)
	_ = s.router.Add("/connect", connectPage)
	s.router.NotFound(notFoundPage)
	return s
}

// Mount implements ideon.Effect. The start route is built immediately.
func (s *Site) Mount(scene *ideon.Scene) {
	s.scene = scene
	s.handles = append(s.handles,
		scene.OnClick(s.onClick),
		scene.OnScroll(func(ideon.ScrollContext) { s.pin() }),
		scene.OnResize(s.onResize),
		scene.OnFrame(s.onFrame),
	)
	s.load(s.Start, false)
}

// Unmount implements ideon.Effect.
func (s *Site) Unmount() {
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
	s.closePage()
	for _, el := range []*ideon.Element{s.nav, s.progress, s.alert} {
		if el != nil {
			el.Dispose()
		}
	}
	s.nav, s.progress, s.alert = nil, nil, nil
	s.alertMsg = ""
	if s.scene != nil {
		s.scene.SetKeyboardScroll(true)
	}
}

// Route returns the path of the page on screen.
func (s *Site) Route() string {
	return s.path
}

// Title returns the current page title.
func (s *Site) Title() string {
	if s.page == nil {
		return ""
	}
	return s.page.title
}

// Page returns the root element of the current page.
func (s *Site) Page() *ideon.Element {
	if s.page == nil {
		return nil
	}
	return s.page.root
}

// Nav returns the navigation bar.
func (s *Site) Nav() *ideon.Element {
	return s.nav
}

// ProgressBar returns the scroll progress indicator.
func (s *Site) ProgressBar() *ideon.Element {
	return s.progress
}

// Form returns the contact form when the Connect page is shown.
func (s *Site) Form() *ContactForm {
	if s.page == nil {
		return nil
	}
	return s.page.form
}

// Filter returns the selected project category, "" for all.
func (s *Site) Filter() string {
	return s.filter
}

// LastExternalLink returns the most recent link that leaves the site.
func (s *Site) LastExternalLink() string {
	return s.lastExternal
}

// navigation is a page change waiting for the next frame.
type navigation struct {
	path       string
	keepScroll bool
	back       bool
	set        bool
}

// Navigate shows path on the next frame. The current page is pushed onto
// the history.
func (s *Site) Navigate(path string) {
	s.pending = navigation{path: cleanPath(path), set: true}
}

// Reload rebuilds the current page on the next frame, keeping the scroll
// position.
func (s *Site) Reload() {
	s.pending = navigation{path: s.path, keepScroll: true, set: true}
}

// Back returns to the previous page on the next frame. Returns false when
// there is none.
func (s *Site) Back() bool {
	if len(s.history) == 0 {
		return false
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.pending = navigation{path: prev, back: true, set: true}
	return true
}

// History returns the visited paths, oldest first. The returned slice MUST
// NOT be mutated.
func (s *Site) History() []string {
	return s.history
}

// load replaces the current page with the one routed from path.
func (s *Site) load(path string, keepScroll bool) {
	s.visit(path, keepScroll, false)
}

func (s *Site) visit(path string, keepScroll, back bool) {
	path = cleanPath(path)
	if !back && s.path != "" && path != s.path {
		s.history = append(s.history, s.path)
	}
	if path != s.path && path != "/projects" {
		s.filter = ""
	}
	vp := s.scene.Viewport()
	scroll := vp.ScrollY
	s.closePage()

	route, params, _ := s.router.Match(path)
	b := newBuilder(s, vp.Width)
	pg := route.Build(b, params)
	pg.root.X = max(0, (vp.Width-pg.root.Width)/2)
	pg.root.Y = navHeight
	s.scene.Root().AddChild(pg.root)
	s.page, s.path, s.builtWidth = pg, path, vp.Width

	s.buildNav()
	s.buildProgress()
	if s.alert != nil {
		// keep the alert above the new page
		s.scene.Root().AddChild(s.alert)
	}

	vp.SetContentHeight(navHeight + pg.root.Height)
	if keepScroll {
		vp.ScrollTo(scroll, 0, nil)
	} else {
		vp.ScrollTo(0, 0, nil)
	}
	for _, fn := range pg.mounted {
		fn()
	}
	s.pin()
	if s.setTitle != nil {
		s.setTitle("Ideon | " + pg.title)
	}
}

func (s *Site) closePage() {
	if s.page == nil {
		return
	}
	if s.page.form != nil {
		s.page.form.close()
	}
	s.page.root.Dispose()
	s.page = nil
}

// buildNav creates the navigation bar with the current route highlighted.
func (s *Site) buildNav() {
	if s.nav != nil {
		s.nav.Dispose()
	}
	vw := s.scene.Viewport().Width
	b := newBuilder(s, vw)

	logo := b.link("nav-logo", "IDEON", "/", sizeSubhead, colorText)
	links := []*ideon.Element{logo}
	for _, l := range []struct{ label, href string }{
		{"Home", "/"},
		{"Work", "/projects"},
		{"About", "/about"},
	} {
		clr := colorMuted
		if l.href == s.path || (l.href == "/projects" && strings.HasPrefix(s.path, "/projects/")) {
			clr = colorAccent
		}
		links = append(links, b.link("nav-"+l.label, l.label, l.href, sizeBody, clr))
	}
	links = append(links, b.button("nav-connect", "Connect", "/connect", true))

	inner := b.row("nav-links", b.width, 24, links...)
	inner.X = max(0, (vw-inner.Width)/2)
	inner.Y = (navHeight - inner.Height) / 2

	nav := ideon.NewElement("nav", "nav")
	nav.Width, nav.Height = vw, navHeight
	nav.Fill = colorNav.WithAlpha(colorNav.A * s.navAlpha)
	nav.AddChild(inner)
	s.scene.Root().AddChild(nav)
	s.nav = nav
}

func (s *Site) buildProgress() {
	if s.progress != nil {
		s.progress.Dispose()
	}
	bar := ideon.NewElement("scroll-progress", "div")
	bar.Height = progressBarHeight
	bar.Fill = colorAccent
	s.scene.Root().AddChild(bar)
	s.progress = bar
}

// pin keeps the fixed chrome at the top of the viewport and updates the
// progress bar and nav backdrop from the scroll position.
func (s *Site) pin() {
	vp := s.scene.Viewport()
	if s.nav != nil {
		s.nav.Y = vp.ScrollY
	}
	if s.progress != nil {
		s.progress.Y = vp.ScrollY
		s.progress.Width = vp.Width * vp.Progress()
	}
	if s.alert != nil {
		s.alert.Y = vp.ScrollY
	}
	solid := vp.ScrollY > navSolidAfter
	if solid != s.navSolid {
		s.navSolid = solid
		to := 0.0
		if solid {
			to = 1
		}
		s.navTween = ideon.TweenValue(&s.navAlpha, to, 300*time.Millisecond, ease.OutCubic)
	}
}

func (s *Site) onResize(ctx ideon.ResizeContext) {
	if ctx.Width == s.builtWidth {
		s.pin()
		return
	}
	s.load(s.path, true)
}

func (s *Site) onFrame(fc ideon.FrameContext) {
	if s.pending.set {
		n := s.pending
		s.pending = navigation{}
		s.visit(n.path, n.keepScroll, n.back)
	}
	if s.navTween != nil {
		s.navTween.Update(float32(fc.Dt))
		if s.nav != nil {
			s.nav.Fill = colorNav.WithAlpha(colorNav.A * s.navAlpha)
		}
		if s.navTween.Done {
			s.navTween = nil
		}
	}
	if s.page != nil && s.page.gallery != nil {
		s.page.gallery.update(float32(fc.Dt))
	}
	form := s.Form()
	if form != nil {
		form.poll()
	}
	typing := form != nil && form.focused() != nil && s.alert == nil
	s.scene.SetKeyboardScroll(!typing)
	if s.scene.ManualInput() {
		return
	}
	switch {
	case s.alert != nil:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.DismissAlert()
		}
	case typing:
		form.pollKeys()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		s.Back()
	}
}

// onClick routes a click to the alert, the form, a filter or a link.
func (s *Site) onClick(ctx ideon.PointerContext) {
	el := ctx.Target
	if s.alert != nil {
		if el != nil && el.UserData == (alertDismiss{}) {
			s.DismissAlert()
		}
		return
	}
	form := s.Form()
	if el == nil {
		if form != nil {
			form.Focus("")
		}
		return
	}
	if form != nil && form.handleClick(el) {
		return
	}
	if form != nil {
		form.Focus("")
	}
	for p := el; p != nil; p = p.Parent {
		switch c := p.UserData.(type) {
		case galleryStep:
			c.g.Step(c.delta)
			return
		case galleryJump:
			c.g.Jump(c.index)
			return
		}
		if f, ok := p.UserData.(filterChoice); ok {
			s.filter = string(f)
			if s.filter == content.CategoryAll {
				s.filter = ""
			}
			s.Reload()
			return
		}
		if p.Href == "" {
			continue
		}
		if isExternal(p.Href) {
			s.lastExternal = p.Href
			_, _ = fmt.Fprintf(os.Stderr, "[ideon] open %s\n", p.Href)
			return
		}
		s.Navigate(p.Href)
		return
	}
}

// alertDismiss marks the alert's OK button.
type alertDismiss struct{}

// Alert shows a blocking notification. Until it is dismissed no other
// element reacts to clicks. A second alert replaces the first.
func (s *Site) Alert(msg string) {
	s.DismissAlert()
	vp := s.scene.Viewport()
	b := newBuilder(s, vp.Width)

	w := min(420, b.width)
	ok := b.button("alert-ok", "OK", "", true)
	ok.UserData = alertDismiss{}
	panel := b.card("alert-panel", w,
		b.textWidth("alert-message", "p", msg, sizeBody, colorText, w),
		ok,
	)
	panel.Fill = ideon.Color{R: 0.08, G: 0.08, B: 0.12, A: 1}
	panel.X = (vp.Width - panel.Width) / 2
	panel.Y = (vp.Height - panel.Height) / 2

	backdrop := ideon.NewElement("alert", "dialog")
	backdrop.Role = "alertdialog"
	backdrop.Width, backdrop.Height = vp.Width, vp.Height
	backdrop.Fill = colorBackdrop
	// swallows hover and clicks meant for the page below
	backdrop.Interactive = true
	backdrop.Cursor = ideon.CursorDefault
	backdrop.AddChild(panel)
	backdrop.Y = vp.ScrollY
	s.scene.Root().AddChild(backdrop)
	s.alert, s.alertMsg = backdrop, msg
}

// AlertText returns the message of the alert on screen, or "".
func (s *Site) AlertText() string {
	return s.alertMsg
}

// DismissAlert closes the alert if one is shown.
func (s *Site) DismissAlert() {
	if s.alert == nil {
		return
	}
	s.alert.Dispose()
	s.alert, s.alertMsg = nil, ""
}
