package site

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ideonstudio/ideon"
	"github.com/ideonstudio/ideon/contact"
	"github.com/ideonstudio/ideon/content"
)

type fakeSender struct {
	mu    sync.Mutex
	err   error
	calls []contact.Message
}

func (f *fakeSender) Send(_ context.Context, m contact.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, m)
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestSite(t *testing.T, sender contact.Sender) (*ideon.Scene, *Site) {
	t.Helper()
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	cfg := ideon.DefaultConfig()
	cfg.Seed = 1
	scene := ideon.NewScene(cfg)
	scene.SetManualInput(true)
	scene.SetSize(1280, 800)
	s := New(cat, sender)
	s.setTitle = nil
	scene.Mount(s)
	t.Cleanup(scene.Close)
	return scene, s
}

func step(t *testing.T, scene *ideon.Scene, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := scene.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

func find(root *ideon.Element, name string) *ideon.Element {
	if root == nil {
		return nil
	}
	if root.Name == name {
		return root
	}
	for _, c := range root.Children() {
		if el := find(c, name); el != nil {
			return el
		}
	}
	return nil
}

// waitSend steps frames until the form finishes sending.
func waitSend(t *testing.T, scene *ideon.Scene, f *ContactForm) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for f.Sending() {
		if time.Now().After(deadline) {
			t.Fatal("send did not finish")
		}
		step(t, scene, 1)
		time.Sleep(time.Millisecond)
	}
}

func TestMountShowsStartRoute(t *testing.T) {
	scene, s := newTestSite(t, nil)
	if s.Route() != "/" || s.Title() != "Home" {
		t.Fatalf("route = %q title = %q", s.Route(), s.Title())
	}
	if s.Page() == nil || s.Nav() == nil || s.ProgressBar() == nil {
		t.Fatal("page chrome missing")
	}
	if got, min := scene.Viewport().ContentHeight, scene.Viewport().Height; got <= min {
		t.Errorf("content height = %v, want more than one screen", got)
	}
	if find(s.Page(), "hero-title") == nil {
		t.Error("hero title not built")
	}
}

func TestNavigateIsDeferred(t *testing.T) {
	scene, s := newTestSite(t, nil)
	home := s.Page()
	s.Navigate("/about")
	if s.Route() != "/" {
		t.Fatalf("navigated before the next frame")
	}
	step(t, scene, 1)
	if s.Route() != "/about" || s.Title() != "About" {
		t.Fatalf("route = %q title = %q", s.Route(), s.Title())
	}
	if !home.IsDisposed() {
		t.Error("previous page not disposed")
	}
	if h := s.History(); len(h) != 1 || h[0] != "/" {
		t.Errorf("history = %v", h)
	}
	if scene.Viewport().ScrollY != 0 {
		t.Errorf("scrollY = %v, want 0", scene.Viewport().ScrollY)
	}
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		path  string
		title string
	}{
		{"/projects", "Projects"},
		{"/projects/agriconnect", "Agri Connect"},
		{"/projects/examsprint", "Exam Sprint"},
		{"/projects/missing", "Project Not Found"},
		{"/about", "About"},
		{"/connect", "Connect"},
		{"/nowhere", "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			scene, s := newTestSite(t, nil)
			s.Navigate(tt.path)
			step(t, scene, 1)
			if s.Title() != tt.title {
				t.Errorf("title = %q, want %q", s.Title(), tt.title)
			}
		})
	}
}

func TestBack(t *testing.T) {
	scene, s := newTestSite(t, nil)
	if s.Back() {
		t.Fatal("Back with empty history")
	}
	s.Navigate("/projects")
	step(t, scene, 1)
	s.Navigate("/projects/skipsmart")
	step(t, scene, 1)
	if !s.Back() {
		t.Fatal("Back returned false")
	}
	step(t, scene, 1)
	if s.Route() != "/projects" {
		t.Errorf("route = %q, want /projects", s.Route())
	}
	if h := s.History(); len(h) != 1 || h[0] != "/" {
		t.Errorf("history = %v, want [/]", h)
	}
}

func TestNavLinkClick(t *testing.T) {
	scene, s := newTestSite(t, nil)
	link := find(s.Nav(), "nav-About")
	if link == nil {
		t.Fatal("nav link missing")
	}
	r := link.VisualRect()
	x, y := scene.Viewport().ToScreen(r.X+r.Width/2, r.Y+r.Height/2)
	scene.InjectClick(x, y)
	step(t, scene, 3)
	if s.Route() != "/about" {
		t.Errorf("route = %q, want /about", s.Route())
	}
	if !ideon.IsClickable(find(s.Nav(), "nav-Work")) {
		t.Error("nav links should count as clickable for the cursor")
	}
}

func TestExternalLinkStaysOnPage(t *testing.T) {
	scene, s := newTestSite(t, nil)
	s.Navigate("/connect")
	step(t, scene, 1)
	card := find(s.Page(), "method-email")
	if card == nil {
		t.Fatal("email method missing")
	}
	s.onClick(ideon.PointerContext{Target: find(card, "method-value")})
	step(t, scene, 1)
	if s.Route() != "/connect" {
		t.Errorf("route = %q", s.Route())
	}
	if s.LastExternalLink() != "mailto:ideon2026@gmail.com" {
		t.Errorf("external = %q", s.LastExternalLink())
	}
}

func TestProjectFilter(t *testing.T) {
	scene, s := newTestSite(t, nil)
	s.Navigate("/projects")
	step(t, scene, 1)
	s.onClick(ideon.PointerContext{Target: find(s.Page(), "filter-mobile")})
	step(t, scene, 1)
	if s.Filter() != "mobile" {
		t.Fatalf("filter = %q", s.Filter())
	}
	if find(s.Page(), "project-agriconnect") == nil {
		t.Error("mobile project missing after filtering")
	}
	s.onClick(ideon.PointerContext{Target: find(s.Page(), "filter-all")})
	step(t, scene, 1)
	if s.Filter() != "" {
		t.Errorf("filter = %q, want all", s.Filter())
	}
	s.Navigate("/about")
	step(t, scene, 1)
	if s.Filter() != "" {
		t.Error("filter should reset when leaving the projects page")
	}
}

func fillForm(f *ContactForm) {
	f.SetValue(FieldName, "Asha")
	f.SetValue(FieldEmail, "asha@example.com")
	f.SetValue(FieldProjectType, contact.ProjectTypes[0])
	f.SetValue(FieldMessage, "A campus app")
}

func TestContactSendFailureAlerts(t *testing.T) {
	sender := &fakeSender{err: errors.New("boom")}
	scene, s := newTestSite(t, sender)
	s.Navigate("/connect")
	step(t, scene, 1)
	f := s.Form()
	if f == nil {
		t.Fatal("form missing on connect page")
	}
	fillForm(f)
	f.Submit()
	if !f.Sending() {
		t.Fatal("Submit did not start sending")
	}
	f.Submit()
	waitSend(t, scene, f)
	if got := sender.count(); got != 1 {
		t.Errorf("send attempts = %d, want 1", got)
	}
	if s.AlertText() != SendFailedText {
		t.Errorf("alert = %q", s.AlertText())
	}
	if f.Submitted() {
		t.Error("failed send marked submitted")
	}
	if f.Value(FieldName) != "Asha" {
		t.Error("form contents lost after a failed send")
	}
}

func TestContactSendSuccess(t *testing.T) {
	sender := &fakeSender{}
	scene, s := newTestSite(t, sender)
	s.Navigate("/connect")
	step(t, scene, 1)
	f := s.Form()
	fillForm(f)
	f.Submit()
	waitSend(t, scene, f)
	if !f.Submitted() || s.AlertText() != "" {
		t.Fatalf("submitted = %v alert = %q", f.Submitted(), s.AlertText())
	}
	if sender.calls[0].Email != "asha@example.com" {
		t.Errorf("sent %+v", sender.calls[0])
	}
	if f.Value(FieldMessage) != "" {
		t.Error("fields not cleared")
	}
	if find(s.Page(), "success-title") == nil {
		t.Error("confirmation not shown")
	}
}

func TestContactInvalidDoesNotSend(t *testing.T) {
	sender := &fakeSender{}
	scene, s := newTestSite(t, sender)
	s.Navigate("/connect")
	step(t, scene, 1)
	f := s.Form()
	f.SetValue(FieldEmail, "asha@example.com")
	f.Submit()
	if f.Sending() || sender.count() != 0 {
		t.Fatal("invalid message was sent")
	}
	if s.AlertText() != "Name is required." {
		t.Errorf("alert = %q", s.AlertText())
	}
}

func TestFormTyping(t *testing.T) {
	scene, s := newTestSite(t, nil)
	s.Navigate("/connect")
	step(t, scene, 1)
	f := s.Form()
	f.Focus(FieldName)
	f.Type("Ravi\n")
	f.Backspace()
	if got := f.Value(FieldName); got != "Rav" {
		t.Errorf("name = %q, want Rav", got)
	}
	f.Focus(FieldMessage)
	f.Type("a\nb")
	if got := f.Value(FieldMessage); got != "a\nb" {
		t.Errorf("message = %q", got)
	}

	sel := find(s.Page(), "field-"+FieldProjectType)
	s.onClick(ideon.PointerContext{Target: sel})
	s.onClick(ideon.PointerContext{Target: sel})
	if got := f.Value(FieldProjectType); got != contact.ProjectTypes[1] {
		t.Errorf("project type = %q", got)
	}
}

func TestAlertBlocksClicks(t *testing.T) {
	scene, s := newTestSite(t, nil)
	s.Alert("hold on")
	s.onClick(ideon.PointerContext{Target: find(s.Nav(), "nav-About")})
	step(t, scene, 1)
	if s.Route() != "/" {
		t.Fatal("click went through the alert")
	}
	ok := find(scene.Root(), "alert-ok")
	if ok == nil {
		t.Fatal("alert button missing")
	}
	s.onClick(ideon.PointerContext{Target: ok})
	if s.AlertText() != "" {
		t.Error("alert not dismissed")
	}
}

func TestProgressBarFollowsScroll(t *testing.T) {
	scene, s := newTestSite(t, nil)
	scene.InjectScroll(300)
	step(t, scene, 1)
	vp := scene.Viewport()
	if vp.ScrollY != 300 {
		t.Fatalf("scrollY = %v", vp.ScrollY)
	}
	bar := s.ProgressBar()
	if bar.Y != vp.ScrollY || s.Nav().Y != vp.ScrollY {
		t.Errorf("chrome not pinned: bar %v nav %v", bar.Y, s.Nav().Y)
	}
	if want := vp.Width * vp.Progress(); bar.Width != want {
		t.Errorf("bar width = %v, want %v", bar.Width, want)
	}
	step(t, scene, 30)
	if s.navAlpha != 1 {
		t.Errorf("nav alpha = %v, want 1 after scrolling past the threshold", s.navAlpha)
	}
}

func TestUnmountReleasesEverything(t *testing.T) {
	cat, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	scene := ideon.NewScene(ideon.DefaultConfig())
	scene.SetManualInput(true)
	scene.SetSize(1280, 800)
	before := scene.HandlerCount()

	s := New(cat, nil)
	s.setTitle = nil
	scene.Mount(s)
	step(t, scene, 2)
	if scene.ObservationCount() == 0 {
		t.Fatal("home page registered no reveals")
	}
	scene.Unmount(s)
	if got := scene.HandlerCount(); got != before {
		t.Errorf("handlers = %d, want %d", got, before)
	}
	if got := scene.ObservationCount(); got != 0 {
		t.Errorf("observations = %d, want 0", got)
	}
	if n := scene.Root().NumChildren(); n != 0 {
		t.Errorf("root children = %d, want 0", n)
	}
}

func TestFooterOnEveryPage(t *testing.T) {
	for _, path := range []string{"/", "/projects", "/about", "/connect", "/nowhere"} {
		t.Run(path, func(t *testing.T) {
			scene, s := newTestSite(t, nil)
			s.Navigate(path)
			step(t, scene, 1)
			kids := s.Page().Children()
			if last := kids[len(kids)-1]; last.Name != "footer" {
				t.Errorf("last section = %q, want footer", last.Name)
			}
		})
	}
}

func TestFooterColumns(t *testing.T) {
	_, s := newTestSite(t, nil)
	cols := find(s.Page(), "footer-columns")
	if cols == nil || cols.NumChildren() != 4 {
		t.Fatalf("footer columns = %v", cols)
	}
	for _, c := range cols.Children() {
		if c.Y != 0 {
			t.Errorf("%s wrapped to y=%v at desktop width", c.Name, c.Y)
		}
	}
	for _, name := range []string{"footer-service-0", "footer-service-3", "footer-copyright", "footer-cta"} {
		if find(s.Page(), name) == nil {
			t.Errorf("%s missing", name)
		}
	}
}

func TestFooterLinks(t *testing.T) {
	tests := []struct {
		name     string
		route    string
		external string
	}{
		{"footer-nav-Projects", "/projects", ""},
		{"footer-cta", "/connect", ""},
		{"footer-logo", "/", ""},
		{"footer-social-GitHub", "/about", "https://github.com/ideon"},
		{"footer-social-Email", "/about", "mailto:contact@ideon.dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, s := newTestSite(t, nil)
			s.Navigate("/about")
			step(t, scene, 1)
			link := find(s.Page(), tt.name)
			if link == nil {
				t.Fatal("link missing")
			}
			if !ideon.IsClickable(link) {
				t.Error("footer link should count as clickable")
			}
			s.onClick(ideon.PointerContext{Target: link})
			step(t, scene, 1)
			if s.Route() != tt.route {
				t.Errorf("route = %q, want %q", s.Route(), tt.route)
			}
			if s.LastExternalLink() != tt.external {
				t.Errorf("external = %q, want %q", s.LastExternalLink(), tt.external)
			}
		})
	}
}

func TestGalleryWrapsAround(t *testing.T) {
	scene, s := newTestSite(t, nil)
	s.Navigate("/projects/agriconnect")
	step(t, scene, 1)
	g := s.page.gallery
	if g == nil {
		t.Fatal("gallery missing")
	}
	check := func(index int, caption, counter string) {
		t.Helper()
		if g.Index() != index {
			t.Errorf("index = %d, want %d", g.Index(), index)
		}
		if g.caption.Text != caption {
			t.Errorf("caption = %q, want %q", g.caption.Text, caption)
		}
		if g.counter.Text != counter {
			t.Errorf("counter = %q, want %q", g.counter.Text, counter)
		}
		for i, d := range g.dots {
			if active := d.Fill == colorAccent; active != (i == index) {
				t.Errorf("dot %d active = %v", i, active)
			}
		}
	}
	check(0, "Home Screen", "1 / 4")

	click := func(name string) {
		t.Helper()
		el := find(s.Page(), name)
		if el == nil {
			t.Fatalf("%s missing", name)
		}
		s.onClick(ideon.PointerContext{Target: el})
	}

	click("gallery-prev")
	check(3, "User Profile", "4 / 4")
	if g.screen.OffsetX != -gallerySlide || g.screen.Alpha != 0 {
		t.Errorf("screen = (%v, %v), want slide in from the left", g.screen.OffsetX, g.screen.Alpha)
	}
	step(t, scene, 30)
	if g.screen.OffsetX != 0 || g.screen.Alpha != 1 {
		t.Errorf("screen = (%v, %v) after the slide", g.screen.OffsetX, g.screen.Alpha)
	}

	click("gallery-next")
	check(0, "Home Screen", "1 / 4")
	click("gallery-next")
	check(1, "Products Listing", "2 / 4")

	click("gallery-dot-3")
	check(3, "User Profile", "4 / 4")
	if g.screen.OffsetX != gallerySlide {
		t.Errorf("jump forward slid from %v", g.screen.OffsetX)
	}
	click("gallery-caption")
	check(3, "User Profile", "4 / 4")
	if s.Route() != "/projects/agriconnect" {
		t.Errorf("route = %q", s.Route())
	}
}

func TestGalleryFrames(t *testing.T) {
	_, s := newTestSite(t, nil)
	b := newBuilder(s, 1280)
	if el := b.gallery(nil, "mobile"); el != nil || b.pg.gallery != nil {
		t.Fatal("gallery built without screenshots")
	}
	shots := []content.Screenshot{{Alt: "one"}, {Alt: "two"}}
	tests := []struct {
		category string
		width    float64
	}{
		{"mobile", 280},
		{"web", 640},
	}
	for _, tt := range tests {
		el := b.gallery(shots, tt.category)
		frame := find(el, "gallery-frame")
		if frame.Width != tt.width {
			t.Errorf("%s frame width = %v, want %v", tt.category, frame.Width, tt.width)
		}
		if got := frame.X + frame.Width/2; got != b.width/2 {
			t.Errorf("%s frame center = %v, want %v", tt.category, got, b.width/2)
		}
	}
	b.pg.gallery.Step(-1)
	if b.pg.gallery.Index() != 1 {
		t.Errorf("prev from first = %d, want last", b.pg.gallery.Index())
	}
}

func TestAnimatedHeadings(t *testing.T) {
	tests := []struct {
		path, name string
		words      int
	}{
		{"/about", "about-title", 4},
		{"/connect", "connect-title", 3},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			scene, s := newTestSite(t, nil)
			s.Navigate(tt.path)
			step(t, scene, 1)
			el := find(s.Page(), tt.name)
			if el == nil {
				t.Fatal("heading missing")
			}
			if el.Text != "" || el.NumChildren() != tt.words {
				t.Errorf("text = %q words = %d, want %d words", el.Text, el.NumChildren(), tt.words)
			}
		})
	}
}
