package site

import (
	"fmt"
	"strings"
	"time"

	"github.com/ideonstudio/ideon"
	"github.com/ideonstudio/ideon/content"
)

const staggerStep = 100 * time.Millisecond

func homePage(b *builder, _ Params) *page {
	cat := b.site.catalog

	// hero
	orb := ideon.NewElement("hero-orb", "div")
	orb.Width, orb.Height = 220, 220
	orb.Fill = colorAccent.WithAlpha(0.08)
	orb.X = b.width - orb.Width
	b.parallax(orb, 0.3)

	hero := b.section("hero",
		b.reveal(b.text("hero-title", "h1", "Ideas → Reality", sizeHero, colorText), ideon.RevealFadeUp, 0),
		b.reveal(b.text("hero-tagline", "p", "We turn your project concepts into deployed, working applications.", sizeSubhead, colorText), ideon.RevealFadeUp, staggerStep),
		b.reveal(b.text("hero-description", "p", "Not templates. Not copy-paste. Every project is built from scratch, tailored to your requirements, and actually deployed.", sizeBody, colorMuted), ideon.RevealFadeUp, 2*staggerStep),
		b.reveal(b.row("hero-actions", b.width, 16,
			b.button("cta-work", "View Our Work", "/projects", true),
			b.button("cta-connect", "Start a Project", "/connect", false),
		), ideon.RevealFadeUp, 3*staggerStep),
	)
	hero.AddChild(orb)

	// what is ideon
	points := []struct{ n, title, body string }{
		{"01", "Custom Built", "Tailored to your specific requirements"},
		{"02", "Fully Deployed", "Live and accessible on the internet"},
		{"03", "You Own It", "Complete source code and documentation"},
	}
	pointGrid := b.grid("about-points", len(points), func(i int, w float64) *ideon.Element {
		p := points[i]
		return b.card("point-"+p.n, w,
			b.textWidth("point-number", "span", p.n, sizeSubhead, colorAccent, w),
			b.textWidth("point-title", "h4", p.title, sizeSubhead, colorText, w),
			b.textWidth("point-body", "p", p.body, sizeBody, colorMuted, w),
		)
	})
	about := b.section("about",
		b.reveal(b.text("about-label", "span", "What is Ideon?", sizeSmall, colorAccent), ideon.RevealFadeIn, 0),
		b.reveal(b.text("about-heading", "h2", "A portfolio of real work, not promises.", sizeTitle, colorText), ideon.RevealSlideLeft, 0),
		b.reveal(b.text("about-text", "p", "Every project here was built from scratch and deployed to production. We help students turn their ideas into actual working applications: no templates, no copy-paste, no shortcuts.", sizeBody, colorMuted), ideon.RevealFadeUp, staggerStep),
		b.stagger(pointGrid, ideon.RevealFadeUp),
	)

	// services
	services := cat.Services()
	serviceGrid := b.grid("services-grid", len(services), func(i int, w float64) *ideon.Element {
		s := services[i]
		return b.card("service-"+s.ID, w,
			b.textWidth("service-title", "h3", s.Title, sizeSubhead, colorText, w),
			b.textWidth("service-description", "p", s.Description, sizeBody, colorMuted, w),
			b.textWidth("service-stack", "span", strings.Join(s.TechStack, " · "), sizeSmall, colorAccent, w),
		)
	})
	servicesSection := b.section("services",
		b.reveal(b.text("services-title", "h2", "What we build", sizeTitle, colorText), ideon.RevealScale, 0),
		b.reveal(b.text("services-subtitle", "p", "From idea to deployment, we handle every part of the build.", sizeBody, colorMuted), ideon.RevealFadeIn, staggerStep),
		b.stagger(serviceGrid, ideon.RevealFadeUp),
	)

	// featured work
	featured := cat.GetFeaturedProjects()
	work := b.section("work",
		b.reveal(b.text("work-label", "span", "Featured Work", sizeSmall, colorAccent), ideon.RevealFadeIn, 0),
		b.reveal(b.text("work-title", "h2", "Projects that speak for themselves", sizeTitle, colorText), ideon.RevealFadeUp, 0),
		b.stagger(b.grid("work-grid", len(featured), func(i int, w float64) *ideon.Element {
			return projectCard(b, featured[i], w)
		}), ideon.RevealFadeUp),
		b.reveal(b.button("work-all", "View All Projects", "/projects", false), ideon.RevealFadeUp, 0),
	)

	cta := b.section("cta",
		b.reveal(b.text("cta-title", "h2", "Have a project in mind?", sizeTitle, colorText), ideon.RevealScale, 0),
		b.reveal(b.text("cta-body", "p", "Let's talk. No pressure, no commitment.", sizeBody, colorMuted), ideon.RevealFadeUp, staggerStep),
		b.reveal(b.button("cta-start", "Start a Conversation", "/connect", true), ideon.RevealFadeUp, 2*staggerStep),
	)

	return b.build("Home", hero, about, servicesSection, work, cta)
}

// projectCard is a clickable summary linking to the project's detail page.
func projectCard(b *builder, p content.Project, w float64) *ideon.Element {
	status := strings.ToUpper(p.Status)
	card := b.card("project-"+p.ID, w,
		b.textWidth("project-status", "span", status, sizeSmall, colorAccent, w),
		b.textWidth("project-title", "h3", p.Title, sizeHeading, colorText, w),
		b.textWidth("project-subtitle", "p", p.Subtitle, sizeBody, colorMuted, w),
		techRow(b, p.TechStack, w-40),
	)
	card.Tag = "a"
	card.Href = "/projects/" + p.ID
	card.Interactive = true
	return card
}

// techRow renders a project's stack as colored chips.
func techRow(b *builder, stack []content.Tech, width float64) *ideon.Element {
	chips := make([]*ideon.Element, 0, len(stack))
	for _, t := range stack {
		w, h := ideon.MeasureText(t.Name, sizeSmall, 0)
		chip := ideon.NewElement("tech-"+t.Name, "span")
		chip.Text = t.Name
		chip.TextSize = sizeSmall
		chip.Width = w + 2*ideon.TextPadding
		chip.Height = h + 2*ideon.TextPadding
		if c, err := ideon.ParseHexColor(t.Color); err == nil {
			chip.Fill = c.WithAlpha(0.35)
			chip.Border = c
		} else {
			chip.Border = colorBorder
		}
		chips = append(chips, chip)
	}
	return b.row("tech-stack", width, 8, chips...)
}

func projectsPage(b *builder, _ Params) *page {
	cat := b.site.catalog
	category := b.site.filter

	filters := []*ideon.Element{}
	for _, c := range append([]string{content.CategoryAll}, cat.Categories()...) {
		f := b.link("filter-"+c, titleCase(c), "", sizeBody, colorMuted)
		f.Tag = "button"
		f.UserData = filterChoice(c)
		f.Border = colorBorder
		if c == category || (category == "" && c == content.CategoryAll) {
			f.TextColor = colorText
			f.Border = colorAccent
		}
		filters = append(filters, f)
	}

	projects := cat.GetProjectsByCategory(category)
	var list *ideon.Element
	if len(projects) == 0 {
		list = b.text("projects-empty", "p", "No projects in this category yet.", sizeBody, colorMuted)
	} else {
		list = b.stagger(b.grid("projects-grid", len(projects), func(i int, w float64) *ideon.Element {
			return projectCard(b, projects[i], w)
		}), ideon.RevealFadeUp)
	}

	header := b.section("projects-header",
		b.reveal(b.text("projects-label", "span", "Our Work", sizeSmall, colorAccent), ideon.RevealFadeIn, 0),
		b.reveal(b.text("projects-title", "h1", "Projects", sizeHero, colorText), ideon.RevealFadeUp, 0),
		b.reveal(b.text("projects-subtitle", "p", "Real applications, built from scratch and deployed.", sizeBody, colorMuted), ideon.RevealFadeUp, staggerStep),
		b.reveal(b.row("projects-filters", b.width, 12, filters...), ideon.RevealFadeUp, 2*staggerStep),
	)
	return b.build("Projects", header, b.section("projects-list", list))
}

// filterChoice marks a category filter button.
type filterChoice string

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func projectDetailPage(b *builder, p Params) *page {
	proj, ok := b.site.catalog.GetProjectByID(p["id"])
	if !ok {
		return projectNotFound(b)
	}

	back := b.link("back", "← Back to Projects", "/projects", sizeBody, colorMuted)
	meta := fmt.Sprintf("%s · %s", strings.ToUpper(proj.Status), proj.Category)
	header := b.section("detail-header",
		b.reveal(back, ideon.RevealFadeIn, 0),
		b.reveal(b.text("detail-meta", "span", meta, sizeSmall, colorAccent), ideon.RevealFadeIn, 0),
		b.reveal(b.text("detail-title", "h1", proj.Title, sizeHero, colorText), ideon.RevealFadeUp, 0),
		b.reveal(b.text("detail-subtitle", "p", proj.Subtitle, sizeSubhead, colorMuted), ideon.RevealFadeUp, staggerStep),
	)
	if proj.Hackathon != "" {
		credit := proj.Hackathon
		if proj.Team != "" {
			credit += " · " + proj.Team
		}
		header.AddChild(b.reveal(b.text("detail-credit", "span", credit, sizeSmall, colorMuted), ideon.RevealFadeUp, 2*staggerStep))
		header.LayoutColumn(0, 20)
	}

	overview := b.section("detail-overview",
		b.reveal(b.text("problem-title", "h2", "The Problem", sizeHeading, colorText), ideon.RevealSlideLeft, 0),
		b.reveal(b.text("problem", "p", proj.Problem, sizeBody, colorMuted), ideon.RevealFadeUp, 0),
		b.reveal(b.text("solution-title", "h2", "The Solution", sizeHeading, colorText), ideon.RevealSlideLeft, 0),
		b.reveal(b.text("description", "p", proj.Description, sizeBody, colorMuted), ideon.RevealFadeUp, 0),
	)

	feats := make([]*ideon.Element, 0, len(proj.Features))
	for i, f := range proj.Features {
		feats = append(feats, b.text(fmt.Sprintf("feature-%d", i), "li", "• "+f, sizeBody, colorText))
	}
	features := b.section("detail-features",
		b.reveal(b.text("features-title", "h2", "Key Features", sizeHeading, colorText), ideon.RevealSlideLeft, 0),
		b.stagger(b.column("features-list", b.width, 0, 4, feats...), ideon.RevealSlideRight),
	)

	stack := b.section("detail-stack",
		b.reveal(b.text("stack-title", "h2", "Tech Stack", sizeHeading, colorText), ideon.RevealSlideLeft, 0),
		b.reveal(techRow(b, proj.TechStack, b.width), ideon.RevealScale, 0),
		b.reveal(b.text("architecture", "p", proj.Architecture, sizeBody, colorMuted), ideon.RevealFadeUp, 0),
	)

	var gallery *ideon.Element
	if g := b.gallery(proj.Screenshots, proj.Category); g != nil {
		gallery = b.section("detail-gallery",
			b.reveal(b.text("gallery-title", "h2", "Screenshots", sizeHeading, colorText), ideon.RevealSlideLeft, 0),
			b.reveal(g, ideon.RevealScale, 0),
		)
	}

	actions := []*ideon.Element{b.button("detail-connect", "Build Something Similar", "/connect", true)}
	if proj.DemoLink != "" {
		actions = append(actions, b.button("detail-demo", "View Demo", proj.DemoLink, false))
	}
	cta := b.section("detail-cta", b.reveal(b.row("detail-actions", b.width, 16, actions...), ideon.RevealFadeUp, 0))

	return b.build(proj.Title, header, overview, features, stack, gallery, cta)
}

func projectNotFound(b *builder) *page {
	return b.build("Project Not Found", b.section("not-found",
		b.text("not-found-title", "h1", "Project Not Found", sizeTitle, colorText),
		b.link("not-found-back", "Back to Projects", "/projects", sizeBody, colorAccent),
	))
}

func aboutPage(b *builder, _ Params) *page {
	hero := b.section("about-hero",
		b.reveal(b.text("about-label", "span", "About Ideon", sizeSmall, colorAccent), ideon.RevealFadeIn, 0),
		b.animatedText("about-title", "h1", "We Build, You Shine", sizeHero, colorText, ideon.RevealFadeUp),
		b.reveal(b.text("about-subtitle", "p", "Ideon is a team of passionate developers who believe every student deserves a project that's professionally built and actually works.", sizeSubhead, colorMuted), ideon.RevealFadeUp, staggerStep),
	)

	story := b.section("story",
		b.reveal(b.text("story-title", "h2", "Our Story", sizeTitle, colorText), ideon.RevealSlideLeft, 0),
		b.reveal(b.text("story-1", "p", "We started as students ourselves, frustrated by the gap between having great project ideas and the technical skills to build them. We saw classmates struggling to find reliable help, getting scammed by fake developers, or receiving copied code that didn't work.", sizeBody, colorMuted), ideon.RevealSlideLeft, 0),
		b.reveal(b.text("story-2", "p", "Ideon was born from this frustration. We're not a faceless agency or a marketplace of anonymous freelancers. We're a small, dedicated team that treats every project like it's our own.", sizeBody, colorMuted), ideon.RevealSlideLeft, 0),
		b.reveal(b.text("story-3", "p", "Our philosophy is simple: the work should speak for itself. That's why we showcase real, deployed projects. No promises, just proof.", sizeBody, colorMuted), ideon.RevealSlideLeft, 0),
	)

	stats := []struct {
		name, suffix, caption string
		end                   float64
	}{
		{"stat-projects", "+", "Projects Delivered", 50},
		{"stat-deploy", "%", "Deployment Rate", 100},
		{"stat-tech", "+", "Technologies", 15},
	}
	statGrid := b.grid("stats", len(stats), func(i int, w float64) *ideon.Element {
		st := stats[i]
		return b.reveal(b.stat(st.name, st.end, st.suffix, st.caption, w), ideon.RevealRotate, time.Duration(i)*staggerStep)
	})

	values := []struct{ title, body string }{
		{"Transparency", "Clear communication, honest timelines and no hidden surprises."},
		{"Quality", "Clean, documented code that you can understand and extend."},
		{"Ownership", "You get the full source code, deployment and documentation."},
		{"Support", "We stay around after delivery to help with questions and fixes."},
	}
	valueGrid := b.grid("values", len(values), func(i int, w float64) *ideon.Element {
		v := values[i]
		return b.card("value-"+strings.ToLower(v.title), w,
			b.textWidth("value-title", "h3", v.title, sizeSubhead, colorText, w),
			b.textWidth("value-body", "p", v.body, sizeBody, colorMuted, w),
		)
	})
	valuesSection := b.section("values-section",
		b.reveal(b.text("values-title", "h2", "Our Values", sizeTitle, colorText), ideon.RevealFadeUp, 0),
		b.stagger(valueGrid, ideon.RevealFadeUp),
	)

	not := b.section("not-section",
		b.reveal(b.text("not-title", "h2", "What Ideon is NOT", sizeTitle, colorText), ideon.RevealScale, 0),
		b.reveal(b.text("not-description", "p", "Not a marketplace, not a template shop and not a place to buy copied code. Every project is built for you, by us.", sizeBody, colorMuted), ideon.RevealFadeUp, staggerStep),
	)

	return b.build("About", hero, story, b.section("stats-section", statGrid), valuesSection, not)
}

func notFoundPage(b *builder, _ Params) *page {
	return b.build("Not Found", b.section("not-found",
		b.text("not-found-title", "h1", "Page Not Found", sizeTitle, colorText),
		b.link("not-found-home", "Back to Home", "/", sizeBody, colorAccent),
	))
}
