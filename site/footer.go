package site

import (
	"fmt"
	"math"
	"time"

	"github.com/ideonstudio/ideon"
)

var (
	footerNav = []struct{ label, href string }{
		{"Home", "/"},
		{"Projects", "/projects"},
		{"About", "/about"},
		{"Connect", "/connect"},
	}
	footerSocial = []struct{ label, href string }{
		{"Email", "mailto:contact@ideon.dev"},
		{"WhatsApp", "https://wa.me/919876543210"},
		{"LinkedIn", "https://linkedin.com/company/ideon"},
		{"GitHub", "https://github.com/ideon"},
	}
	footerServices = []string{"Web Development", "Mobile Apps", "AI/ML Projects", "Academic Projects"}
)

// footer builds the closing section shared by every page: brand, site
// links, services and a contact call to action.
func (b *builder) footer() *ideon.Element {
	const gap = 32.0
	cols := columns(b.width)
	if cols == 3 {
		cols = 4
	}
	// floored so a full row never wraps on rounding
	cw := math.Floor((b.width - gap*float64(cols-1)) / float64(cols))

	social := make([]*ideon.Element, 0, len(footerSocial))
	for _, l := range footerSocial {
		social = append(social, b.link("footer-social-"+l.label, l.label, l.href, sizeSmall, colorMuted))
	}
	brand := b.column("footer-brand", cw, 0, 12,
		b.link("footer-logo", "Ideon", "/", sizeHeading, colorText),
		b.textWidth("footer-tagline", "p", "Transforming student ideas into deployed reality. Professional project development services.", sizeSmall, colorMuted, cw),
		b.row("footer-social", cw, 12, social...),
	)

	nav := []*ideon.Element{b.textWidth("footer-nav-title", "h4", "Navigation", sizeBody, colorText, cw)}
	for _, l := range footerNav {
		nav = append(nav, b.link("footer-nav-"+l.label, l.label, l.href, sizeSmall, colorMuted))
	}

	services := []*ideon.Element{b.textWidth("footer-services-title", "h4", "Services", sizeBody, colorText, cw)}
	for i, name := range footerServices {
		services = append(services, b.textWidth(fmt.Sprintf("footer-service-%d", i), "li", name, sizeSmall, colorMuted, cw))
	}

	touch := b.column("footer-contact", cw, 0, 12,
		b.textWidth("footer-contact-title", "h4", "Get in Touch", sizeBody, colorText, cw),
		b.textWidth("footer-contact-text", "p", "Have a project idea? Let's discuss how we can help bring it to life.", sizeSmall, colorMuted, cw),
		b.button("footer-cta", "Start a Conversation", "/connect", true),
	)

	body := ideon.NewElement("footer-columns", "div")
	body.Width = b.width
	for _, c := range []*ideon.Element{
		brand,
		b.column("footer-nav", cw, 0, 8, nav...),
		b.column("footer-services", cw, 0, 8, services...),
		touch,
	} {
		c.Width = cw
		body.AddChild(c)
	}
	body.LayoutRow(0, gap)

	rule := ideon.NewElement("footer-rule", "hr")
	rule.Width, rule.Height = b.width, 1
	rule.Fill = colorBorder

	year := time.Now().Year()
	bottom := b.column("footer-bottom", b.width, 0, 4,
		b.text("footer-copyright", "p", fmt.Sprintf("© %d Ideon. All rights reserved.", year), sizeSmall, colorMuted),
		b.text("footer-disclaimer", "p", "All project discussions and delivery happen outside this platform.", sizeSmall, colorMuted),
	)

	el := b.column("footer", b.width, 0, 32, body, rule, bottom)
	el.Tag = "footer"
	return b.reveal(el, ideon.RevealFadeIn, 0)
}
