package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ideonstudio/ideon"
	"github.com/ideonstudio/ideon/contact"
)

// SendFailedText is shown when a message could not be delivered.
const SendFailedText = "Failed to send message. Please try again or email us directly."

// Form field names.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldProjectType = "projectType"
	FieldMessage     = "message"
)

// maxFieldLen bounds typed input per field, in runes.
const maxFieldLen = 2000

// formField is one input of the contact form.
type formField struct {
	name        string
	placeholder string
	value       string
	options     []string // select fields cycle through these on click
	el          *ideon.Element
}

func (f *formField) render(focused bool) {
	if f.value == "" {
		f.el.Text = f.placeholder
		f.el.TextColor = colorMuted
	} else {
		f.el.Text = f.value
		f.el.TextColor = colorText
	}
	if focused {
		f.el.Text += "|"
		f.el.Border = colorFocus
	} else {
		f.el.Border = colorBorder
	}
}

// ContactForm is the Connect page form. Submission runs the sender on its
// own goroutine; the result is picked up by the frame loop.
type ContactForm struct {
	site   *Site
	fields []*formField
	focus  int

	panel  *ideon.Element
	submit *ideon.Element

	sending   bool
	submitted bool
	result    chan error
	cancel    context.CancelFunc

	chars []rune
}

func newContactForm(b *builder) *ContactForm {
	f := &ContactForm{site: b.site, focus: -1}
	f.fields = []*formField{
		{name: FieldName, placeholder: "Your Name"},
		{name: FieldEmail, placeholder: "Email Address"},
		{name: FieldProjectType, placeholder: "Select a project type", options: contact.ProjectTypes},
		{name: FieldMessage, placeholder: "Tell us about your idea"},
	}
	return f
}

// build creates the form panel.
func (f *ContactForm) build(b *builder, width float64) *ideon.Element {
	kids := []*ideon.Element{
		b.textWidth("form-title", "h2", "Send us a Message", sizeHeading, colorText, width),
		b.textWidth("form-description", "p", "Fill out the form below and we'll get back to you within 24 hours.", sizeBody, colorMuted, width),
	}
	for _, fd := range f.fields {
		tag := "input"
		h := 44.0
		switch {
		case fd.options != nil:
			tag = "select"
		case fd.name == FieldMessage:
			tag = "textarea"
			h = 140
		}
		el := ideon.NewElement("field-"+fd.name, tag)
		el.Width, el.Height = width, h
		el.TextSize = sizeBody
		el.Fill = colorInput
		el.Interactive = true
		el.Cursor = ideon.CursorText
		if fd.options != nil {
			el.Cursor = ideon.CursorPointer
		}
		el.UserData = fd
		fd.el = el
		fd.render(false)
		kids = append(kids, el)
	}
	f.submit = b.button("form-submit", "Send Message", "", true)
	f.submit.UserData = f
	kids = append(kids, f.submit)
	f.panel = b.column("contact-form", width, 0, 16, kids...)
	return f.panel
}

// Value returns a field's current value.
func (f *ContactForm) Value(field string) string {
	if fd := f.field(field); fd != nil {
		return fd.value
	}
	return ""
}

// SetValue replaces a field's value.
func (f *ContactForm) SetValue(field, v string) {
	if fd := f.field(field); fd != nil {
		fd.value = v
		fd.render(f.focused() == fd)
	}
}

// Focus moves keyboard focus to field. An unknown name clears focus.
func (f *ContactForm) Focus(field string) {
	f.focus = -1
	for i, fd := range f.fields {
		if fd.name == field {
			f.focus = i
		}
	}
	f.renderAll()
}

// Type appends text to the focused field. Newlines are kept only in the
// message field.
func (f *ContactForm) Type(s string) {
	fd := f.focused()
	if fd == nil || fd.options != nil || f.sending {
		return
	}
	for _, r := range s {
		if r == '\n' && fd.name != FieldMessage {
			continue
		}
		if utf8.RuneCountInString(fd.value) >= maxFieldLen {
			break
		}
		fd.value += string(r)
	}
	fd.render(true)
}

// Backspace deletes the last rune of the focused field.
func (f *ContactForm) Backspace() {
	fd := f.focused()
	if fd == nil || fd.options != nil || fd.value == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(fd.value)
	fd.value = fd.value[:len(fd.value)-size]
	fd.render(true)
}

// Sending reports whether a send is in flight.
func (f *ContactForm) Sending() bool { return f.sending }

// Submitted reports whether the last send succeeded.
func (f *ContactForm) Submitted() bool { return f.submitted }

// Message returns the form contents.
func (f *ContactForm) Message() contact.Message {
	return contact.Message{
		Name:        strings.TrimSpace(f.Value(FieldName)),
		Email:       strings.TrimSpace(f.Value(FieldEmail)),
		ProjectType: f.Value(FieldProjectType),
		Message:     strings.TrimSpace(f.Value(FieldMessage)),
	}
}

// Submit validates and starts sending. Invalid input is reported with an
// alert and nothing is sent. A second Submit while sending is ignored.
func (f *ContactForm) Submit() {
	if f.sending || f.submitted {
		return
	}
	m := f.Message()
	if err := m.Validate(); err != nil {
		f.site.Alert(firstLine(err))
		return
	}
	if f.site.sender == nil {
		f.site.Alert(SendFailedText)
		return
	}
	f.sending = true
	f.submit.Text = "Sending..."
	f.result = make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	sender, result := f.site.sender, f.result
	go func() {
		result <- sender.Send(ctx, m)
	}()
}

// poll collects a finished send. Called once per frame.
func (f *ContactForm) poll() {
	if !f.sending {
		return
	}
	select {
	case err := <-f.result:
		f.sending = false
		f.cancel()
		f.submit.Text = "Send Message"
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[ideon] contact: %v\n", err)
			f.site.Alert(SendFailedText)
			return
		}
		f.submitted = true
		for _, fd := range f.fields {
			fd.value = ""
		}
		f.focus = -1
		f.renderAll()
		f.showSuccess()
	default:
	}
}

// showSuccess swaps the inputs for a confirmation with a reset button.
func (f *ContactForm) showSuccess() {
	b := newBuilder(f.site, f.site.scene.Viewport().Width)
	w := f.panel.Width
	for _, c := range append([]*ideon.Element(nil), f.panel.Children()...) {
		c.Dispose()
	}
	again := b.button("form-again", "Send Another", "", false)
	again.UserData = formReset{f}
	for _, c := range []*ideon.Element{
		b.textWidth("success-title", "h3", "Message Transmitted", sizeHeading, colorText, w),
		b.textWidth("success-body", "p", "Your signal has been received. We'll establish a connection shortly.", sizeBody, colorMuted, w),
		again,
	} {
		f.panel.AddChild(c)
	}
	f.panel.LayoutColumn(0, 16)
	f.panel.Fill = colorCard
	f.panel.Border = colorAccent
}

// formReset marks the "Send Another" button.
type formReset struct{ form *ContactForm }

// reset rebuilds the inputs after a successful send.
func (f *ContactForm) reset() {
	f.submitted = false
	f.site.Reload()
}

// close abandons any send in flight.
func (f *ContactForm) close() {
	if f.cancel != nil {
		f.cancel()
	}
	f.sending = false
}

// handleClick reacts to a click on a form element. Returns true when the
// element belonged to the form.
func (f *ContactForm) handleClick(el *ideon.Element) bool {
	switch d := el.UserData.(type) {
	case *formField:
		for i, fd := range f.fields {
			if fd == d {
				f.focus = i
			}
		}
		if d.options != nil && !f.sending {
			d.value = nextOption(d.options, d.value)
		}
		f.renderAll()
		return true
	case *ContactForm:
		f.Submit()
		return true
	case formReset:
		d.form.reset()
		return true
	}
	return false
}

func nextOption(options []string, cur string) string {
	for i, o := range options {
		if o == cur {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// pollKeys reads typed characters and editing keys from the keyboard.
func (f *ContactForm) pollKeys() {
	if f.focused() == nil {
		return
	}
	f.chars = ebiten.AppendInputChars(f.chars[:0])
	if len(f.chars) > 0 {
		f.Type(string(f.chars))
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		f.Backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		next := (f.focus + 1) % len(f.fields)
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			next = (f.focus + len(f.fields) - 1) % len(f.fields)
		}
		f.focus = next
		f.renderAll()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if f.fields[f.focus].name == FieldMessage && !ebiten.IsKeyPressed(ebiten.KeyControl) {
			f.Type("\n")
			return
		}
		f.Submit()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		f.focus = -1
		f.renderAll()
	}
}

func (f *ContactForm) field(name string) *formField {
	for _, fd := range f.fields {
		if fd.name == name {
			return fd
		}
	}
	return nil
}

func (f *ContactForm) focused() *formField {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	return f.fields[f.focus]
}

func (f *ContactForm) renderAll() {
	if f.submitted {
		return
	}
	for i, fd := range f.fields {
		if fd.el != nil && !fd.el.IsDisposed() {
			fd.render(i == f.focus)
		}
	}
}

// firstLine reports the first of possibly joined validation errors.
func firstLine(err error) string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		if errs := joined.Unwrap(); len(errs) > 0 {
			err = errs[0]
		}
	}
	msg := err.Error()
	msg = strings.TrimPrefix(msg, contact.ErrInvalidMessage.Error()+": ")
	return titleCase(msg) + "."
}

var contactMethods = []struct {
	label, value, href, description string
}{
	{"Email", "ideon2026@gmail.com", "mailto:ideon2026@gmail.com", "For detailed project discussions"},
	{"WhatsApp", "+91 98765 43210", "https://wa.me/919876543210", "Quick queries and updates"},
	{"LinkedIn", "Ideon Development", "https://linkedin.com/company/ideon", "Professional networking"},
	{"GitHub", "github.com/ideon", "https://github.com/ideon", "View our open source work"},
}

func connectPage(b *builder, _ Params) *page {
	hero := b.section("connect-hero",
		b.reveal(b.text("connect-label", "span", "Let's Talk", sizeSmall, colorAccent), ideon.RevealFadeIn, 0),
		b.animatedText("connect-title", "h1", "Start a Conversation", sizeHero, colorText, ideon.RevealFadeUp),
		b.reveal(b.text("connect-subtitle", "p", "Have a project idea? Questions about our work? We'd love to hear from you. No pressure, no commitment, just a friendly conversation.", sizeSubhead, colorMuted), ideon.RevealFadeUp, staggerStep),
	)

	cols := columns(b.width)
	half := b.width
	if cols > 1 {
		half = (b.width - 48) / 2
	}

	form := newContactForm(b)
	b.pg.form = form
	formPanel := b.reveal(form.build(b, half), ideon.RevealSlideLeft, 0)

	methods := []*ideon.Element{
		b.textWidth("methods-title", "h2", "Or reach out directly", sizeHeading, colorText, half),
		b.textWidth("methods-description", "p", "Prefer a direct conversation? Reach us through any of these channels.", sizeBody, colorMuted, half),
	}
	for i, m := range contactMethods {
		card := b.card("method-"+strings.ToLower(m.label), half,
			b.textWidth("method-label", "span", m.label, sizeSmall, colorAccent, half),
			b.textWidth("method-value", "span", m.value, sizeSubhead, colorText, half),
			b.textWidth("method-description", "span", m.description, sizeSmall, colorMuted, half),
		)
		card.Tag = "a"
		card.Href = m.href
		card.Interactive = true
		card.Classes = []string{"contact-method"}
		methods = append(methods, b.reveal(card, ideon.RevealSlideRight, staggerStep*time.Duration(i+1)))
	}
	methods = append(methods, b.textWidth("disclaimer", "p", "Note: All project discussions, pricing, and delivery happen outside this platform through direct communication channels.", sizeSmall, colorMuted, half))
	methodsPanel := b.column("contact-methods", half, 0, 16, methods...)

	grid := b.row("contact-grid", b.width, 48, formPanel, methodsPanel)
	return b.build("Connect", hero, grid)
}
