// Package contact delivers messages from the Connect page form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// ProjectTypes are the choices offered by the form.
var ProjectTypes = []string{
	"Mini Project",
	"Major Project",
	"Final Year Project",
	"Hackathon Entry",
	"Startup MVP",
	"Other",
}

// Message is a submitted contact form.
type Message struct {
	Name        string
	Email       string
	ProjectType string
	Message     string
}

// Sender delivers a message. Implementations make exactly one attempt.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// ErrInvalidMessage is wrapped by every Validate failure.
var ErrInvalidMessage = errors.New("invalid message")

// Validate checks that every field is filled in and the email parses.
func (m Message) Validate() error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"name", m.Name},
		{"email", m.Email},
		{"project type", m.ProjectType},
		{"message", m.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrInvalidMessage, f.name))
		}
	}
	if strings.TrimSpace(m.Email) != "" {
		if _, err := mail.ParseAddress(m.Email); err != nil {
			errs = append(errs, fmt.Errorf("%w: email: %v", ErrInvalidMessage, err))
		}
	}
	return errors.Join(errs...)
}

// Params returns the template parameters the mail template expects.
func (m Message) Params() map[string]string {
	return map[string]string{
		"name":        m.Name,
		"email":       m.Email,
		"projectType": m.ProjectType,
		"message":     m.Message,
	}
}
