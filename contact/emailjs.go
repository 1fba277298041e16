package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS sends messages through the EmailJS REST API.
type EmailJS struct {
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
	PublicKey  string `yaml:"public_key"`
	// Endpoint overrides DefaultEmailJSEndpoint.
	Endpoint string `yaml:"endpoint"`
	// Timeout bounds one send. Zero means 15s.
	Timeout time.Duration `yaml:"timeout"`

	Client *http.Client `yaml:"-"`
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendError is returned when EmailJS answers with a non-200 status.
type SendError struct {
	Status int
	Body   string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("emailjs: status %d: %s", e.Status, e.Body)
}

// Send validates m and posts it once. There are no retries.
func (s *EmailJS) Send(ctx context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if s.ServiceID == "" || s.TemplateID == "" || s.PublicKey == "" {
		return fmt.Errorf("emailjs: service id, template id and public key are required")
	}
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      s.ServiceID,
		TemplateID:     s.TemplateID,
		UserID:         s.PublicKey,
		TemplateParams: m.Params(),
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode: %w", err)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = DefaultEmailJSEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: send: %w", err)
	}
	defer resp.Body.Close()
	text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return &SendError{Status: resp.StatusCode, Body: string(text)}
	}
	return nil
}
