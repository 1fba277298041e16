package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func validMessage() Message {
	return Message{
		Name:        "Asha",
		Email:       "asha@example.com",
		ProjectType: "Startup MVP",
		Message:     "We need an app.",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Message)
		ok     bool
	}{
		{"valid", func(*Message) {}, true},
		{"no name", func(m *Message) { m.Name = "  " }, false},
		{"no email", func(m *Message) { m.Email = "" }, false},
		{"bad email", func(m *Message) { m.Email = "not-an-address" }, false},
		{"no type", func(m *Message) { m.ProjectType = "" }, false},
		{"no message", func(m *Message) { m.Message = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMessage()
			tt.mutate(&m)
			err := m.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidMessage) {
				t.Fatalf("err = %v, want ErrInvalidMessage", err)
			}
		})
	}
}

func TestEmailJSSend(t *testing.T) {
	var got emailJSRequest
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	s := &EmailJS{ServiceID: "svc", TemplateID: "tpl", PublicKey: "key", Endpoint: srv.URL, Client: srv.Client()}
	if err := s.Send(context.Background(), validMessage()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if got.ServiceID != "svc" || got.TemplateID != "tpl" || got.UserID != "key" {
		t.Errorf("ids = %+v", got)
	}
	if got.TemplateParams["projectType"] != "Startup MVP" || got.TemplateParams["name"] != "Asha" {
		t.Errorf("params = %v", got.TemplateParams)
	}
}

func TestEmailJSFailureNoRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "The Public Key is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	s := &EmailJS{ServiceID: "svc", TemplateID: "tpl", PublicKey: "bad", Endpoint: srv.URL, Client: srv.Client()}
	err := s.Send(context.Background(), validMessage())
	var se *SendError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SendError", err)
	}
	if se.Status != http.StatusBadRequest {
		t.Errorf("status = %d", se.Status)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want exactly one attempt", calls)
	}
}

func TestEmailJSRejectsInvalidWithoutRequest(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	s := &EmailJS{ServiceID: "svc", TemplateID: "tpl", PublicKey: "key", Endpoint: srv.URL, Client: srv.Client()}
	if err := s.Send(context.Background(), Message{}); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("err = %v", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestEmailJSMissingCredentials(t *testing.T) {
	s := &EmailJS{}
	if err := s.Send(context.Background(), validMessage()); err == nil {
		t.Fatal("expected error")
	}
}
