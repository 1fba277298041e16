package site

import (
	"errors"
	"testing"
)

func TestRouterMatch(t *testing.T) {
	var r Router
	for _, p := range []string{"/", "/projects", "/projects/{id}", "/about"} {
		if err := r.Add(p, notFoundPage); err != nil {
			t.Fatalf("Add(%q): %v", p, err)
		}
	}
	r.NotFound(notFoundPage)

	tests := []struct {
		path    string
		pattern string
		found   bool
		id      string
	}{
		{"/", "/", true, ""},
		{"", "/", true, ""},
		{"/projects", "/projects", true, ""},
		{"/projects/", "/projects", true, ""},
		{"/projects/agriconnect", "/projects/{id}", true, "agriconnect"},
		{"/projects/agriconnect?tab=1", "/projects/{id}", true, "agriconnect"},
		{"/about#team", "/about", true, ""},
		{"/projects/a/b", "", false, ""},
		{"/nope", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rt, p, ok := r.Match(tt.path)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if rt.Pattern != tt.pattern {
				t.Errorf("pattern = %q, want %q", rt.Pattern, tt.pattern)
			}
			if p["id"] != tt.id {
				t.Errorf("id = %q, want %q", p["id"], tt.id)
			}
			if rt.Build == nil {
				t.Error("route has no builder")
			}
		})
	}
}

func TestRouterAddRejectsBadPatterns(t *testing.T) {
	var r Router
	for _, p := range []string{"projects", "/projects/{id", "/projects/id}"} {
		if err := r.Add(p, notFoundPage); !errors.Is(err, ErrBadPattern) {
			t.Errorf("Add(%q) = %v, want ErrBadPattern", p, err)
		}
	}
}

func TestIsExternal(t *testing.T) {
	tests := []struct {
		href string
		want bool
	}{
		{"/connect", false},
		{"/projects/x", false},
		{"https://github.com/ideon", true},
		{"http://example.com", true},
		{"mailto:ideon2026@gmail.com", true},
	}
	for _, tt := range tests {
		if got := isExternal(tt.href); got != tt.want {
			t.Errorf("isExternal(%q) = %v, want %v", tt.href, got, tt.want)
		}
	}
}
