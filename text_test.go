package ideon

import (
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	f := DefaultFont(16)
	if f == nil {
		t.Fatal("default font failed to load")
	}
	word, _ := f.Measure("word")
	space, _ := f.Measure("word word")

	tests := []struct {
		name     string
		in       string
		maxWidth float64
		want     int
	}{
		{"no wrapping", "word word word", 0, 1},
		{"fits", "word word", space + 1, 1},
		{"one word per line", "word word word", word + 1, 3},
		{"explicit newlines", "word\n\nword", 0, 3},
		{"long word alone", "extraordinarily", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := f.Wrap(tt.in, tt.maxWidth)
			if len(lines) != tt.want {
				t.Errorf("Wrap = %q, want %d lines", lines, tt.want)
			}
		})
	}
}

func TestMeasureText(t *testing.T) {
	f := DefaultFont(16)
	one, h1 := MeasureText("alpha beta", 16, 0)
	_, h2 := MeasureText("alpha beta", 16, one/2)
	if h2 <= h1 {
		t.Errorf("wrapped height %v should exceed single line %v", h2, h1)
	}
	if h1 != f.LineHeight() {
		t.Errorf("single line height %v, want %v", h1, f.LineHeight())
	}
	if DefaultFont(16) != f {
		t.Error("fonts should be cached per size")
	}
	if _, err := LoadFont([]byte(strings.Repeat("x", 10)), 12); err == nil {
		t.Error("garbage font data should fail")
	}
}
