package ideon

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps an Ebitengine text/v2 face at one size.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("ideon: parse font: %w", err)
	}
	return newFont(source, size), nil
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// Measure returns the width and height of s rendered on one line per '\n'.
func (f *Font) Measure(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying face.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// Wrap breaks s into lines no wider than maxWidth, splitting on spaces.
// Explicit newlines are kept. A single word wider than maxWidth gets a line
// of its own. maxWidth <= 0 disables wrapping.
func (f *Font) Wrap(s string, maxWidth float64) []string {
	paragraphs := strings.Split(s, "\n")
	if maxWidth <= 0 {
		return paragraphs
	}
	var lines []string
	for _, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if nw, _ := f.Measure(next); nw > maxWidth {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}

// fontCache hands out the built-in Go Regular face per size.
type fontCache struct {
	source *text.GoTextFaceSource
	failed bool
	fonts  map[float64]*Font
}

var defaultFonts fontCache

// DefaultFont returns the built-in font at size, or nil if it could not
// be parsed.
func DefaultFont(size float64) *Font {
	return defaultFonts.get(size)
}

func (c *fontCache) get(size float64) *Font {
	if c.failed {
		return nil
	}
	if c.source == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			c.failed = true
			_, _ = fmt.Fprintf(os.Stderr, "[ideon] default font: %v\n", err)
			return nil
		}
		c.source = src
		c.fonts = make(map[float64]*Font)
	}
	if f, ok := c.fonts[size]; ok {
		return f
	}
	f := newFont(c.source, size)
	c.fonts[size] = f
	return f
}

// MeasureText returns the size of s in the built-in font at size, wrapped
// to maxWidth.
func MeasureText(s string, size, maxWidth float64) (width, height float64) {
	f := DefaultFont(size)
	if f == nil {
		return 0, 0
	}
	lines := f.Wrap(s, maxWidth)
	for _, l := range lines {
		w, _ := f.Measure(l)
		width = max(width, w)
	}
	return width, float64(len(lines)) * f.lh
}
