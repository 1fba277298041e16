package ideon

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next rendered frame. The PNG
// is written to ScreenshotDir as <timestamp>_<seq>_<label>.png.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots writes every queued capture. Called at the end of Draw.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[ideon] screenshot: mkdir %s: %v\n", s.ScreenshotDir, err)
		return
	}

	img := unpremultiply(screen)
	stamp := time.Now()
	for _, label := range s.screenshotQueue {
		s.screenshotSeq++
		name := screenshotName(stamp, s.screenshotSeq, label)
		if err := writePNG(filepath.Join(s.ScreenshotDir, name), img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[ideon] screenshot: %v\n", err)
		}
	}
}

// screenshotName returns <stamp>_<seq>_<label>.png with a zero-padded
// sequence number, so captures from one frame sort in queue order.
func screenshotName(stamp time.Time, seq int, label string) string {
	return fmt.Sprintf("%s_%03d_%s.png", stamp.Format("20060102_150405"), seq, sanitizeLabel(label))
}

// unpremultiply reads screen back into a straight-alpha image.
func unpremultiply(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	screen.ReadPixels(img.Pix)
	p := img.Pix
	for i := 0; i < len(p); i += 4 {
		a := int(p[i+3])
		if a > 0 && a < 255 {
			p[i] = uint8(min(int(p[i])*255/a, 255))
			p[i+1] = uint8(min(int(p[i+1])*255/a, 255))
			p[i+2] = uint8(min(int(p[i+2])*255/a, 255))
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps [A-Za-z0-9.-] and maps everything else to '_'.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
