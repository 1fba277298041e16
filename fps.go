package ideon

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the overlay text is re-rendered.
const fpsRefresh = 500 * time.Millisecond

// fpsOverlay shows the measured FPS and TPS in the top-left corner. It
// redraws its own image at most every fpsRefresh of scene time.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate time.Duration
	drawn      bool
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32)}
}

func (f *fpsOverlay) draw(screen *ebiten.Image, now time.Duration) {
	if !f.drawn || now-f.lastUpdate >= fpsRefresh {
		f.drawn = true
		f.lastUpdate = now
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(4, 4)
	screen.DrawImage(f.img, &op)
}
