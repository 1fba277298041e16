package ideon

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// defaultTextSize is used by elements that leave TextSize at zero.
const defaultTextSize = 16

// TextPadding is the inset of text inside its element box.
const TextPadding = 8

// --- White pixel singleton (single-threaded, no sync.Once) ---

var whitePixelImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// drawContent draws the page tree in painter order.
func (s *Scene) drawContent(screen *ebiten.Image) {
	for _, c := range s.root.children {
		s.drawElement(screen, c, 1)
	}
}

func (s *Scene) drawElement(screen *ebiten.Image, e *Element, parentAlpha float64) {
	if !e.Visible {
		return
	}
	alpha := parentAlpha * e.Alpha
	if alpha <= 0 {
		return
	}
	r := e.VisualRect()
	x, y := s.viewport.ToScreen(r.X, r.Y)
	onScreen := y < s.viewport.Height && y+r.Height > 0

	if onScreen && r.Width > 0 && r.Height > 0 {
		geo := elementGeoM(e, x, y)
		if e.Fill.A > 0 {
			drawQuad(screen, 0, 0, r.Width, r.Height, geo, e.Fill.WithAlpha(alpha))
		}
		if e.Image != nil {
			drawImageFit(screen, e.Image, r.Width, r.Height, geo, alpha)
		}
		if e.Border.A > 0 {
			c := e.Border.WithAlpha(alpha)
			drawQuad(screen, 0, 0, r.Width, 1, geo, c)
			drawQuad(screen, 0, r.Height-1, r.Width, 1, geo, c)
			drawQuad(screen, 0, 0, 1, r.Height, geo, c)
			drawQuad(screen, r.Width-1, 0, 1, r.Height, geo, c)
		}
		if e.Text != "" {
			drawText(screen, e, r.Width, geo, alpha)
		}
	}
	for _, c := range e.children {
		s.drawElement(screen, c, alpha)
	}
}

// elementGeoM maps element-local coordinates to the screen: scale and
// rotate about the box center, then move to (x, y).
func elementGeoM(e *Element, x, y float64) ebiten.GeoM {
	var g ebiten.GeoM
	hw, hh := e.Width/2, e.Height/2
	g.Translate(-hw, -hh)
	if e.Scale != 1 {
		g.Scale(e.Scale, e.Scale)
	}
	if e.Rotation != 0 {
		g.Rotate(e.Rotation * math.Pi / 180)
	}
	g.Translate(x+hw, y+hh)
	return g
}

func drawQuad(screen *ebiten.Image, x, y, w, h float64, geo ebiten.GeoM, c Color) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geo)
	op.ColorScale.ScaleWithColor(c.RGBA())
	screen.DrawImage(whitePixel(), &op)
}

func drawImageFit(screen, img *ebiten.Image, w, h float64, geo ebiten.GeoM, alpha float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Concat(geo)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, &op)
}

func drawText(screen *ebiten.Image, e *Element, width float64, geo ebiten.GeoM, alpha float64) {
	size := e.TextSize
	if size <= 0 {
		size = defaultTextSize
	}
	f := DefaultFont(size)
	if f == nil {
		x, y := geo.Apply(TextPadding, TextPadding)
		ebitenutil.DebugPrintAt(screen, e.Text, int(x), int(y))
		return
	}
	c := e.TextColor.WithAlpha(alpha)
	for i, line := range f.Wrap(e.Text, width-2*TextPadding) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(TextPadding, TextPadding+float64(i)*f.lh)
		op.GeoM.Concat(geo)
		op.ColorScale.ScaleWithColor(c.RGBA())
		text.Draw(screen, line, f.face, op)
	}
}
