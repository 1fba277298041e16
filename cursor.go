package ideon

import (
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
)

// CursorState is the custom cursor's lifecycle state.
type CursorState uint8

const (
	CursorOffSurface CursorState = iota // pointer outside the window; hidden
	CursorIdle                          // visible, settled at the pointer
	CursorTracking                      // visible, easing toward the pointer
	CursorPressed                       // button held
)

func (c CursorState) String() string {
	switch c {
	case CursorOffSurface:
		return "off-surface"
	case CursorIdle:
		return "idle"
	case CursorTracking:
		return "tracking"
	case CursorPressed:
		return "pressed"
	}
	return fmt.Sprintf("CursorState(%d)", uint8(c))
}

// Cursor draws a sprite that chases the pointer with exponential smoothing,
// shrinks while pressed and tilts with horizontal velocity. It hides the
// native cursor while mounted.
type Cursor struct {
	cfg   CursorConfig
	scene *Scene

	handles       []CallbackHandle
	releaseNative func()

	pos      Point
	scale    Scalar
	rotation Scalar // degrees

	// pointer is the latest raw pointer position; lastFrame is the pointer
	// position seen by the previous frame, used for velocity.
	pointer   Vec2
	lastFrame Vec2

	state    CursorState
	idle     bool
	pressed  bool
	hovering bool

	opacity float64
	fade    *ValueTween

	geo    ebiten.GeoM
	writes int

	sprite      *ebiten.Image
	hoverSprite *ebiten.Image
}

// NewCursor creates an unmounted cursor.
func NewCursor(cfg CursorConfig) *Cursor {
	return &Cursor{
		cfg:      cfg,
		scale:    NewScalar(1),
		rotation: NewScalar(0),
		idle:     true,
	}
}

// Mount implements Effect.
func (c *Cursor) Mount(s *Scene) {
	c.scene = s
	c.loadSprites()
	c.releaseNative = s.HideNativeCursor()
	c.handles = append(c.handles,
		s.OnPointerEnter(c.onEnter),
		s.OnPointerLeave(c.onLeave),
		s.OnPointerMove(c.onMove),
		s.OnPointerDown(c.onDown),
		s.OnPointerUp(c.onUp),
		s.OnPointerOver(c.onOver),
		s.OnFrame(c.onFrame),
	)
	if s.PointerInside() {
		x, y := s.PointerPosition()
		c.show(x, y)
	}
}

// Unmount implements Effect. It removes every callback and restores the
// native cursor.
func (c *Cursor) Unmount() {
	c.handles = removeAll(c.handles)
	if c.releaseNative != nil {
		c.releaseNative()
		c.releaseNative = nil
	}
	c.state = CursorOffSurface
	c.opacity = 0
	c.fade = nil
	c.scene = nil
}

// Layer implements Drawer.
func (c *Cursor) Layer() Layer { return LayerCursor }

// State returns the current state.
func (c *Cursor) State() CursorState { return c.state }

// Position returns the drawn position.
func (c *Cursor) Position() Vec2 { return c.pos.Current }

// Target returns the position the cursor is easing toward.
func (c *Cursor) Target() Vec2 { return c.pos.Target }

// Scale returns the drawn scale.
func (c *Cursor) Scale() float64 { return c.scale.Current }

// Rotation returns the drawn rotation in degrees.
func (c *Cursor) Rotation() float64 { return c.rotation.Current }

// Opacity returns the current opacity.
func (c *Cursor) Opacity() float64 { return c.opacity }

// Hovering reports whether the hover sprite is selected.
func (c *Cursor) Hovering() bool { return c.hovering }

// Idle reports whether the cursor has settled and skips per-frame work.
func (c *Cursor) Idle() bool { return c.idle }

// TransformWrites returns how many times the transform has been rebuilt.
func (c *Cursor) TransformWrites() int { return c.writes }

// GeoM returns the transform used to draw the sprite.
func (c *Cursor) GeoM() ebiten.GeoM { return c.geo }

func (c *Cursor) show(x, y float64) {
	if c.state != CursorOffSurface {
		return
	}
	c.pointer = Vec2{x, y}
	c.lastFrame = c.pointer
	c.pos.Current = c.pointer
	c.pos.Target = c.pointer
	c.state = CursorTracking
	if c.pressed {
		c.state = CursorPressed
	}
	c.fadeTo(1)
	c.wake()
}

func (c *Cursor) fadeTo(v float64) {
	if c.cfg.FadeDuration <= 0 {
		c.opacity = v
		c.fade = nil
		return
	}
	c.fade = TweenValue(&c.opacity, v, c.cfg.FadeDuration, ease.Linear)
}

func (c *Cursor) wake() {
	c.idle = false
}

func (c *Cursor) onEnter(ctx PointerContext) {
	c.show(ctx.X, ctx.Y)
}

func (c *Cursor) onLeave(PointerContext) {
	if c.state == CursorOffSurface {
		return
	}
	c.state = CursorOffSurface
	c.fadeTo(0)
}

func (c *Cursor) onMove(ctx PointerContext) {
	if c.state == CursorOffSurface {
		c.show(ctx.X, ctx.Y)
		return
	}
	c.pointer = Vec2{ctx.X, ctx.Y}
	c.pos.Target = c.pointer
	if c.state == CursorIdle {
		c.state = CursorTracking
	}
	c.wake()
}

func (c *Cursor) onDown(PointerContext) {
	c.pressed = true
	c.scale.Target = c.cfg.PressScale
	if c.state != CursorOffSurface {
		c.state = CursorPressed
	}
	c.wake()
}

func (c *Cursor) onUp(PointerContext) {
	c.pressed = false
	c.scale.Target = 1
	if c.state == CursorPressed {
		c.state = CursorTracking
	}
	c.wake()
}

func (c *Cursor) onOver(ctx PointerContext) {
	c.hovering = ctx.Target != nil && IsClickable(ctx.Target)
}

func (c *Cursor) onFrame(fc FrameContext) {
	if c.fade != nil {
		c.fade.Update(float32(fc.Dt))
		if c.fade.Done {
			c.fade = nil
		}
	}
	if c.idle {
		return
	}

	vx := c.pointer.X - c.lastFrame.X
	vy := c.pointer.Y - c.lastFrame.Y
	c.lastFrame = c.pointer
	if math.Hypot(vx, vy) > c.cfg.TiltThreshold {
		c.rotation.Target = clamp(vx*c.cfg.TiltFactor, -c.cfg.MaxTilt, c.cfg.MaxTilt)
	} else {
		c.rotation.Target = 0
	}

	c.pos.Step(c.cfg.PositionFactor)
	c.scale.Step(c.cfg.StyleFactor)
	c.rotation.Step(c.cfg.StyleFactor)

	if c.pos.Settled(c.cfg.PositionEpsilon) &&
		c.scale.Settled(c.cfg.ScaleEpsilon) &&
		c.rotation.Settled(c.cfg.RotationEpsilon) {
		c.pos.Snap()
		c.scale.Snap()
		c.rotation.Snap()
		c.writeTransform()
		c.idle = true
		if c.state == CursorTracking {
			c.state = CursorIdle
		}
		return
	}
	c.writeTransform()
}

// writeTransform rebuilds the sprite matrix: anchor at the sprite center,
// scale, rotate, then move to the position.
func (c *Cursor) writeTransform() {
	half := float64(c.cfg.Size) / 2
	c.geo.Reset()
	c.geo.Translate(-half, -half)
	c.geo.Scale(c.scale.Current, c.scale.Current)
	c.geo.Rotate(c.rotation.Current * math.Pi / 180)
	c.geo.Translate(c.pos.Current.X, c.pos.Current.Y)
	c.writes++
}

// Draw implements Drawer.
func (c *Cursor) Draw(screen *ebiten.Image) {
	if c.opacity <= 0 {
		return
	}
	img := c.sprite
	if c.hovering {
		img = c.hoverSprite
	}
	if img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	sz := float64(c.cfg.Size)
	b := img.Bounds()
	if b.Dx() > 0 && b.Dy() > 0 {
		op.GeoM.Scale(sz/float64(b.Dx()), sz/float64(b.Dy()))
	}
	op.GeoM.Concat(c.geo)
	op.ColorScale.ScaleAlpha(float32(c.opacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, &op)
}

// loadSprites loads both sprites up front so the hover swap never waits on
// a file. Missing or unreadable files fall back to drawn sprites.
func (c *Cursor) loadSprites() {
	if c.sprite != nil {
		return
	}
	c.sprite = loadSprite(c.cfg.Sprite, c.cfg.Size, drawArrowSprite)
	c.hoverSprite = loadSprite(c.cfg.HoverSprite, c.cfg.Size, drawRingSprite)
}

func loadSprite(path string, size int, fallback func(*ebiten.Image)) *ebiten.Image {
	if path != "" {
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err == nil {
			return img
		}
		fmt.Fprintf(os.Stderr, "[ideon] cursor sprite %s: %v\n", path, err)
	}
	if size <= 0 {
		size = 32
	}
	img := ebiten.NewImage(size, size)
	fallback(img)
	return img
}

func drawArrowSprite(img *ebiten.Image) {
	s := float32(img.Bounds().Dx())
	c := s / 2
	white := ColorWhite.RGBA()
	vector.DrawFilledCircle(img, c, c, s*0.16, white, true)
	vector.StrokeCircle(img, c, c, s*0.42, 1.5, ColorWhite.WithAlpha(0.6).RGBA(), true)
}

func drawRingSprite(img *ebiten.Image) {
	s := float32(img.Bounds().Dx())
	c := s / 2
	accent := Color{R: 1, G: 0.55, B: 0.25, A: 1}
	vector.StrokeCircle(img, c, c, s*0.45, 2, accent.RGBA(), true)
	vector.DrawFilledCircle(img, c, c, s*0.08, accent.RGBA(), true)
}
