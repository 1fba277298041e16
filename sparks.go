package ideon

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// spark is one radial streak of a click burst.
type spark struct {
	x, y      float64
	angle     float64
	speed     float64
	createdAt time.Duration
}

// SparkSegment is the drawable state of a spark at a moment in its life.
type SparkSegment struct {
	X0, Y0 float64 // inner end, where the bright point is drawn
	X1, Y1 float64 // outer end
	Alpha  float64
}

// sparkEase is the quadratic ease-out t*(2-t).
func sparkEase(t float64) float64 {
	return t * (2 - t)
}

// sparkSegment computes where sp is drawn after elapsed.
func sparkSegment(sp spark, elapsed time.Duration, cfg SparkConfig) SparkSegment {
	t := clamp01(float64(elapsed) / float64(cfg.Lifetime))
	eased := sparkEase(t)
	dist := eased * cfg.Radius * sp.speed * cfg.Extra
	tail := cfg.TailLength * (1 - eased)
	cos, sin := math.Cos(sp.angle), math.Sin(sp.angle)
	return SparkSegment{
		X0: sp.x + dist*cos, Y0: sp.y + dist*sin,
		X1: sp.x + (dist+tail)*cos, Y1: sp.y + (dist+tail)*sin,
		Alpha: 1 - eased,
	}
}

// Sparks emits a radial burst on every pointer press and draws it onto an
// overlay layer. The overlay is cleared every frame that has live sparks
// and once more when the last one retires; it is left alone otherwise.
type Sparks struct {
	cfg   SparkConfig
	scene *Scene

	handles []CallbackHandle

	sparks   []spark
	segments []SparkSegment

	overlay   *ebiten.Image
	redraw    bool
	wasActive bool
	clears    int
}

// NewSparks creates an unmounted spark emitter.
func NewSparks(cfg SparkConfig) *Sparks {
	return &Sparks{cfg: cfg}
}

// Mount implements Effect.
func (sp *Sparks) Mount(s *Scene) {
	sp.scene = s
	sp.handles = append(sp.handles,
		s.OnPointerDown(func(ctx PointerContext) { sp.Burst(ctx.X, ctx.Y) }),
		s.OnResize(sp.onResize),
		s.OnFrame(sp.onFrame),
	)
}

// Unmount implements Effect.
func (sp *Sparks) Unmount() {
	sp.handles = removeAll(sp.handles)
	sp.sparks = sp.sparks[:0]
	sp.segments = sp.segments[:0]
	sp.wasActive = false
	sp.redraw = false
	if sp.overlay != nil {
		sp.overlay.Deallocate()
		sp.overlay = nil
	}
	sp.scene = nil
}

// Layer implements Drawer.
func (sp *Sparks) Layer() Layer { return LayerOverlay }

// Burst spawns one burst centered at screen position (x, y).
func (sp *Sparks) Burst(x, y float64) {
	if sp.scene == nil || sp.cfg.Count <= 0 {
		return
	}
	rng := sp.scene.Rand()
	step := 2 * math.Pi / float64(sp.cfg.Count)
	offset := rng.Float64() * step
	now := sp.scene.Now()
	for i := 0; i < sp.cfg.Count; i++ {
		sp.sparks = append(sp.sparks, spark{
			x: x, y: y,
			angle:     float64(i)*step + offset,
			speed:     sp.cfg.Speed.Random(rng),
			createdAt: now,
		})
	}
}

// Active returns the number of live sparks.
func (sp *Sparks) Active() int {
	return len(sp.sparks)
}

// Segments returns the segments computed by the last frame. The returned
// slice MUST NOT be retained.
func (sp *Sparks) Segments() []SparkSegment {
	return sp.segments
}

// Clears returns how many times the overlay has been cleared.
func (sp *Sparks) Clears() int {
	return sp.clears
}

func (sp *Sparks) onResize(ResizeContext) {
	if sp.overlay != nil {
		sp.overlay.Deallocate()
		sp.overlay = nil
	}
	sp.redraw = len(sp.sparks) > 0
}

func (sp *Sparks) onFrame(fc FrameContext) {
	live := sp.sparks[:0]
	sp.segments = sp.segments[:0]
	for _, s := range sp.sparks {
		elapsed := fc.Now - s.createdAt
		if elapsed >= sp.cfg.Lifetime {
			continue
		}
		live = append(live, s)
		sp.segments = append(sp.segments, sparkSegment(s, elapsed, sp.cfg))
	}
	for i := len(live); i < len(sp.sparks); i++ {
		sp.sparks[i] = spark{}
	}
	sp.sparks = live

	switch {
	case len(sp.sparks) > 0:
		sp.redraw = true
		sp.wasActive = true
		sp.clears++
	case sp.wasActive:
		// final clear so the last frame's streaks do not linger
		sp.redraw = true
		sp.wasActive = false
		sp.clears++
	}
}

// Draw implements Drawer.
func (sp *Sparks) Draw(screen *ebiten.Image) {
	if sp.redraw {
		sp.redraw = false
		sp.ensureOverlay(screen)
		sp.overlay.Clear()
		for _, seg := range sp.segments {
			clr := sp.cfg.Color.WithAlpha(seg.Alpha).RGBA()
			vector.StrokeLine(sp.overlay,
				float32(seg.X0), float32(seg.Y0), float32(seg.X1), float32(seg.Y1),
				2, clr, true)
			vector.DrawFilledCircle(sp.overlay, float32(seg.X0), float32(seg.Y0), 1.5, clr, true)
		}
	}
	if sp.overlay != nil && (sp.wasActive || len(sp.segments) > 0) {
		screen.DrawImage(sp.overlay, nil)
	}
}

func (sp *Sparks) ensureOverlay(screen *ebiten.Image) {
	b := screen.Bounds()
	if sp.overlay != nil {
		ob := sp.overlay.Bounds()
		if ob.Dx() == b.Dx() && ob.Dy() == b.Dy() {
			return
		}
		sp.overlay.Deallocate()
	}
	sp.overlay = ebiten.NewImage(b.Dx(), b.Dy())
}
