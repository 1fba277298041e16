package ideon

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Star is a background point that falls slowly and twinkles.
type Star struct {
	X, Y         float64
	Radius       float64
	Fall         float64
	BaseOpacity  float64
	TwinkleSpeed float64
	Phase        float64
	Opacity      float64
}

// Meteor is a streak that crosses the sky after its arm time.
type Meteor struct {
	X, Y      float64
	Length    float64
	Speed     float64
	Angle     float64 // radians below horizontal, moving left and down
	Thickness float64
	Opacity   float64
	Active    bool
	ArmTime   time.Duration
}

// meteorStop is one color stop of the meteor streak, from head (0) to tail (1).
type meteorStop struct {
	at  float64
	clr Color
}

var meteorGradient = []meteorStop{
	{0, Color{R: 1, G: 1, B: 1, A: 1}},
	{0.3, Color{R: 1, G: 200.0 / 255, B: 150.0 / 255, A: 0.6}},
	{1, Color{R: 1, G: 100.0 / 255, B: 50.0 / 255, A: 0}},
}

// gradientAt samples the meteor gradient at t in [0, 1].
func gradientAt(t float64) Color {
	t = clamp01(t)
	for i := 1; i < len(meteorGradient); i++ {
		a, b := meteorGradient[i-1], meteorGradient[i]
		if t <= b.at {
			f := (t - a.at) / (b.at - a.at)
			return Color{
				R: a.clr.R + (b.clr.R-a.clr.R)*f,
				G: a.clr.G + (b.clr.G-a.clr.G)*f,
				B: a.clr.B + (b.clr.B-a.clr.B)*f,
				A: a.clr.A + (b.clr.A-a.clr.A)*f,
			}
		}
	}
	return meteorGradient[len(meteorGradient)-1].clr
}

const meteorSegments = 12

// StarCount returns min(maxStars, floor(w*h/areaPerStar)).
func StarCount(w, h, areaPerStar float64, maxStars int) int {
	if areaPerStar <= 0 || w <= 0 || h <= 0 {
		return 0
	}
	return min(maxStars, int(math.Floor(w*h/areaPerStar)))
}

// Starfield animates the background stars and meteors. Pools are sized on
// the first nonzero viewport and never change size afterwards; a resize only
// changes the bounds they wrap and reset within.
type Starfield struct {
	cfg   StarfieldConfig
	scene *Scene

	handles []CallbackHandle

	stars   []Star
	meteors []Meteor
	ready   bool
	w, h    float64
}

// NewStarfield creates an unmounted starfield.
func NewStarfield(cfg StarfieldConfig) *Starfield {
	return &Starfield{cfg: cfg}
}

// Mount implements Effect.
func (f *Starfield) Mount(s *Scene) {
	f.scene = s
	f.handles = append(f.handles,
		s.OnResize(f.onResize),
		s.OnFrame(f.onFrame),
	)
	v := s.Viewport()
	f.resize(v.Width, v.Height)
}

// Unmount implements Effect.
func (f *Starfield) Unmount() {
	f.handles = removeAll(f.handles)
	f.scene = nil
}

// Layer implements Drawer.
func (f *Starfield) Layer() Layer { return LayerBackground }

// Stars returns the star pool. The returned slice MUST NOT be mutated.
func (f *Starfield) Stars() []Star { return f.stars }

// Meteors returns the meteor pool. The returned slice MUST NOT be mutated.
func (f *Starfield) Meteors() []Meteor { return f.meteors }

// Size returns the surface size the pools currently simulate in.
func (f *Starfield) Size() (float64, float64) { return f.w, f.h }

func (f *Starfield) onResize(ctx ResizeContext) {
	f.resize(ctx.Width, ctx.Height)
}

func (f *Starfield) resize(w, h float64) {
	f.w, f.h = w, h
	if f.ready || w <= 0 || h <= 0 {
		return
	}
	f.ready = true
	n := StarCount(w, h, f.cfg.AreaPerStar, f.cfg.MaxStars)
	f.stars = make([]Star, n)
	for i := range f.stars {
		f.initStar(&f.stars[i], f.scene.Rand().Float64()*h)
	}
	f.meteors = make([]Meteor, f.cfg.Meteors)
	for i := range f.meteors {
		f.resetMeteor(&f.meteors[i], f.scene.Now())
	}
}

func (f *Starfield) initStar(st *Star, y float64) {
	rng := f.scene.Rand()
	st.X = rng.Float64() * f.w
	st.Y = y
	st.Radius = f.cfg.StarRadius.Random(rng)
	st.Fall = f.cfg.StarFall.Random(rng)
	st.BaseOpacity = f.cfg.StarOpacity.Random(rng)
	st.TwinkleSpeed = f.cfg.TwinkleSpeed.Random(rng)
	st.Phase = rng.Float64() * 2 * math.Pi
	st.Opacity = st.BaseOpacity
}

// resetMeteor re-rolls m and arms it strictly after now.
func (f *Starfield) resetMeteor(m *Meteor, now time.Duration) {
	rng := f.scene.Rand()
	m.X = rng.Float64() * f.w * 1.5
	m.Y = -50
	m.Length = f.cfg.MeteorLength.Random(rng)
	m.Speed = f.cfg.MeteorSpeed.Random(rng)
	jitter := (rng.Float64()*2 - 1) * f.cfg.MeteorJitter
	m.Angle = (f.cfg.MeteorAngle + jitter) * math.Pi / 180
	m.Thickness = f.cfg.MeteorThickness.Random(rng)
	m.Opacity = 0
	m.Active = false
	delay := time.Duration(rng.Float64() * float64(f.cfg.MeteorMaxDelay))
	if frame := f.scene.FrameDuration(); delay < frame {
		delay = frame
	}
	m.ArmTime = now + delay
}

func (f *Starfield) onFrame(fc FrameContext) {
	if !f.ready {
		return
	}
	ms := float64(fc.Now) / float64(time.Millisecond)
	for i := range f.stars {
		st := &f.stars[i]
		st.Y += st.Fall
		st.X += math.Sin(ms*0.001+st.Phase) * 0.1
		if st.X < 0 {
			st.X += f.w
		} else if st.X > f.w {
			st.X -= f.w
		}
		if st.Y > f.h {
			st.Y = -5
			st.X = f.scene.Rand().Float64() * f.w
		}
		st.Opacity = st.BaseOpacity * (0.5 + 0.5*math.Sin(ms*st.TwinkleSpeed+st.Phase))
	}
	for i := range f.meteors {
		m := &f.meteors[i]
		if !m.Active {
			if fc.Now < m.ArmTime {
				continue
			}
			m.Active = true
		}
		m.X -= math.Cos(m.Angle) * m.Speed
		m.Y += math.Sin(m.Angle) * m.Speed
		m.Opacity = math.Min(1, m.Opacity+0.1)
		if m.Y > f.h+50 || m.X < -100 {
			f.resetMeteor(m, fc.Now)
		}
	}
}

// Draw implements Drawer.
func (f *Starfield) Draw(screen *ebiten.Image) {
	for _, st := range f.stars {
		if st.Opacity <= 0 {
			continue
		}
		vector.DrawFilledCircle(screen, float32(st.X), float32(st.Y), float32(st.Radius),
			ColorWhite.WithAlpha(st.Opacity).RGBA(), true)
	}
	for _, m := range f.meteors {
		if !m.Active || m.Opacity <= 0 {
			continue
		}
		drawMeteor(screen, m)
	}
}

// drawMeteor strokes the streak from the head back along the direction of
// travel, sampling the gradient per segment, then draws a solid head.
func drawMeteor(screen *ebiten.Image, m Meteor) {
	dx := math.Cos(m.Angle) * m.Length
	dy := -math.Sin(m.Angle) * m.Length
	for i := 0; i < meteorSegments; i++ {
		t0 := float64(i) / meteorSegments
		t1 := float64(i+1) / meteorSegments
		clr := gradientAt((t0 + t1) / 2).WithAlpha(m.Opacity)
		vector.StrokeLine(screen,
			float32(m.X+dx*t0), float32(m.Y+dy*t0),
			float32(m.X+dx*t1), float32(m.Y+dy*t1),
			float32(m.Thickness), clr.RGBA(), true)
	}
	vector.DrawFilledCircle(screen, float32(m.X), float32(m.Y), float32(m.Thickness),
		ColorWhite.WithAlpha(m.Opacity).RGBA(), true)
}
