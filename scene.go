package ideon

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Layer orders what an Effect draws. Lower layers are drawn first.
type Layer uint8

const (
	LayerBackground Layer = iota // starfield
	LayerContent                 // page elements (drawn by the scene)
	LayerOverlay                 // spark overlay
	LayerCursor                  // cursor sprite, topmost; never hit-tested
	LayerDebug                   // FPS and debug text
)

// Effect is a subsystem mounted into a scene. Mount registers its callbacks;
// Unmount must remove every one of them and release anything it acquired.
type Effect interface {
	Mount(s *Scene)
	Unmount()
}

// Drawer is implemented by effects that render.
type Drawer interface {
	Layer() Layer
	Draw(screen *ebiten.Image)
}

// EffectGroup is implemented by effects that mount other effects. The
// scene draws each member on the member's own layer.
type EffectGroup interface {
	Members() []Effect
}

// Scene is the top-level object that owns the page tree, the viewport,
// input state, registered callbacks and mounted effects. It implements
// ebiten.Game.
type Scene struct {
	cfg  Config
	root *Element

	// ClearColor fills the screen before any layer draws.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	viewport *Viewport
	device   *DeviceClassifier
	rng      *rand.Rand

	handlers handlerRegistry
	effects  []Effect

	// Clock
	tick uint64
	now  time.Duration

	// Timers and observations
	timers       []timer
	nextTimerID  uint32
	observations []*Observation

	// Input
	pointer     pointerState
	manualInput bool
	noKeyScroll bool
	injectQueue []syntheticEvent
	hitBuf      []*Element

	// Layout
	sizeKnown     bool
	resizePending bool

	// Native cursor
	cursorHides   int
	setCursorMode func(ebiten.CursorModeType)

	// Diagnostics
	debug           bool
	showFPS         bool
	fps             *fpsOverlay
	screenshotQueue []string
	screenshotSeq   int
	testRunner      *TestRunner

	updateFunc func() error
}

// NewScene creates a scene configured by cfg with an empty page root.
func NewScene(cfg Config) *Scene {
	root := NewElement("root", "body")
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &Scene{
		cfg:           cfg,
		root:          root,
		ClearColor:    cfg.Window.Background,
		ScreenshotDir: "screenshots",
		viewport: &Viewport{
			Width:  float64(cfg.Window.Width),
			Height: float64(cfg.Window.Height),
		},
		device:        NewDeviceClassifier(nil),
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		setCursorMode: ebiten.SetCursorMode,
		debug:         cfg.Window.Debug,
		showFPS:       cfg.Window.ShowFPS,
	}
	s.pointer.lastX, s.pointer.lastY = offSurface, offSurface
	return s
}

// Config returns the scene's configuration.
func (s *Scene) Config() Config {
	return s.cfg
}

// Root returns the page root element.
func (s *Scene) Root() *Element {
	return s.root
}

// Viewport returns the scene viewport.
func (s *Scene) Viewport() *Viewport {
	return s.viewport
}

// Device returns the device classifier.
func (s *Scene) Device() *DeviceClassifier {
	return s.device
}

// SetTouchProbe replaces the device classifier's capability probe.
func (s *Scene) SetTouchProbe(p TouchProbe) {
	s.device = NewDeviceClassifier(p)
	if s.sizeKnown {
		s.device.Refresh(int(s.viewport.Width), int(s.viewport.Height))
		s.resizePending = true
	}
}

// Rand returns the scene's random source.
func (s *Scene) Rand() *rand.Rand {
	return s.rng
}

// Now returns the scene clock.
func (s *Scene) Now() time.Duration {
	return s.now
}

// FrameDuration returns the length of one tick.
func (s *Scene) FrameDuration() time.Duration {
	return time.Second / time.Duration(s.tps())
}

func (s *Scene) tps() int {
	if s.cfg.Window.TPS > 0 {
		return s.cfg.Window.TPS
	}
	return 60
}

// SetManualInput disables polling of the real mouse, wheel and keyboard.
// Only injected events drive the pointer. Used by tests and scripted runs.
func (s *Scene) SetManualInput(manual bool) {
	s.manualInput = manual
}

// ManualInput reports whether real device polling is disabled.
func (s *Scene) ManualInput() bool {
	return s.manualInput
}

// SetKeyboardScroll enables or disables scrolling with the keyboard. Text
// entry turns it off so typed spaces do not page down.
func (s *Scene) SetKeyboardScroll(enabled bool) {
	s.noKeyScroll = !enabled
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables per-frame timing output on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetShowFPS toggles the FPS overlay.
func (s *Scene) SetShowFPS(show bool) {
	s.showFPS = show
}

// Mount mounts e and keeps it until Unmount or Close.
func (s *Scene) Mount(e Effect) {
	e.Mount(s)
	s.effects = append(s.effects, e)
}

// Unmount unmounts e if it is mounted.
func (s *Scene) Unmount(e Effect) {
	for i, m := range s.effects {
		if m == e {
			s.effects = append(s.effects[:i], s.effects[i+1:]...)
			e.Unmount()
			return
		}
	}
}

// Effects returns the mounted effects. The returned slice MUST NOT be mutated.
func (s *Scene) Effects() []Effect {
	return s.effects
}

// Close unmounts every effect in reverse mount order and disposes the page.
func (s *Scene) Close() {
	for i := len(s.effects) - 1; i >= 0; i-- {
		s.effects[i].Unmount()
	}
	s.effects = nil
	for _, c := range append([]*Element(nil), s.root.children...) {
		c.Dispose()
	}
	s.timers = nil
	if s.debug {
		s.debugHandlerLeak()
	}
}

// SetSize resizes the viewport as a host window resize would.
func (s *Scene) SetSize(w, h int) {
	if s.sizeKnown && float64(w) == s.viewport.Width && float64(h) == s.viewport.Height {
		return
	}
	s.sizeKnown = true
	s.viewport.Width = float64(w)
	s.viewport.Height = float64(h)
	s.viewport.ScrollY = s.viewport.clampScroll(s.viewport.ScrollY)
	s.device.Refresh(w, h)
	s.resizePending = true
}

// Layout implements ebiten.Game. The logical screen matches the window.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Update implements ebiten.Game. One call is one frame: it advances the
// clock, processes input, fires scroll/resize events, runs frame callbacks,
// timers and observations.
func (s *Scene) Update() error {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.tick++
	s.now = time.Duration(s.tick) * time.Second / time.Duration(s.tps())
	dt := 1.0 / float64(s.tps())

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	if s.resizePending {
		s.resizePending = false
		s.handlers.resize.dispatch(ResizeContext{Width: s.viewport.Width, Height: s.viewport.Height})
	}

	prevScroll := s.viewport.ScrollY
	s.processInput()
	s.viewport.update(float32(dt))
	if s.viewport.ScrollY != prevScroll {
		s.handlers.scroll.dispatch(ScrollContext{
			ScrollY: s.viewport.ScrollY,
			DeltaY:  s.viewport.ScrollY - prevScroll,
			Width:   s.viewport.Width,
			Height:  s.viewport.Height,
		})
	}

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	s.runTimers()
	s.evaluateObservations()
	s.handlers.frame.dispatch(FrameContext{Now: s.now, Dt: dt, Tick: s.tick})

	if s.debug {
		stats.frameTime = time.Since(t0)
		stats.frameHandlers = s.handlers.frame.len()
		stats.handlers = s.handlers.count()
		stats.observations = len(s.observations)
		s.debugLog(stats)
	}

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw implements ebiten.Game. Layers are drawn bottom to top.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.RGBA())
	for l := LayerBackground; l <= LayerDebug; l++ {
		if l == LayerContent {
			s.drawContent(screen)
		}
		drawLayer(screen, s.effects, l)
	}
	if s.showFPS {
		if s.fps == nil {
			s.fps = newFPSOverlay()
		}
		s.fps.draw(screen, s.now)
	}
	s.flushScreenshots(screen)
}

func drawLayer(screen *ebiten.Image, effects []Effect, l Layer) {
	for _, e := range effects {
		if d, ok := e.(Drawer); ok && d.Layer() == l {
			d.Draw(screen)
		}
		if g, ok := e.(EffectGroup); ok {
			drawLayer(screen, g.Members(), l)
		}
	}
}

// HideNativeCursor hides the host cursor and returns the function that
// restores it. Hides are reference counted; release is idempotent.
func (s *Scene) HideNativeCursor() (release func()) {
	s.cursorHides++
	if s.cursorHides == 1 && s.setCursorMode != nil {
		s.setCursorMode(ebiten.CursorModeHidden)
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			s.cursorHides--
			if s.cursorHides == 0 && s.setCursorMode != nil {
				s.setCursorMode(ebiten.CursorModeVisible)
			}
		})
	}
}

// NativeCursorHidden reports whether any effect holds the native cursor hidden.
func (s *Scene) NativeCursorHidden() bool {
	return s.cursorHides > 0
}

// --- Timers ---

type timer struct {
	id     uint32
	fireAt time.Duration
	fn     func()
}

// TimerHandle cancels a pending After callback.
type TimerHandle struct {
	id    uint32
	scene *Scene
}

// Cancel stops the timer if it has not fired. Safe to call more than once.
func (h TimerHandle) Cancel() {
	if h.scene == nil {
		return
	}
	for i, t := range h.scene.timers {
		if t.id == h.id {
			h.scene.timers = append(h.scene.timers[:i], h.scene.timers[i+1:]...)
			return
		}
	}
}

// After runs fn on the first tick whose clock is at least delay from now.
// A non-positive delay fires on the next tick.
func (s *Scene) After(delay time.Duration, fn func()) TimerHandle {
	s.nextTimerID++
	s.timers = append(s.timers, timer{id: s.nextTimerID, fireAt: s.now + delay, fn: fn})
	return TimerHandle{id: s.nextTimerID, scene: s}
}

func (s *Scene) runTimers() {
	if len(s.timers) == 0 {
		return
	}
	var due []timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.fireAt <= s.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.timers = kept
	for _, t := range due {
		t.fn()
	}
}
