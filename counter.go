package ideon

import (
	"math"
	"strconv"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CountUpOptions configures a count-up number.
type CountUpOptions struct {
	End      float64
	Duration time.Duration
	Prefix   string
	Suffix   string
	// Threshold is the visible fraction that starts the count.
	Threshold float64
}

// CountUp animates an element's text from 0 to End the first time the
// element becomes visible. It never restarts for the life of the subject.
type CountUp struct {
	scene    *Scene
	el       *Element
	opts     CountUpOptions
	obs      *Observation
	tween    *gween.Tween
	frame    CallbackHandle
	value    float64
	animated bool
	finished bool
	done     bool
}

// CountUp attaches a count-up to el. The element shows Prefix+"0"+Suffix
// until it is first seen.
func (s *Scene) CountUp(el *Element, opts CountUpOptions) *CountUp {
	if opts.Duration <= 0 {
		opts.Duration = s.cfg.Reveal.CountUpDuration
	}
	c := &CountUp{scene: s, el: el, opts: opts}
	c.render()
	c.obs = s.Observe(el, ObserveOptions{Threshold: opts.Threshold}, c.onIntersect)
	el.OnDispose(c.Release)
	return c
}

// Value returns the displayed value.
func (c *CountUp) Value() float64 {
	return c.value
}

// Started reports whether the count has begun.
func (c *CountUp) Started() bool {
	return c.animated
}

// Finished reports whether the count reached End.
func (c *CountUp) Finished() bool {
	return c.finished
}

func (c *CountUp) onIntersect(e IntersectionEntry) {
	if !e.Intersecting || c.animated || c.done {
		return
	}
	c.animated = true
	c.obs.Disconnect()
	c.tween = gween.New(0, float32(c.opts.End), float32(c.opts.Duration.Seconds()), ease.OutCubic)
	c.frame = c.scene.OnFrame(c.step)
}

func (c *CountUp) step(fc FrameContext) {
	v, finished := c.tween.Update(float32(fc.Dt))
	if finished {
		c.value = c.opts.End
		c.finished = true
		c.frame.Remove()
	} else {
		c.value = math.Floor(float64(v))
	}
	c.render()
}

func (c *CountUp) render() {
	c.el.Text = c.opts.Prefix + strconv.FormatFloat(c.value, 'f', -1, 64) + c.opts.Suffix
}

// Release stops observing and halts a count in progress.
func (c *CountUp) Release() {
	if c.done {
		return
	}
	c.done = true
	c.obs.Disconnect()
	c.frame.Remove()
}
