package ideon

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the scene and its effects. Load one from
// YAML with LoadConfig or start from DefaultConfig.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Cursor    CursorConfig    `yaml:"cursor"`
	Sparks    SparkConfig     `yaml:"sparks"`
	Starfield StarfieldConfig `yaml:"starfield"`
	Reveal    RevealConfig    `yaml:"reveal"`
	Scroll    ScrollConfig    `yaml:"scroll"`
	// Seed fixes the random source. Zero seeds from the wall clock.
	Seed uint64 `yaml:"seed"`
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TPS        int    `yaml:"tps"`
	ShowFPS    bool   `yaml:"show_fps"`
	Debug      bool   `yaml:"debug"`
	Background Color  `yaml:"background"`
}

// CursorConfig tunes the custom cursor.
type CursorConfig struct {
	// PositionFactor is the fraction of the remaining distance covered per
	// frame. Must be in (0, 1).
	PositionFactor float64 `yaml:"position_factor"`
	// StyleFactor smooths scale and rotation.
	StyleFactor     float64       `yaml:"style_factor"`
	PressScale      float64       `yaml:"press_scale"`
	TiltFactor      float64       `yaml:"tilt_factor"`
	MaxTilt         float64       `yaml:"max_tilt"`       // degrees
	TiltThreshold   float64       `yaml:"tilt_threshold"` // px per frame
	FadeDuration    time.Duration `yaml:"fade_duration"`
	PositionEpsilon float64       `yaml:"position_epsilon"`
	ScaleEpsilon    float64       `yaml:"scale_epsilon"`
	RotationEpsilon float64       `yaml:"rotation_epsilon"`
	Size            int           `yaml:"size"`
	// Sprite and HoverSprite are image paths. Empty paths use the built-in
	// arrow and ring sprites.
	Sprite      string `yaml:"sprite"`
	HoverSprite string `yaml:"hover_sprite"`
}

// SparkConfig tunes the click spark burst.
type SparkConfig struct {
	Count      int           `yaml:"count"`
	Lifetime   time.Duration `yaml:"lifetime"`
	Radius     float64       `yaml:"radius"`
	TailLength float64       `yaml:"tail_length"`
	Speed      Range         `yaml:"speed"`
	Extra      float64       `yaml:"extra"`
	Color      Color         `yaml:"color"`
}

// StarfieldConfig tunes the background stars and meteors.
type StarfieldConfig struct {
	// AreaPerStar is the surface area, in square pixels, that yields one star.
	AreaPerStar  float64 `yaml:"area_per_star"`
	MaxStars     int     `yaml:"max_stars"`
	Meteors      int     `yaml:"meteors"`
	StarRadius   Range   `yaml:"star_radius"`
	StarFall     Range   `yaml:"star_fall"`
	StarOpacity  Range   `yaml:"star_opacity"`
	TwinkleSpeed Range   `yaml:"twinkle_speed"`

	MeteorLength    Range         `yaml:"meteor_length"`
	MeteorSpeed     Range         `yaml:"meteor_speed"`
	MeteorAngle     float64       `yaml:"meteor_angle"`  // degrees below horizontal
	MeteorJitter    float64       `yaml:"meteor_jitter"` // +/- degrees
	MeteorThickness Range         `yaml:"meteor_thickness"`
	MeteorMaxDelay  time.Duration `yaml:"meteor_max_delay"`
}

// RevealConfig holds defaults for scroll reveals.
type RevealConfig struct {
	Threshold float64 `yaml:"threshold"`
	// MarginBottom shrinks the bottom of the viewport by this many pixels.
	MarginBottom    float64       `yaml:"margin_bottom"`
	Effect          string        `yaml:"effect"`
	Duration        time.Duration `yaml:"duration"`
	Distance        float64       `yaml:"distance"`
	StaggerInterval time.Duration `yaml:"stagger_interval"`
	CountUpDuration time.Duration `yaml:"count_up_duration"`

	// Word-by-word heading reveals.
	TextThreshold float64       `yaml:"text_threshold"`
	TextDuration  time.Duration `yaml:"text_duration"`
	TextDistance  float64       `yaml:"text_distance"`
	WordInterval  time.Duration `yaml:"word_interval"`
}

// ScrollConfig tunes viewport scrolling.
type ScrollConfig struct {
	WheelStep      float64       `yaml:"wheel_step"`
	SmoothDuration time.Duration `yaml:"smooth_duration"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:      "Ideon Studio",
			Width:      1280,
			Height:     800,
			TPS:        60,
			Background: Color{R: 0.02, G: 0.02, B: 0.06, A: 1},
		},
		Cursor: CursorConfig{
			PositionFactor:  0.35,
			StyleFactor:     0.2,
			PressScale:      0.8,
			TiltFactor:      1.5,
			MaxTilt:         25,
			TiltThreshold:   0.5,
			FadeDuration:    200 * time.Millisecond,
			PositionEpsilon: 0.1,
			ScaleEpsilon:    0.001,
			RotationEpsilon: 0.1,
			Size:            32,
		},
		Sparks: SparkConfig{
			Count:      8,
			Lifetime:   400 * time.Millisecond,
			Radius:     20,
			TailLength: 5,
			Speed:      Range{Min: 1, Max: 1.5},
			Extra:      1.2,
			Color:      ColorWhite,
		},
		Starfield: StarfieldConfig{
			AreaPerStar:     5000,
			MaxStars:        200,
			Meteors:         5,
			StarRadius:      Range{Min: 0.5, Max: 2},
			StarFall:        Range{Min: 0.1, Max: 0.4},
			StarOpacity:     Range{Min: 0.2, Max: 1},
			TwinkleSpeed:    Range{Min: 0.01, Max: 0.03},
			MeteorLength:    Range{Min: 40, Max: 120},
			MeteorSpeed:     Range{Min: 10, Max: 25},
			MeteorAngle:     45,
			MeteorJitter:    15,
			MeteorThickness: Range{Min: 1, Max: 3},
			MeteorMaxDelay:  3 * time.Second,
		},
		Reveal: RevealConfig{
			Threshold:       0.1,
			MarginBottom:    50,
			Effect:          string(RevealFadeUp),
			Duration:        800 * time.Millisecond,
			Distance:        40,
			StaggerInterval: 100 * time.Millisecond,
			CountUpDuration: 2 * time.Second,
			TextThreshold:   0.3,
			TextDuration:    600 * time.Millisecond,
			TextDistance:    30,
			WordInterval:    80 * time.Millisecond,
		},
		Scroll: ScrollConfig{
			WheelStep:      40,
			SmoothDuration: 500 * time.Millisecond,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 0 {
		bad("tps %d must not be negative", c.Window.TPS)
	}
	if f := c.Cursor.PositionFactor; f <= 0 || f >= 1 {
		bad("cursor.position_factor %v must be in (0, 1)", f)
	}
	if f := c.Cursor.StyleFactor; f <= 0 || f >= 1 {
		bad("cursor.style_factor %v must be in (0, 1)", f)
	}
	if c.Cursor.PressScale <= 0 {
		bad("cursor.press_scale %v must be positive", c.Cursor.PressScale)
	}
	if c.Sparks.Count < 0 {
		bad("sparks.count %d must not be negative", c.Sparks.Count)
	}
	if c.Sparks.Lifetime <= 0 {
		bad("sparks.lifetime must be positive")
	}
	if c.Starfield.AreaPerStar <= 0 {
		bad("starfield.area_per_star must be positive")
	}
	if c.Starfield.MaxStars < 0 || c.Starfield.Meteors < 0 {
		bad("starfield pool sizes must not be negative")
	}
	for name, r := range map[string]Range{
		"sparks.speed":               c.Sparks.Speed,
		"starfield.star_radius":      c.Starfield.StarRadius,
		"starfield.star_fall":        c.Starfield.StarFall,
		"starfield.star_opacity":     c.Starfield.StarOpacity,
		"starfield.twinkle_speed":    c.Starfield.TwinkleSpeed,
		"starfield.meteor_length":    c.Starfield.MeteorLength,
		"starfield.meteor_speed":     c.Starfield.MeteorSpeed,
		"starfield.meteor_thickness": c.Starfield.MeteorThickness,
	} {
		if r.Min > r.Max {
			bad("%s min %v exceeds max %v", name, r.Min, r.Max)
		}
	}
	if t := c.Reveal.Threshold; t < 0 || t > 1 {
		bad("reveal.threshold %v must be in [0, 1]", t)
	}
	if t := c.Reveal.TextThreshold; t < 0 || t > 1 {
		bad("reveal.text_threshold %v must be in [0, 1]", t)
	}
	if c.Reveal.Effect != "" && !RevealEffect(c.Reveal.Effect).Known() {
		bad("reveal.effect %q is not a known effect", c.Reveal.Effect)
	}
	if c.Scroll.WheelStep <= 0 {
		bad("scroll.wheel_step must be positive")
	}
	return errors.Join(errs...)
}

// Known reports whether r names one of the built-in effects.
func (r RevealEffect) Known() bool {
	switch r {
	case RevealFadeUp, RevealFadeIn, RevealSlideLeft, RevealSlideRight, RevealScale, RevealRotate:
		return true
	}
	return false
}

// UnmarshalYAML accepts either a mapping with r, g, b, a keys or a hex
// string "#rrggbb" / "#rrggbbaa".
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		parsed, err := ParseHexColor(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		*c = parsed
		return nil
	}
	type plain Color
	p := plain{A: 1}
	if err := n.Decode(&p); err != nil {
		return err
	}
	*c = Color(p)
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
