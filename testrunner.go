package ideon

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is one action of an input script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	DY     float64 `yaml:"dy,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

var knownActions = map[string]bool{
	"move": true, "press": true, "release": true, "click": true, "drag": true,
	"leave": true, "scroll": true, "wait": true, "screenshot": true,
}

// TestRunner replays a scripted sequence of injected input, waits and
// screenshots, one step per frame. Attach it with SetTestRunner.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a script. Both YAML and JSON documents are
// accepted:
//
//	steps:
//	  - {action: move, x: 200, y: 200}
//	  - {action: click, x: 200, y: 200}
//	  - {action: wait, frames: 30}
//	  - {action: screenshot, label: burst}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// SetTestRunner attaches runner. Its steps run at the start of each Update,
// before input is processed. Attaching a runner switches the scene to
// manual input so the real mouse cannot interfere.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
	if runner != nil {
		s.manualInput = true
	}
}

// Done reports whether every step has run and all injected input drained.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "press":
		s.InjectPress(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "leave":
		s.InjectLeave()
	case "scroll":
		s.InjectScroll(st.DY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
