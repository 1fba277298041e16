package ideon

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and bookkeeping counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	inputTime     time.Duration
	frameTime     time.Duration
	frameHandlers int
	handlers      int
	observations  int
}

// debugLogEvery limits debug output to one line pair per this many ticks.
const debugLogEvery = 60

// debugLog prints timing stats and callback counts to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.tick%debugLogEvery != 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[ideon] tick %d | input: %v | frame: %v | total: %v\n",
		s.tick, stats.inputTime, stats.frameTime, stats.inputTime+stats.frameTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[ideon] frame callbacks: %d | handlers: %d | observations: %d | timers: %d\n",
		stats.frameHandlers, stats.handlers, stats.observations, len(s.timers))
}

// debugHandlerLeak warns when callbacks remain after every effect was
// unmounted. Called from Close in debug mode.
func (s *Scene) debugHandlerLeak() {
	if n := s.handlers.count(); n > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "[ideon] warning: %d callbacks still registered after close\n", n)
	}
}
