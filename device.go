package ideon

import (
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

// TouchProbe reports touch capabilities of the host.
type TouchProbe interface {
	// HasTouchEvents reports whether the platform delivers touch events.
	HasTouchEvents() bool
	// MaxTouchPoints returns the number of simultaneous touch points the
	// host supports, or 0 when unknown.
	MaxTouchPoints() int
}

// DeviceClassifier decides whether pointer-driven effects are enabled.
// Until the first Refresh it reports a touch device so that the custom
// cursor never flashes on hosts that should not show it.
type DeviceClassifier struct {
	probe    TouchProbe
	touch    bool
	measured bool
	w, h     int
}

// NewDeviceClassifier creates a classifier backed by probe. A nil probe
// uses the ebiten host probe.
func NewDeviceClassifier(probe TouchProbe) *DeviceClassifier {
	if probe == nil {
		probe = &hostProbe{}
	}
	return &DeviceClassifier{probe: probe, touch: true}
}

// IsTouchDevice reports the most recent classification.
func (d *DeviceClassifier) IsTouchDevice() bool {
	return d.touch
}

// Measured reports whether Refresh has run at least once.
func (d *DeviceClassifier) Measured() bool {
	return d.measured
}

// Refresh re-evaluates the classification. The scene calls it on the first
// layout and on every viewport resize. It returns true when the
// classification changed.
func (d *DeviceClassifier) Refresh(width, height int) bool {
	if d.measured && width == d.w && height == d.h {
		return false
	}
	d.w, d.h = width, height
	prev := d.touch
	d.touch = d.probe.HasTouchEvents() || d.probe.MaxTouchPoints() > 0
	d.measured = true
	return prev != d.touch
}

// hostProbe classifies using the GOOS and any touches ebiten has reported.
type hostProbe struct {
	buf  []ebiten.TouchID
	seen bool
}

func (p *hostProbe) HasTouchEvents() bool {
	switch runtime.GOOS {
	case "android", "ios":
		return true
	}
	return false
}

func (p *hostProbe) MaxTouchPoints() int {
	p.buf = ebiten.AppendTouchIDs(p.buf[:0])
	if len(p.buf) > 0 {
		p.seen = true
	}
	if p.seen {
		return maxPointers
	}
	return 0
}
