package site

import "github.com/ideonstudio/ideon"

var (
	colorText     = ideon.Color{R: 0.93, G: 0.93, B: 0.96, A: 1}
	colorMuted    = ideon.Color{R: 0.62, G: 0.63, B: 0.7, A: 1}
	colorAccent   = ideon.Color{R: 1, G: 0.55, B: 0.25, A: 1}
	colorCard     = ideon.Color{R: 1, G: 1, B: 1, A: 0.04}
	colorBorder   = ideon.Color{R: 1, G: 1, B: 1, A: 0.12}
	colorNav      = ideon.Color{R: 0.02, G: 0.02, B: 0.06, A: 0.85}
	colorBackdrop = ideon.Color{R: 0, G: 0, B: 0, A: 0.6}
	colorInput    = ideon.Color{R: 1, G: 1, B: 1, A: 0.06}
	colorFocus    = ideon.Color{R: 1, G: 0.55, B: 0.25, A: 0.8}
)

const (
	maxContentWidth = 1100.0
	pagePadding     = 24.0
	navHeight       = 64.0
	sectionGap      = 96.0

	sizeHero    = 56.0
	sizeTitle   = 40.0
	sizeHeading = 28.0
	sizeSubhead = 20.0
	sizeBody    = 16.0
	sizeSmall   = 13.0
	sizeStat    = 44.0

	progressBarHeight = 3.0
)
