package ideon

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window options for Run. Zero fields fall back to the
// scene's WindowConfig.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool
	Debug     bool
}

// Run opens a window and drives scene as the ebiten game until the window
// closes or an update callback returns an error. Mounted effects are
// unmounted on the way out.
func Run(scene *Scene, cfg RunConfig) error {
	win := scene.cfg.Window
	if cfg.Title == "" {
		cfg.Title = win.Title
	}
	if cfg.Width <= 0 {
		cfg.Width = win.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = win.Height
	}
	if cfg.ShowFPS {
		scene.SetShowFPS(true)
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(scene.tps())
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	defer scene.Close()

	if err := ebiten.RunGame(scene); err != nil {
		return fmt.Errorf("ideon: run: %w", err)
	}
	return nil
}
