// Command ideon opens the Ideon portfolio site in a window: the starfield
// background, the custom cursor, click sparks and the scroll-revealed pages.
//
// Usage:
//
//	ideon [flags]
//
// Flags:
//
//	--config <file>    YAML config (scene tunables plus a contact section)
//	--width, --height  window size, overriding the config
//	--route <path>     first page to show (default /)
//	--script <file>    JSON or YAML input script; the window closes when it ends
//	--debug            per-frame timing on stderr
//	--fps              FPS overlay
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ideonstudio/ideon"
	"github.com/ideonstudio/ideon/contact"
	"github.com/ideonstudio/ideon/content"
	"github.com/ideonstudio/ideon/site"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// appConfig is the config file layout. Scene settings sit at the top level.
type appConfig struct {
	ideon.Config `yaml:",inline"`
	Contact      contact.EmailJS `yaml:"contact"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		Config: ideon.DefaultConfig(),
		Contact: contact.EmailJS{
			ServiceID:  "service_bts1o1j",
			TemplateID: "template_5d1x3rr",
			PublicKey:  "W04TYoTzsNsauiNXs",
		},
	}
}

func loadAppConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg, nil
	}
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

type options struct {
	config string
	width  int
	height int
	route  string
	script string
	debug  bool
	fps    bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "ideon",
		Short:         "Run the Ideon portfolio site",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "", "path to a YAML config file")
	f.IntVar(&opts.width, "width", 0, "window width (overrides config)")
	f.IntVar(&opts.height, "height", 0, "window height (overrides config)")
	f.StringVar(&opts.route, "route", "/", "first page to show")
	f.StringVar(&opts.script, "script", "", "input script to play, then exit")
	f.BoolVar(&opts.debug, "debug", false, "log per-frame timing to stderr")
	f.BoolVar(&opts.fps, "fps", false, "show the FPS overlay")
	return cmd
}

func run(opts options) error {
	cfg, err := loadAppConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.width > 0 {
		cfg.Window.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Window.Height = opts.height
	}

	catalog, err := content.Default()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	scene := ideon.NewScene(cfg.Config)
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := ideon.LoadTestScript(data)
		if err != nil {
			return fmt.Errorf("load script %s: %w", opts.script, err)
		}
		scene.SetTestRunner(runner)
		scene.SetUpdateFunc(func() error {
			if runner.Done() {
				return ebiten.Termination
			}
			return nil
		})
	}

	pages := site.New(catalog, &cfg.Contact)
	pages.Start = opts.route

	scene.Mount(ideon.NewStarfield(cfg.Starfield))
	scene.Mount(pages)
	scene.Mount(ideon.NewPointerGate(
		ideon.NewSparks(cfg.Sparks),
		ideon.NewCursor(cfg.Cursor),
	))

	err = ideon.Run(scene, ideon.RunConfig{
		Resizable: true,
		ShowFPS:   opts.fps,
		Debug:     opts.debug,
	})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[ideon] ")
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
