// Package ideon is the animation engine behind the Ideon Studio portfolio
// site, built on [Ebitengine].
//
// A [Scene] owns a tree of page [Element]s scrolled by a vertical
// [Viewport], and runs one frame per ebiten tick. Effects mounted into the
// scene register frame, pointer, scroll and resize callbacks and must
// remove all of them on unmount:
//
//   - [Starfield] draws falling, twinkling stars and periodic meteors.
//   - [Cursor] replaces the native cursor with a sprite that eases toward
//     the pointer, shrinks while pressed and tilts with velocity.
//   - [Sparks] bursts radial streaks on every press.
//   - [PointerGate] mounts the cursor and sparks only on non-touch devices.
//
// The scroll reveal engine attaches to elements rather than to the scene:
// [Scene.Reveal], [Scene.Stagger], [Scene.Parallax], [Scene.ScrollProgress]
// and [Scene.CountUp] all observe their element and release themselves
// when it is disposed.
//
// # Quick start
//
//	cfg := ideon.DefaultConfig()
//	scene := ideon.NewScene(cfg)
//	scene.Mount(ideon.NewStarfield(cfg.Starfield))
//	scene.Mount(ideon.NewPointerGate(
//		ideon.NewCursor(cfg.Cursor),
//		ideon.NewSparks(cfg.Sparks),
//	))
//	if err := ideon.Run(scene, ideon.RunConfig{}); err != nil {
//		log.Fatal(err)
//	}
//
// # Testing
//
// [Scene.SetManualInput] stops the scene from polling the real mouse, and
// the Inject methods queue synthetic input consumed one event per Update.
// A [TestRunner] replays a YAML or JSON script of the same events.
//
// [Ebitengine]: https://ebitengine.org
package ideon
