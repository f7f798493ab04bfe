// Package petal is a small 2D scene and windowing layer for [Ebitengine].
//
// A program creates one [Window], adds shapes, images, sprites, text and
// canvases to it, installs update and render callbacks, and calls
// [Window.Show]. The window keeps its objects ordered by depth and draws
// them every frame, lowest Z first.
//
// # Quick start
//
//	w := petal.NewWindow(petal.Title("Hello"), petal.Size(640, 480))
//
//	sq, _ := petal.NewSquare(petal.SquareConfig{X: 10, Y: 20, Size: 50,
//		Color: petal.Solid(petal.MustParseColor("blue"))})
//	w.Add(sq)
//
//	w.OnKey(petal.EventKeyDown, func(e petal.KeyEvent) {
//		if e.Key == "escape" {
//			w.Close()
//		}
//	})
//	w.Update(func() { sq.X++ })
//
//	if err := w.Show(); err != nil {
//		log.Fatal(err)
//	}
//
// # Colors
//
// Colors are parsed from clrs.cc keywords ("navy", "teal"), "#rrggbb" hex,
// or "random" with [ParseColor]. Shapes take a [ColorSet]: [Solid] for one
// color, or [PerVertex] to blend one color per corner.
//
// # Input
//
// Handlers are registered per [EventCategory] with [Window.OnKey],
// [Window.OnMouse] and [Window.OnController], and removed with
// [Window.Off]. The per-frame query methods such as [Window.KeyDown] and
// [Window.MouseMove] report what happened since the last rendered frame.
//
// # Platforms and renderers
//
// [Window.Show] runs an [EbitenPlatform] unless another [Platform] was
// given with [WithPlatform]. Platforms drive the window by calling the
// callback entry points, then [Window.UpdateFrame] and
// [Window.RenderFrame] once per tick, so the scene can be tested headless
// against any [Renderer].
//
// # Tweens
//
// [TweenPosition], [TweenColor], [TweenOpacity] and [TweenValue] animate
// objects with easing functions from [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package petal
