package petal

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to four values together and hands them to an
// apply function after every step. Build one with TweenPosition,
// TweenColor, TweenOpacity or TweenValue and call Update(dt) each frame,
// typically from the window's update callback.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(v [4]float64)
	Done   bool
}

func newTweenGroup(from, to []float64, duration float32, fn ease.TweenFunc, apply func([4]float64)) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: len(from), apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
		g.values[i] = from[i]
	}
	return g
}

// Update advances every tween by dt seconds and applies the new values.
// Done is set once all of them have finished.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.apply != nil {
		g.apply(g.values)
	}
}

// Stop finishes the group where it is. No further values are applied.
func (g *TweenGroup) Stop() { g.Done = true }

// TweenPosition moves p to (toX, toY) over duration seconds.
func TweenPosition(p Positioner, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	x, y := p.Position()
	return newTweenGroup([]float64{x, y}, []float64{toX, toY}, duration, fn, func(v [4]float64) {
		p.SetPosition(v[0], v[1])
	})
}

// colored is implemented by every type embedding Base.
type colored interface {
	Color() ColorSet
	SetColor(ColorSet) error
}

// TweenColor fades every color the object carries to a single target.
// A per-vertex set stays per-vertex, each vertex fading from its own
// starting color. If the object rejects a step's colors the tween stops.
func TweenColor(obj colored, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	start := obj.Color()
	from := make([]Color, start.Len())
	for i := range from {
		from[i] = start.At(i)
	}
	step := make([]Color, len(from))

	var g *TweenGroup
	g = newTweenGroup([]float64{0}, []float64{1}, duration, fn, func(v [4]float64) {
		for i, c := range from {
			step[i] = c.Lerp(to, v[0])
		}
		next := Solid(step[0])
		if start.IsPerVertex() {
			next = PerVertex(step...)
		}
		if err := obj.SetColor(next); err != nil {
			g.Stop()
		}
	})
	return g
}

type opaque interface {
	Opacity() float64
	SetOpacity(float64)
}

// TweenOpacity fades the alpha of every color the object carries.
func TweenOpacity(obj opaque, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup([]float64{obj.Opacity()}, []float64{to}, duration, fn, func(v [4]float64) {
		obj.SetOpacity(v[0])
	})
}

// TweenValue animates a single number and passes each step to set.
func TweenValue(from, to float64, duration float32, fn ease.TweenFunc, set func(float64)) *TweenGroup {
	return newTweenGroup([]float64{from}, []float64{to}, duration, fn, func(v [4]float64) {
		set(v[0])
	})
}
