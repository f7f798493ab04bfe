package petal

import "time"

// frameStats accumulates timing between diagnostics reports.
// Only reported when the Diagnostics option is on.
type frameStats struct {
	update   time.Duration
	render   time.Duration
	objects  int
	frames   int
	lastLog  time.Time
	reported bool
}

const diagnosticsInterval = time.Second

// diagnosticsTick prints averaged frame stats once per second.
func (w *Window) diagnosticsTick(now time.Time) {
	if !w.settings.diagnostics {
		return
	}
	s := &w.stats
	s.frames++
	if !s.reported {
		s.reported = true
		s.lastLog = now
		return
	}
	if now.Sub(s.lastLog) < diagnosticsInterval {
		return
	}
	n := time.Duration(s.frames)
	w.logf("frames: %d | update: %v | render: %v | objects: %d | fps: %.1f",
		s.frames, s.update/n, s.render/n, s.objects, w.fps.value)
	*s = frameStats{lastLog: now, reported: true}
}

// debugCheckObjectCount warns once the scene list gets large enough that
// linear identity checks in Add start to matter.
const debugMaxObjects = 10000

func debugCheckObjectCount(w *Window) {
	if w.settings.diagnostics && len(w.objects) == debugMaxObjects+1 {
		w.logf("warning: window holds %d objects (threshold %d)", len(w.objects), debugMaxObjects)
	}
}
