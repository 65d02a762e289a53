package main

import (
	"github.com/hubastard/tesseract/engine/core"
	"github.com/hubastard/tesseract/engine/profiler"
	"github.com/hubastard/tesseract/engine/tesseract"
)

// StatsLayer logs frame timing and projection counts every few frames.
type StatsLayer struct {
	cube  *tesseract.Hypercube
	every uint64
}

func (l *StatsLayer) OnAttach(e *core.Engine) {}
func (l *StatsLayer) OnDetach(e *core.Engine) { l.report(e) }

func (l *StatsLayer) OnUpdate(e *core.Engine, dt float64) {
	if n := e.Frames(); n > 0 && n%l.every == 0 {
		l.report(e)
	}
}

func (l *StatsLayer) OnRender(e *core.Engine)                    {}
func (l *StatsLayer) OnEvent(e *core.Engine, ev core.Event) bool { return false }

func (l *StatsLayer) report(e *core.Engine) {
	ps := l.cube.LastStats()
	log := core.Logger()
	log.Info("stats",
		"frame", e.Frames(),
		"projected", ps.Projected,
		"clamped", ps.Clamped,
		"dropped", ps.Dropped,
		"memMB", float64(profiler.MemoryUsage())/(1<<20),
		"goroutines", profiler.NumGoroutine(),
	)
	for _, s := range profiler.Snapshot() {
		log.Debug("scope", "name", s.Name, "count", s.Count, "mean", s.Mean(), "max", s.Max)
	}
}
