package runtime

import (
	goruntime "runtime"
	"runtime/debug"
	"sync"
)

// GC is the control surface over the collector serving a VM. The engine
// is pure Go, so the collector behind these controls is the host
// runtime's; controls the runtime cannot query back are tracked locally,
// and tuning applies process-wide rather than per VM.
type GC struct {
	mu      sync.Mutex
	enabled bool
	percent int // pause knob restored on Enable
	stepMul int
}

func newGC() *GC {
	return &GC{enabled: true, percent: 100, stepMul: 200}
}

// GC returns the collector control surface for this state.
func (s *State) GC() *GC {
	return s.gc
}

// Collect performs a full garbage-collection cycle.
func (g *GC) Collect() {
	goruntime.GC()
}

// Step performs an incremental step of garbage collection and reports
// whether the step finished a collection cycle.
func (g *GC) Step() bool {
	return g.StepKB(0)
}

// StepKB performs a collection step as if size KB had been allocated.
// The host collector has no partial-step primitive, so a step drives a
// whole cycle; the report compares completed-cycle counts.
func (g *GC) StepKB(size int) bool {
	var before, after goruntime.MemStats
	goruntime.ReadMemStats(&before)
	goruntime.GC()
	goruntime.ReadMemStats(&after)
	return after.NumGC > before.NumGC
}

// Enable restarts automatic collection.
func (g *GC) Enable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.enabled {
		debug.SetGCPercent(g.percent)
		g.enabled = true
	}
}

// Disable stops automatic collection until Enable. Collect and Step
// still work while disabled.
func (g *GC) Disable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.enabled {
		g.percent = debug.SetGCPercent(-1)
		g.enabled = false
	}
}

// IsEnabled reports whether automatic collection is running. The host
// runtime has no query primitive, so the last requested state is tracked
// locally.
func (g *GC) IsEnabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled
}

// Count returns the memory currently in use, in KB.
func (g *GC) Count() int {
	var ms goruntime.MemStats
	goruntime.ReadMemStats(&ms)
	return int(ms.HeapAlloc / 1024)
}

// SetPause sets the collector pause and returns the previous value. The
// pause maps onto the host collector's target-percentage knob.
func (g *GC) SetPause(v int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.percent
	g.percent = v
	if g.enabled {
		debug.SetGCPercent(v)
	}
	return prev
}

// SetStepMul sets the step multiplier and returns the previous value.
// The host collector exposes no knob behind it; the value is tracked so
// callers that save and restore tunables stay symmetric.
func (g *GC) SetStepMul(v int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.stepMul
	g.stepMul = v
	return prev
}
