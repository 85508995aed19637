package feet

import (
	"sync"
)

// Phase names a step of a Feet operation.
type Phase string

// Phases reported to PhaseHooks, in the order an operation reaches them.
const (
	PhaseScraping    Phase = "scraping"
	PhaseLoading     Phase = "loading"
	PhaseOpening     Phase = "opening"
	PhaseReconciling Phase = "reconciling"
	PhaseCreating    Phase = "creating"
	PhaseChangeLog   Phase = "changelog"
	PhaseSaving      Phase = "saving"
	PhaseDone        Phase = "done"
)

// PhaseHook is called when an operation enters a phase. detail names the
// document, directory or page set the phase works on.
type PhaseHook func(phase Phase, detail string)

// hooks manages progress callbacks
type hooks struct {
	mu      sync.RWMutex
	onPhase []PhaseHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnPhase registers a callback for phase changes
func (h *hooks) OnPhase(fn PhaseHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPhase = append(h.onPhase, fn)
}

// trigger calls every registered hook in registration order
func (h *hooks) trigger(phase Phase, detail string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onPhase {
		fn(phase, detail)
	}
}
