// Package stagehub implements the scheduler hub facade (C8): it routes
// completion records to the per-stage scheduler that owns them.
package stagehub

import (
	"github.com/srand/tilecore/internal/completion"
	"github.com/srand/tilecore/pkg/utils"
)

// StageScheduler is the capability a per-stage scheduler exposes to the
// hub. No type in this repo implements it; schedulers are attached from
// outside through Register. A fuller per-stage scheduler would also refresh
// tile status and mux its own input/output tiles, of which this is the
// completion-facing slice.
type StageScheduler interface {
	// OnTaskExecutionComplete handles one completion record, returning
	// true once it has been durably applied.
	OnTaskExecutionComplete(record completion.Record) bool
}

// Hub is a concurrency-safe registry of StageScheduler by stage id,
// grounded on the teacher's priorityScheduler worker/build registry
// (pkg/scheduler/scheduler_priority.go).
type Hub struct {
	mu         utils.RWMutex
	schedulers map[string]StageScheduler
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{
		mu:         utils.NewRWMutex(),
		schedulers: make(map[string]StageScheduler),
	}
}

// Register attaches the scheduler owning stageID. A later call for the same
// stageID replaces the previous registration.
func (h *Hub) Register(stageID string, scheduler StageScheduler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.schedulers[stageID] = scheduler
}

// Unregister detaches the scheduler owning stageID, if any.
func (h *Hub) Unregister(stageID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.schedulers, stageID)
}

// Dispatch routes record to the scheduler owning record.PipelineStageID. It
// returns false, never an error, when no scheduler is registered — the
// caller (internal/intake.Dispatcher) retries after a delay.
func (h *Hub) Dispatch(record completion.Record) bool {
	h.mu.RLock()
	scheduler, ok := h.schedulers[record.PipelineStageID]
	h.mu.RUnlock()

	if !ok {
		return false
	}
	return scheduler.OnTaskExecutionComplete(record)
}
