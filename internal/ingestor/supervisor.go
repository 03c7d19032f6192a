package ingestor

import (
	"context"
	"sync"

	"github.com/srand/tilecore/pkg/log"
)

// Supervisor runs one Loop per project, matching the teacher's
// one-goroutine-per-managed-entity shape (pkg/scheduler/scheduler_priority.go).
// Distinct projects run in parallel and share only the tilestatus.Store.
type Supervisor struct {
	mu    sync.Mutex
	wg    sync.WaitGroup
	loops map[string]context.CancelFunc
	log   *log.ComponentLogger
}

// NewSupervisor creates an empty Supervisor.
func NewSupervisor() *Supervisor {
	return &Supervisor{
		loops: make(map[string]context.CancelFunc),
		log:   log.Component("ingestor.supervisor"),
	}
}

// Start launches loop's Run under ctx and tracks it for Stop/StopProject.
// projectID must be unique among currently running loops.
func (s *Supervisor) Start(ctx context.Context, projectID string, loop *Loop) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loopCtx, cancel := context.WithCancel(ctx)
	s.loops[projectID] = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.log.Infof("starting ingestor loop for project %s", projectID)
		loop.Run(loopCtx)
		s.log.Infof("ingestor loop for project %s stopped", projectID)
	}()
}

// StopProject cancels a single project's loop; the running tick, if any,
// completes before the loop returns.
func (s *Supervisor) StopProject(projectID string) {
	s.mu.Lock()
	cancel, ok := s.loops[projectID]
	if ok {
		delete(s.loops, projectID)
	}
	s.mu.Unlock()

	if ok {
		cancel()
	}
}

// Stop cancels every running loop and waits for them to finish their
// in-flight ticks.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	for _, cancel := range s.loops {
		cancel()
	}
	s.loops = make(map[string]context.CancelFunc)
	s.mu.Unlock()

	s.wg.Wait()
}
