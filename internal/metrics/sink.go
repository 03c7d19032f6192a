// Package metrics is the core's write-only collaborator for task-execution
// time-series points.
package metrics

import (
	"context"

	"github.com/srand/tilecore/internal/completion"
	"github.com/srand/tilecore/pkg/log"
)

// Sink persists one task-execution completion record as a time-series
// point. Implementations must be safe for concurrent use.
type Sink interface {
	WriteTaskExecution(ctx context.Context, record completion.Record) error
}

// LogSink stands in for the real time-series writer: it logs the write.
// Safe for concurrent use since pkg/log is itself concurrency-safe.
type LogSink struct {
	log *log.ComponentLogger
}

// NewLogSink creates a LogSink.
func NewLogSink() *LogSink {
	return &LogSink{log: log.Component("metrics")}
}

func (s *LogSink) WriteTaskExecution(ctx context.Context, record completion.Record) error {
	s.log.Infof("task execution: stage=%s tile=%s worker=%s exit_code=%d cpu_time=%.2fs",
		record.PipelineStageID, record.TileID, record.WorkerID, record.ExitCode, record.CpuTimeSeconds)
	return nil
}
