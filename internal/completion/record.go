// Package completion holds the task-execution completion record and its
// wire encoding, as delivered by workers over the broker.
package completion

import (
	"encoding/json"
	"time"
)

// Record is a single tile's completed-task report.
type Record struct {
	ID                   string
	WorkerID             string
	TileID               string
	PipelineStageID      string
	ExecutionStatusCode  int
	CompletionStatusCode int
	SubmittedAt          time.Time
	StartedAt            time.Time
	CompletedAt          time.Time
	CpuTimeSeconds       float64
	MaxCpuPercent        float64
	MaxMemoryMb          float64
	ExitCode             int
}

// wireRecord mirrors the broker's JSON payload shape exactly; timestamps
// arrive as RFC 3339 strings and are re-materialized into absolute
// time.Time values.
type wireRecord struct {
	ID                   string  `json:"id"`
	WorkerID             string  `json:"worker_id"`
	TileID               string  `json:"tile_id"`
	PipelineStageID      string  `json:"pipeline_stage_id"`
	ExecutionStatusCode  int     `json:"execution_status_code"`
	CompletionStatusCode int     `json:"completion_status_code"`
	SubmittedAt          time.Time `json:"submitted_at"`
	StartedAt            time.Time `json:"started_at"`
	CompletedAt          time.Time `json:"completed_at"`
	CpuTimeSeconds       float64 `json:"cpu_time_seconds"`
	MaxCpuPercent        float64 `json:"max_cpu_percent"`
	MaxMemoryMb          float64 `json:"max_memory_mb"`
	ExitCode             int     `json:"exit_code"`
}

// Decode parses a broker message payload into a Record.
func Decode(data []byte) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return Record{}, err
	}

	return Record{
		ID:                   w.ID,
		WorkerID:             w.WorkerID,
		TileID:               w.TileID,
		PipelineStageID:      w.PipelineStageID,
		ExecutionStatusCode:  w.ExecutionStatusCode,
		CompletionStatusCode: w.CompletionStatusCode,
		SubmittedAt:          w.SubmittedAt,
		StartedAt:            w.StartedAt,
		CompletedAt:          w.CompletedAt,
		CpuTimeSeconds:       w.CpuTimeSeconds,
		MaxCpuPercent:        w.MaxCpuPercent,
		MaxMemoryMb:          w.MaxMemoryMb,
		ExitCode:             w.ExitCode,
	}, nil
}
