package tilestatus

import "time"

// Row is a persisted tile-status row for one (project, stage) pair,
// extending the canonical tile with stage-tracking fields.
type Row struct {
	RelativePath string
	Index        *int
	TileName     string

	LatX, LatY, LatZ    *float64
	StepX, StepY, StepZ *float64

	PrevStageStatus Status
	ThisStageStatus Status

	Duration   time.Duration
	CpuHigh    float64
	MemoryHigh float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
