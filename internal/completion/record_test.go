package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	payload := `{
		"id": "rec-1",
		"worker_id": "worker-9",
		"tile_id": "a/b.tif",
		"pipeline_stage_id": "stage-0",
		"execution_status_code": 0,
		"completion_status_code": 1,
		"submitted_at": "2026-01-01T00:00:00Z",
		"started_at": "2026-01-01T00:00:01Z",
		"completed_at": "2026-01-01T00:00:05Z",
		"cpu_time_seconds": 3.5,
		"max_cpu_percent": 88.2,
		"max_memory_mb": 512,
		"exit_code": 0
	}`

	rec, err := Decode([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, "stage-0", rec.PipelineStageID)
	assert.Equal(t, 3.5, rec.CpuTimeSeconds)
	assert.True(t, rec.CompletedAt.After(rec.StartedAt))
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}
