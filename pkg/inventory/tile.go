// Package inventory parses the tile-inventory document a project exposes on
// disk and writes back the core's own canonical snapshot of it.
package inventory

import (
	"encoding/json"
	"path"

	"github.com/srand/tilecore/pkg/tilestatus"
)

// Tile is the canonical, parsed representation of one inventory entry,
// independent of which on-disk format it was read from.
type Tile struct {
	RelativePath string
	Index        *int
	TileName     string

	LatX *float64
	LatY *float64
	LatZ *float64

	StepX *float64
	StepY *float64
	StepZ *float64

	IsComplete bool
}

// wireTile is the on-disk snapshot record: both stage-zero status fields are
// derived from IsComplete (stage zero only ever reports Incomplete or
// Complete) so the snapshot carries the same shape as a tile-status row.
type wireTile struct {
	RelativePath    string            `json:"relative_path"`
	Index           *int              `json:"index"`
	TileName        string            `json:"tile_name"`
	PrevStageStatus tilestatus.Status `json:"prev_stage_status"`
	ThisStageStatus tilestatus.Status `json:"this_stage_status"`

	LatX *float64 `json:"lat_x"`
	LatY *float64 `json:"lat_y"`
	LatZ *float64 `json:"lat_z"`

	StepX *float64 `json:"step_x"`
	StepY *float64 `json:"step_y"`
	StepZ *float64 `json:"step_z"`
}

// MarshalJSON writes the snapshot record shape, including the two status
// fields computed from IsComplete.
func (t Tile) MarshalJSON() ([]byte, error) {
	status := tilestatus.StatusFromComplete(t.IsComplete)
	return json.Marshal(wireTile{
		RelativePath:    t.RelativePath,
		Index:           t.Index,
		TileName:        t.TileName,
		PrevStageStatus: status,
		ThisStageStatus: status,
		LatX:            t.LatX,
		LatY:            t.LatY,
		LatZ:            t.LatZ,
		StepX:           t.StepX,
		StepY:           t.StepY,
		StepZ:           t.StepZ,
	})
}

// UnmarshalJSON recovers IsComplete from this_stage_status, so a snapshot
// written by Write round-trips cleanly through Read.
func (t *Tile) UnmarshalJSON(data []byte) error {
	var w wireTile
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	t.RelativePath = w.RelativePath
	t.Index = w.Index
	t.TileName = w.TileName
	t.LatX, t.LatY, t.LatZ = w.LatX, w.LatY, w.LatZ
	t.StepX, t.StepY, t.StepZ = w.StepX, w.StepY, w.StepZ
	t.IsComplete = w.ThisStageStatus == tilestatus.Complete
	return nil
}

// normalize applies path normalization in place: backslashes become forward
// slashes, and TileName is derived from the normalized RelativePath.
func (t *Tile) normalize() {
	norm := make([]byte, len(t.RelativePath))
	for i := 0; i < len(t.RelativePath); i++ {
		if t.RelativePath[i] == '\\' {
			norm[i] = '/'
		} else {
			norm[i] = t.RelativePath[i]
		}
	}
	t.RelativePath = string(norm)
	t.TileName = path.Base(t.RelativePath)
}

// Extents is a project's sample-extent rectangle, as carried by either
// inventory format's optional extents block.
type Extents struct {
	MinimumX float64
	MaximumX float64
	MinimumY float64
	MaximumY float64
	MinimumZ float64
	MaximumZ float64
}

// Inventory is the tagged-union result of a parse: either format yields the
// same shape once normalized.
type Inventory struct {
	Extents *Extents
	Tiles   []Tile
}
