// Package tilemux diffs a freshly parsed tile inventory against the
// persisted tile-status table and produces an insert/update/delete plan.
package tilemux

import (
	"errors"
	"time"

	"github.com/srand/tilecore/pkg/inventory"
	"github.com/srand/tilecore/pkg/tilestatus"
)

// ErrMassDeletion is returned when the mass-deletion guard trips. Callers
// must treat this as "no plan produced, persistence untouched".
var ErrMassDeletion = errors.New("tilemux: mass-deletion guard tripped")

// massDeletionThreshold bounds how far the persisted table can shrink in a
// single tick: a delta of 1000 is applied, 1001 is refused.
const massDeletionThreshold = 1000

// Plan is the ordered set of mutations to apply to the persisted
// tile-status table.
type Plan struct {
	ToInsert []tilestatus.Row
	ToUpdate []tilestatus.Row
	ToDelete []string

	// ToReset is reserved for cross-stage reset cascades invoked by
	// surrounding (out-of-scope) code; stage zero never populates it.
	ToReset []string
}

// Mux is a pure function of its inputs and an injected clock: it never
// touches storage. in is the freshly parsed canonical tile vector; out is
// the currently persisted stage-zero tile vector.
func Mux(in []inventory.Tile, out []tilestatus.Row, now func() time.Time) (*Plan, error) {
	if len(out)-len(in) > massDeletionThreshold {
		return nil, ErrMassDeletion
	}

	outByPath := make(map[string]tilestatus.Row, len(out))
	for _, o := range out {
		outByPath[o.RelativePath] = o
	}

	plan := &Plan{}
	when := now()

	for _, i := range in {
		o, existing := outByPath[i.RelativePath]
		if !existing {
			plan.ToInsert = append(plan.ToInsert, insertRow(i, when))
			continue
		}

		thisStatus := tilestatus.StatusFromComplete(i.IsComplete)

		// Asymmetric by design: compares the *old* prev_stage_status
		// against the *new* this_stage_status.
		if o.PrevStageStatus != thisStatus {
			plan.ToUpdate = append(plan.ToUpdate, mergeRow(o, i, thisStatus, when))
		}
	}

	inByPath := make(map[string]struct{}, len(in))
	for _, i := range in {
		inByPath[i.RelativePath] = struct{}{}
	}

	for _, o := range out {
		if _, present := inByPath[o.RelativePath]; !present {
			plan.ToDelete = append(plan.ToDelete, o.RelativePath)
		}
	}

	return plan, nil
}

func insertRow(i inventory.Tile, when time.Time) tilestatus.Row {
	status := tilestatus.StatusFromComplete(i.IsComplete)
	return tilestatus.Row{
		RelativePath:    i.RelativePath,
		Index:           i.Index,
		TileName:        i.TileName,
		LatX:            i.LatX,
		LatY:            i.LatY,
		LatZ:            i.LatZ,
		StepX:           i.StepX,
		StepY:           i.StepY,
		StepZ:           i.StepZ,
		PrevStageStatus: status,
		ThisStageStatus: status,
		Duration:        0,
		CpuHigh:         0,
		MemoryHigh:      0,
		CreatedAt:       when,
		UpdatedAt:       when,
	}
}

// mergeRow applies the overwrite rule: tile_name, index, prev_stage_status,
// this_stage_status, and lattice position/step all come from i (both status
// fields take i's freshly computed status, exactly as on insert),
// updated_at advances, created_at and everything else carry over from o.
func mergeRow(o tilestatus.Row, i inventory.Tile, thisStatus tilestatus.Status, when time.Time) tilestatus.Row {
	o.TileName = i.TileName
	o.Index = i.Index
	o.PrevStageStatus = thisStatus
	o.ThisStageStatus = thisStatus
	o.LatX, o.LatY, o.LatZ = i.LatX, i.LatY, i.LatZ
	o.StepX, o.StepY, o.StepZ = i.StepX, i.StepY, i.StepZ
	o.UpdatedAt = when
	return o
}
