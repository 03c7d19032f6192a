package tilemux

import (
	"strconv"
	"testing"
	"time"

	"github.com/srand/tilecore/pkg/inventory"
	"github.com/srand/tilecore/pkg/tilestatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestMuxInsertsNewTiles covers two brand-new tiles against an empty
// persisted table.
func TestMuxInsertsNewTiles(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []inventory.Tile{
		{RelativePath: "a/b.tif", IsComplete: false},
		{RelativePath: "c/d.tif", IsComplete: true},
	}

	plan, err := Mux(in, nil, fixedClock(now))
	require.NoError(t, err)
	require.Len(t, plan.ToInsert, 2)
	assert.Empty(t, plan.ToUpdate)
	assert.Empty(t, plan.ToDelete)

	assert.Equal(t, tilestatus.Incomplete, plan.ToInsert[0].PrevStageStatus)
	assert.Equal(t, tilestatus.Incomplete, plan.ToInsert[0].ThisStageStatus)
	assert.Equal(t, tilestatus.Complete, plan.ToInsert[1].PrevStageStatus)
	assert.Equal(t, tilestatus.Complete, plan.ToInsert[1].ThisStageStatus)
	assert.Equal(t, now, plan.ToInsert[0].CreatedAt)
	assert.Equal(t, now, plan.ToInsert[0].UpdatedAt)
}

// TestMuxUpdatesOnStatusFlip covers a tile flipping to complete.
func TestMuxUpdatesOnStatusFlip(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)

	out := []tilestatus.Row{
		{
			RelativePath:    "x/1.tif",
			PrevStageStatus: tilestatus.Incomplete,
			ThisStageStatus: tilestatus.Incomplete,
			CreatedAt:       created,
			UpdatedAt:       created,
		},
	}
	in := []inventory.Tile{
		{RelativePath: "x/1.tif", IsComplete: true},
	}

	plan, err := Mux(in, out, fixedClock(now))
	require.NoError(t, err)
	assert.Empty(t, plan.ToInsert)
	assert.Empty(t, plan.ToDelete)
	require.Len(t, plan.ToUpdate, 1)

	row := plan.ToUpdate[0]
	assert.Equal(t, tilestatus.Complete, row.PrevStageStatus)
	assert.Equal(t, tilestatus.Complete, row.ThisStageStatus)
	assert.Equal(t, now, row.UpdatedAt)
	assert.Equal(t, created, row.CreatedAt)
}

// TestMuxNoUpdateWhenUnchanged checks that a row is written only on a
// genuine insert or status change, never on a no-op tick.
func TestMuxNoUpdateWhenUnchanged(t *testing.T) {
	now := time.Now
	out := []tilestatus.Row{
		{RelativePath: "a.tif", PrevStageStatus: tilestatus.Incomplete, ThisStageStatus: tilestatus.Incomplete},
	}
	in := []inventory.Tile{
		{RelativePath: "a.tif", IsComplete: false},
	}

	plan, err := Mux(in, out, now)
	require.NoError(t, err)
	assert.Empty(t, plan.ToInsert)
	assert.Empty(t, plan.ToUpdate)
	assert.Empty(t, plan.ToDelete)
}

// TestMuxDelete exercises the delete bucket: a row absent from inventory is
// deleted.
func TestMuxDelete(t *testing.T) {
	out := []tilestatus.Row{
		{RelativePath: "gone.tif"},
	}

	plan, err := Mux(nil, out, time.Now)
	require.NoError(t, err)
	assert.Empty(t, plan.ToInsert)
	assert.Empty(t, plan.ToUpdate)
	assert.Equal(t, []string{"gone.tif"}, plan.ToDelete)
}

// TestMuxRefusesMassDeletion checks that a large mass deletion is refused
// wholesale rather than partially applied.
func TestMuxRefusesMassDeletion(t *testing.T) {
	out := make([]tilestatus.Row, 5000)
	for i := range out {
		out[i] = tilestatus.Row{RelativePath: string(rune('a' + i%26)) + "-" + strconv.Itoa(i)}
	}
	in := make([]inventory.Tile, 3500)
	for i := range in {
		in[i] = inventory.Tile{RelativePath: out[i].RelativePath}
	}

	plan, err := Mux(in, out, time.Now)
	assert.ErrorIs(t, err, ErrMassDeletion)
	assert.Nil(t, plan)
}

// TestMuxGuardThresholdBoundary checks the guard's exact boundary: a delta
// of 1000 is applied, a delta of 1001 is refused.
func TestMuxGuardThresholdBoundary(t *testing.T) {
	makeRows := func(n int) []tilestatus.Row {
		rows := make([]tilestatus.Row, n)
		for i := range rows {
			rows[i] = tilestatus.Row{RelativePath: strconv.Itoa(i)}
		}
		return rows
	}

	t.Run("delta 1000 applies", func(t *testing.T) {
		out := makeRows(1000)
		plan, err := Mux(nil, out, time.Now)
		require.NoError(t, err)
		assert.Len(t, plan.ToDelete, 1000)
	})

	t.Run("delta 1001 refused", func(t *testing.T) {
		out := makeRows(1001)
		plan, err := Mux(nil, out, time.Now)
		assert.ErrorIs(t, err, ErrMassDeletion)
		assert.Nil(t, plan)
	})
}

