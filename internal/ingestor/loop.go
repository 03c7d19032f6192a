// Package ingestor drives the project input ingestor ("stage zero"): one
// periodic loop per project running C1 through C4 and applying the
// resulting plan to the persisted tile-status table.
package ingestor

import (
	"context"
	"time"

	"github.com/spf13/afero"
	"github.com/srand/tilecore/internal/controlplane"
	"github.com/srand/tilecore/internal/project"
	"github.com/srand/tilecore/pkg/inventory"
	"github.com/srand/tilecore/pkg/log"
	"github.com/srand/tilecore/pkg/pathmap"
	"github.com/srand/tilecore/pkg/tilemux"
	"github.com/srand/tilecore/pkg/tilestatus"
)

// Loop drives a single project's ingestor ticks. Ticks never overlap; an
// exit request is either ctx cancellation or the project's ExitRequested
// flag, both observed only at tick boundaries.
type Loop struct {
	project *project.Project
	mapper  *pathmap.Mapper
	reader  *inventory.Reader
	writer  *inventory.Writer
	store   tilestatus.Store
	control controlplane.Client

	interval time.Duration
	now      func() time.Time
	log      *log.ComponentLogger
}

// Config collects Loop's collaborators, grounded on the teacher's
// constructor-injection idiom (no ambient globals).
type Config struct {
	Project  *project.Project
	Mapper   *pathmap.Mapper
	Fs       afero.Fs
	Store    tilestatus.Store
	Control  controlplane.Client
	Interval time.Duration
}

// NewLoop creates a Loop for one project.
func NewLoop(cfg Config) *Loop {
	return &Loop{
		project:  cfg.Project,
		mapper:   cfg.Mapper,
		reader:   inventory.NewReader(cfg.Fs),
		writer:   inventory.NewWriter(cfg.Fs),
		store:    cfg.Store,
		control:  cfg.Control,
		interval: cfg.Interval,
		now:      time.Now,
		log:      log.Component("ingestor." + cfg.Project.ID),
	}
}

// Run ticks until ctx is cancelled or the project's ExitRequested flag is
// set. Both are observed only between ticks, so an in-flight tick always
// completes to a consistent point before Run returns.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if l.project.ExitRequested {
				return
			}
			l.tick(ctx)
		}
	}
}

// tick reads the inventory, publishes the classified state, mux's it
// against the persisted table, applies the resulting plan, and writes a
// fresh recovery snapshot.
func (l *Loop) tick(ctx context.Context) {
	root := l.mapper.Map(l.project.Root)

	inv, state, err := l.reader.Read(root)
	l.project.InputSourceState = state
	if cpErr := l.control.UpdateProject(ctx, l.project.ID, state); cpErr != nil {
		l.log.Warnf("failed to publish project state: %v", cpErr)
	}
	if err != nil {
		l.log.Warnf("failed to parse inventory: %v", err)
		return
	}
	if state == project.BadLocation || state == project.Missing {
		return
	}

	// Extents, when present, are applied to the in-memory project ahead of
	// tile processing; persisting them is the control plane's own concern
	// and outside tilestatus.Store's keyed-table interface.
	if inv.Extents != nil {
		l.project.Extents.X = project.Extent{Minimum: inv.Extents.MinimumX, Maximum: inv.Extents.MaximumX}
		l.project.Extents.Y = project.Extent{Minimum: inv.Extents.MinimumY, Maximum: inv.Extents.MaximumY}
		l.project.Extents.Z = project.Extent{Minimum: inv.Extents.MinimumZ, Maximum: inv.Extents.MaximumZ}
	}

	persisted, err := l.store.List(ctx, l.project.ID)
	if err != nil {
		l.log.Errorf("failed to list persisted tile status: %v", err)
		return
	}

	plan, err := tilemux.Mux(inv.Tiles, persisted, l.now)
	if err != nil {
		l.log.Warnf("skipping tick: %v", err)
		return
	}

	if err := l.applyPlan(ctx, plan); err != nil {
		l.log.Errorf("failed to apply plan: %v", err)
		return
	}

	if err := l.writer.Write(root, inv.Tiles); err != nil {
		l.log.Errorf("failed to write snapshot: %v", err)
	}
}

// applyPlan applies insert, update, then delete buckets, each its own store
// call: a failure mid-bucket leaves buckets already committed untouched,
// and the remainder retried next tick.
func (l *Loop) applyPlan(ctx context.Context, plan *tilemux.Plan) error {
	if len(plan.ToInsert) > 0 {
		if err := l.store.InsertBatch(ctx, l.project.ID, plan.ToInsert); err != nil {
			return err
		}
	}
	if len(plan.ToUpdate) > 0 {
		if err := l.store.UpdateBatch(ctx, l.project.ID, plan.ToUpdate); err != nil {
			return err
		}
	}
	if len(plan.ToDelete) > 0 {
		if err := l.store.DeleteBatch(ctx, l.project.ID, plan.ToDelete); err != nil {
			return err
		}
	}
	return nil
}
