package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/srand/tilecore/internal/completion"
	"github.com/srand/tilecore/internal/stagehub"
	"github.com/stretchr/testify/assert"
)

type fakeSink struct {
	writes int
	err    error
}

func (f *fakeSink) WriteTaskExecution(ctx context.Context, record completion.Record) error {
	f.writes++
	return f.err
}

type flakyScheduler struct {
	results []bool
	calls   int
}

func (f *flakyScheduler) OnTaskExecutionComplete(record completion.Record) bool {
	result := f.results[f.calls]
	f.calls++
	return result
}

// TestDispatchRetriesUntilHandled checks that the hub returning false twice
// and true on the third try yields a true result after exactly one metrics
// write and three hub calls.
func TestDispatchRetriesUntilHandled(t *testing.T) {
	sink := &fakeSink{}
	hub := stagehub.New()
	sched := &flakyScheduler{results: []bool{false, false, true}}
	hub.Register("stage-0", sched)

	d := NewDispatcher(sink, hub)
	d.retryInterval = time.Millisecond

	handled := d.Dispatch(context.Background(), completion.Record{PipelineStageID: "stage-0"})
	assert.True(t, handled)
	assert.Equal(t, 1, sink.writes)
	assert.Equal(t, 3, sched.calls)
}

// TestDispatchInterruptedByCancellation checks that a record whose
// processing never succeeds is never signalled as handled.
func TestDispatchInterruptedByCancellation(t *testing.T) {
	sink := &fakeSink{}
	hub := stagehub.New()
	// no scheduler registered: hub.Dispatch always returns false.

	d := NewDispatcher(sink, hub)
	d.retryInterval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	handled := d.Dispatch(ctx, completion.Record{PipelineStageID: "stage-0"})
	assert.False(t, handled)
	assert.Equal(t, 1, sink.writes)
}

func TestDispatchMetricsSinkFailurePropagates(t *testing.T) {
	sink := &fakeSink{err: errors.New("write failed")}
	hub := stagehub.New()
	sched := &flakyScheduler{results: []bool{true}}
	hub.Register("stage-0", sched)

	d := NewDispatcher(sink, hub)
	handled := d.Dispatch(context.Background(), completion.Record{PipelineStageID: "stage-0"})
	assert.False(t, handled)
	assert.Equal(t, 0, sched.calls)
}
