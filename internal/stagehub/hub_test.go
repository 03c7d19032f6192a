package stagehub

import (
	"testing"

	"github.com/srand/tilecore/internal/completion"
	"github.com/stretchr/testify/assert"
)

type fakeScheduler struct {
	result bool
	calls  int
}

func (f *fakeScheduler) OnTaskExecutionComplete(record completion.Record) bool {
	f.calls++
	return f.result
}

func TestDispatchNoSchedulerRegistered(t *testing.T) {
	h := New()
	handled := h.Dispatch(completion.Record{PipelineStageID: "stage-0"})
	assert.False(t, handled)
}

func TestDispatchRoutesToRegisteredScheduler(t *testing.T) {
	h := New()
	sched := &fakeScheduler{result: true}
	h.Register("stage-0", sched)

	handled := h.Dispatch(completion.Record{PipelineStageID: "stage-0"})
	assert.True(t, handled)
	assert.Equal(t, 1, sched.calls)
}

func TestUnregisterStopsRouting(t *testing.T) {
	h := New()
	sched := &fakeScheduler{result: true}
	h.Register("stage-0", sched)
	h.Unregister("stage-0")

	handled := h.Dispatch(completion.Record{PipelineStageID: "stage-0"})
	assert.False(t, handled)
	assert.Equal(t, 0, sched.calls)
}
