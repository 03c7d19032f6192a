package intake

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srand/tilecore/internal/completion"
	"github.com/srand/tilecore/internal/metrics"
	"github.com/srand/tilecore/internal/stagehub"
	"github.com/srand/tilecore/pkg/log"
)

// dispatchRetryInterval is how long Dispatch waits between hub calls that
// did not handle the record (no stage scheduler registered, or the
// registered one returned false).
const dispatchRetryInterval = 10 * time.Second

// Dispatcher is the completion dispatcher (C7): it hands a completion
// record to the metrics sink and then the scheduler hub, retrying the hub
// call until it is handled or ctx is cancelled.
type Dispatcher struct {
	sink          metrics.Sink
	hub           *stagehub.Hub
	retryInterval time.Duration
	log           *log.ComponentLogger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(sink metrics.Sink, hub *stagehub.Hub) *Dispatcher {
	return &Dispatcher{
		sink:          sink,
		hub:           hub,
		retryInterval: dispatchRetryInterval,
		log:           log.Component("intake.dispatcher"),
	}
}

// Dispatch writes the record to the metrics sink, then hands it to the
// scheduler hub, retrying the hub call until it is handled. It returns true
// once the hub has confirmed handling; it returns false if the metrics
// write failed or if ctx was cancelled mid-retry, so a dying consumer
// releases its message back to the broker.
//
// Dispatcher operations must be idempotent at the granularity of (record
// id, stage id); this only holds if the injected Sink and StageScheduler
// implementations are themselves idempotent under redelivery.
func (d *Dispatcher) Dispatch(ctx context.Context, record completion.Record) bool {
	// attemptID correlates this dispatch's retry loop across log lines; it
	// is not persisted and has no bearing on (record id, stage id)
	// idempotency.
	attemptID := uuid.NewString()

	if err := d.sink.WriteTaskExecution(ctx, record); err != nil {
		d.log.Errorf("[%s] metrics sink write failed for record %s: %v", attemptID, record.ID, err)
		return false
	}

	for {
		if d.hub.Dispatch(record) {
			return true
		}

		d.log.Debugf("[%s] stage %s did not handle record, retrying in %s", attemptID, record.PipelineStageID, d.retryInterval)

		select {
		case <-time.After(d.retryInterval):
		case <-ctx.Done():
			return false
		}
	}
}
