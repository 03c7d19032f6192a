package intake

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/srand/tilecore/internal/completion"
	"github.com/srand/tilecore/pkg/log"
	"github.com/srand/tilecore/pkg/utils"
)

const (
	queueName = "TaskExecutionUpdateQueue"
	prefetch  = 50

	// maxRedeliveries bounds how many times a message that fails to
	// decode is redelivered before it is nacked without requeue, routing
	// it to the broker's dead-letter exchange.
	maxRedeliveries = 5
)

// Consumer is the queue consumer (C6): a single durable-queue consuming
// goroutine that fans work out through a worker pool bounded to the
// broker's prefetch window.
type Consumer struct {
	url        string
	dispatcher *Dispatcher
	backoff    *backoff
	log        *log.ComponentLogger
}

// NewConsumer creates a Consumer that dials url on Run.
func NewConsumer(url string, dispatcher *Dispatcher) *Consumer {
	return &Consumer{
		url:        url,
		dispatcher: dispatcher,
		backoff:    newBackoff(),
		log:        log.Component("intake.consumer"),
	}
}

// Run connects, declares the queue, and consumes until ctx is cancelled,
// reconnecting on failure with the configured backoff policy.
func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		if err := c.runOnce(ctx); err != nil {
			c.log.Errorf("connection lost: %v", err)
		} else {
			return
		}

		wait := c.backoff.Next()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return
		}
	}
}

// runOnce owns one connection's lifetime: connect, declare, consume until
// the connection drops or ctx is cancelled. A nil return means ctx was
// cancelled cleanly; a non-nil return means the connection was lost and
// Run should reconnect.
func (c *Consumer) runOnce(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	c.backoff.Reset()
	c.log.Infof("connected, consuming from %s with prefetch=%d", queueName, prefetch)

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	pool := utils.NewWorkerPoolSize(prefetch)
	pool.Start()
	defer func() {
		pool.Stop()
		pool.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case amqpErr, ok := <-closed:
			if !ok {
				return fmt.Errorf("connection closed")
			}
			return amqpErr

		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			d := delivery
			pool.SubmitOrRun(func() { c.handle(ctx, d) })
		}
	}
}

// handle decodes and dispatches one delivery, acknowledging it only after
// the dispatcher signals success.
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	record, err := completion.Decode(d.Body)
	if err != nil {
		c.log.Warnf("failed to decode completion record: %v", err)
		c.rejectPoison(d)
		return
	}

	if c.dispatcher.Dispatch(ctx, record) {
		if err := d.Ack(false); err != nil {
			c.log.Errorf("failed to ack delivery: %v", err)
		}
	}
	// Otherwise the metrics write failed or the dispatcher was interrupted
	// by ctx cancellation; the delivery is left unacknowledged so the
	// broker redelivers it.
}

// rejectPoison nacks with requeue while the x-death count is below the
// threshold, and without requeue once it is reached so the broker's
// dead-letter exchange takes over.
func (c *Consumer) rejectPoison(d amqp.Delivery) {
	if deathCount(d) >= maxRedeliveries {
		if err := d.Nack(false, false); err != nil {
			c.log.Errorf("failed to nack poison delivery: %v", err)
		}
		return
	}
	if err := d.Nack(false, true); err != nil {
		c.log.Errorf("failed to nack delivery: %v", err)
	}
}

// deathCount reads the AMQP x-death header's redelivery count, defaulting
// to 0 when absent.
func deathCount(d amqp.Delivery) int64 {
	raw, ok := d.Headers["x-death"]
	if !ok {
		return 0
	}
	entries, ok := raw.([]interface{})
	if !ok || len(entries) == 0 {
		return 0
	}
	entry, ok := entries[0].(amqp.Table)
	if !ok {
		return 0
	}
	count, ok := entry["count"].(int64)
	if !ok {
		return 0
	}
	return count
}
