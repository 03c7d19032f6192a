package intake

import "time"

// backoff is a single capped exponential backoff for broker reconnects,
// starting at 5s and doubling up to a 15s ceiling.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func newBackoff() *backoff {
	return &backoff{initial: 5 * time.Second, max: 15 * time.Second}
}

// Next returns the delay to wait before the next reconnect attempt and
// advances the internal state.
func (b *backoff) Next() time.Duration {
	if b.current == 0 {
		b.current = b.initial
		return b.current
	}
	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return b.current
}

// Reset returns the backoff to its initial state after a successful
// connection.
func (b *backoff) Reset() {
	b.current = 0
}
