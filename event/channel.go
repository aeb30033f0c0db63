package event

import "context"

// DefaultCapacity is the queue depth used when none is configured
const DefaultCapacity = 100

// Channel is a bounded, ordered hand-off from the input listener to the consumer.
// Overflow policy: Send blocks until there is room or ctx is done; nothing is dropped.
type Channel struct {
	ch chan Event
}

// NewChannel creates a channel holding up to capacity pending events
func NewChannel(capacity int) *Channel {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Channel{ch: make(chan Event, capacity)}
}

// Send enqueues ev, blocking while the channel is full.
// Returns ctx.Err() if ctx is done first; ev is then not enqueued.
func (c *Channel) Send(ctx context.Context, ev Event) error {
	// Prefer enqueue when there is room even if ctx is already done
	select {
	case c.ch <- ev:
		return nil
	default:
	}

	select {
	case c.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend enqueues ev only if there is room
func (c *Channel) TrySend(ev Event) bool {
	select {
	case c.ch <- ev:
		return true
	default:
		return false
	}
}

// TryRecv returns the oldest pending event without blocking
func (c *Channel) TryRecv() (Event, bool) {
	select {
	case ev := <-c.ch:
		return ev, true
	default:
		return None, false
	}
}

// Recv blocks until an event arrives or ctx is done
func (c *Channel) Recv(ctx context.Context) (Event, error) {
	select {
	case ev := <-c.ch:
		return ev, nil
	case <-ctx.Done():
		return None, ctx.Err()
	}
}

// C exposes the receive side for select loops
func (c *Channel) C() <-chan Event {
	return c.ch
}

// Len returns the number of pending events
func (c *Channel) Len() int {
	return len(c.ch)
}

// Cap returns the channel capacity
func (c *Channel) Cap() int {
	return cap(c.ch)
}
