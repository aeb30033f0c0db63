// @focus: #sys { io } #input { listener }
package terminal

import (
	"context"
	"log/slog"
	"time"

	"github.com/lixenwraith/cellterm/event"
	"github.com/lixenwraith/cellterm/input"
)

// listener owns the Source and the Translator; it runs on its own goroutine
type listener struct {
	src     Source
	tr      *input.Translator
	events  *event.Channel
	timeout time.Duration
	logger  *slog.Logger
}

// run polls until ctx is cancelled or the source fails.
// Returns ctx.Err() on shutdown, a *DeviceError on source failure.
func (l *listener) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s, ok, err := l.src.Poll(l.timeout)
		if err != nil {
			l.logger.Error("input source failed", "error", err)
			return deviceErr("read", err)
		}
		if !ok {
			continue
		}

		ev, ok := l.tr.Translate(s)
		if !ok {
			continue
		}

		// Blocks while the consumer lags; shutdown still wins
		if err := l.events.Send(ctx, ev); err != nil {
			return err
		}
	}
}

// ===== CONSUMER SIDE =====

// PeekEvent returns the next event without blocking.
// Posted events are delivered before device events.
func (t *Terminal) PeekEvent() (event.Event, bool) {
	select {
	case ev := <-t.synthetic:
		return ev, true
	default:
	}
	return t.events.TryRecv()
}

// GetEvent blocks until an event arrives or ctx is done. Once the listener
// has exited, queued events are still delivered; after that GetEvent returns
// the listener's device error, or ErrClosed after a clean stop.
func (t *Terminal) GetEvent(ctx context.Context) (event.Event, error) {
	if ev, ok := t.PeekEvent(); ok {
		return ev, nil
	}

	select {
	case ev := <-t.synthetic:
		return ev, nil
	case ev := <-t.events.C():
		return ev, nil
	case <-t.done:
		if ev, ok := t.PeekEvent(); ok {
			return ev, nil
		}
		return event.None, t.listenerErr()
	case <-ctx.Done():
		return event.None, ctx.Err()
	}
}

// PostEvent injects a synthetic event for the consumer.
// Never blocks; returns false if the synthetic queue is full.
func (t *Terminal) PostEvent(ev event.Event) bool {
	select {
	case t.synthetic <- ev:
		return true
	default:
		t.logger.Debug("synthetic event dropped", "event", ev.String())
		return false
	}
}

// Pending returns the number of queued events, posted ones included
func (t *Terminal) Pending() int {
	return t.events.Len() + len(t.synthetic)
}

// Done is closed once the listener has exited
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

// listenerErr maps the listener's exit error for GetEvent; call after done
func (t *Terminal) listenerErr() error {
	if IsDeviceError(t.exitErr) {
		return t.exitErr
	}
	return ErrClosed
}
