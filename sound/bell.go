package sound

import (
	"bytes"
	"io"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
)

// queueDepth caps bells waiting to play; extra rings are dropped
const queueDepth = 4

// player runs PCM through the sink; swapped in tests
type player func(pcm []byte) error

// Bell is a terminal.Beeper that plays a synthesized tone off the caller's goroutine
type Bell struct {
	pcm    []byte
	play   player
	logger *slog.Logger

	queue chan struct{}
	done  chan struct{}

	mu     sync.Mutex
	closed bool
	played uint64
	drops  uint64
}

// NewBell renders the tone once at volume (0..1) and starts the playback worker.
// It fails with ErrNoSink when no playback command is installed.
func NewBell(volume float64, logger *slog.Logger) (*Bell, error) {
	sink, err := DetectSink()
	if err != nil {
		return nil, err
	}
	return newBell(Render(BellTone(volume, SampleRate)), sink.run, logger), nil
}

func newBell(pcm []byte, play player, logger *slog.Logger) *Bell {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &Bell{
		pcm:    pcm,
		play:   play,
		logger: logger,
		queue:  make(chan struct{}, queueDepth),
		done:   make(chan struct{}),
	}
	go b.loop()
	return b
}

// run pipes pcm into a fresh sink process and waits for it
func (s Sink) run(pcm []byte) error {
	cmd := s.command()
	cmd.Stdin = bytes.NewReader(pcm)
	return errors.Wrapf(cmd.Run(), "sound: %s", s.Name)
}

// Beep queues one ring. It never blocks; rings beyond the queue are dropped.
func (b *Bell) Beep() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errors.New("sound: bell closed")
	}
	select {
	case b.queue <- struct{}{}:
	default:
		b.drops++
	}
	return nil
}

func (b *Bell) loop() {
	defer close(b.done)
	for range b.queue {
		if err := b.play(b.pcm); err != nil {
			b.logger.Warn("bell playback failed", "error", err)
			continue
		}
		b.mu.Lock()
		b.played++
		b.mu.Unlock()
	}
}

// Stats returns rings played and dropped
func (b *Bell) Stats() (played, dropped uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.played, b.drops
}

// Close stops accepting rings and waits for queued ones to finish
func (b *Bell) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()
	<-b.done
	return nil
}
