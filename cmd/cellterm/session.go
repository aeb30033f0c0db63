package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cellterm/backend/headless"
	"github.com/lixenwraith/cellterm/backend/tcellscreen"
	"github.com/lixenwraith/cellterm/config"
	"github.com/lixenwraith/cellterm/event"
	"github.com/lixenwraith/cellterm/sound"
	"github.com/lixenwraith/cellterm/terminal"
)

// headlessWidth and headlessHeight size the in-memory backend
const (
	headlessWidth  = 80
	headlessHeight = 24
)

// device is what every backend offers: output, input and release
type device interface {
	terminal.Backend
	terminal.Source
	io.Closer
}

// session is one open terminal plus the resources tied to it
type session struct {
	term   *terminal.Terminal
	dev    device
	bell   *sound.Bell
	logger *slog.Logger
}

// openDevice picks the backend named by cfg; platform backends live in open_*.go
func openDevice(cfg *config.Config) (device, error) {
	switch cfg.Backend {
	case config.BackendHeadless:
		return headless.New(headlessWidth, headlessHeight), nil
	case config.BackendTcell:
		return tcellscreen.Open(cfg.Mouse)
	}
	return openPlatform(cfg)
}

func openSession(cfg *config.Config, logger *slog.Logger) (*session, error) {
	dev, err := openDevice(cfg)
	if err != nil {
		return nil, err
	}
	s := &session{dev: dev, logger: logger}

	opts, err := cfg.Options()
	if err != nil {
		dev.Close()
		return nil, err
	}
	opts = append(opts, terminal.WithLogger(logger))

	switch cfg.Bell {
	case config.BellNone:
		opts = append(opts, terminal.WithBell(silentBell{}))
	case config.BellAudio:
		bell, err := sound.NewBell(cfg.BellVolume, logger)
		if err != nil {
			logger.Warn("audio bell unavailable, using device bell", "error", err)
			break
		}
		s.bell = bell
		opts = append(opts, terminal.WithBell(bell))
	}

	term, err := terminal.New(dev, dev, opts...)
	if err != nil {
		s.closeBell()
		dev.Close()
		return nil, err
	}
	s.term = term
	return s, nil
}

// silentBell swallows rings when the bell is off
type silentBell struct{}

func (silentBell) Beep() error { return nil }

func (s *session) closeBell() {
	if s.bell != nil {
		s.bell.Close()
	}
}

// close shuts the terminal down and dumps the final screen for the headless backend
func (s *session) close(out io.Writer) error {
	err := s.term.Close()
	s.closeBell()
	if hd, ok := s.dev.(*headless.Device); ok {
		_, h, _ := hd.Size()
		for y := 0; y < int(h); y++ {
			fmt.Fprintln(out, strings.TrimRight(hd.Line(y), " "))
		}
	}
	return err
}

// app is a demo driven by run
type app interface {
	// init runs once before the first frame
	init(t *terminal.Terminal)
	draw(t *terminal.Terminal)
	// handle reacts to one event; false ends the demo
	handle(t *terminal.Terminal, ev event.Event) bool
}

// run draws, flushes and dispatches events until the app quits, ctx ends or
// the device fails
func run(ctx context.Context, t *terminal.Terminal, a app, logger *slog.Logger) error {
	a.init(t)
	for {
		a.draw(t)
		if err := t.Flush(); err != nil {
			return err
		}

		ev, err := t.GetEvent(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, terminal.ErrClosed) {
				return nil
			}
			return err
		}
		logger.Debug("event", "event", ev.String())

		if ev.Type == event.TypeResize {
			t.Resize(int(ev.Width), int(ev.Height))
		}
		if !a.handle(t, ev) {
			return nil
		}
	}
}

// runApp opens a session for the command, runs a to completion and closes it
func (g *globals) runApp(ctx context.Context, a app) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	s, err := openSession(g.cfg, g.logger)
	if err != nil {
		return err
	}
	runErr := run(ctx, s.term, a, g.logger)
	closeErr := s.close(os.Stdout)
	if runErr != nil {
		g.logger.Error("demo failed", "error", runErr)
		return runErr
	}
	return closeErr
}
