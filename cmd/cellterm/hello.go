package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/event"
	"github.com/lixenwraith/cellterm/terminal"
)

func newHelloCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Print a greeting; b rings the bell, ESC exits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runApp(cmd.Context(), &helloDemo{g: g})
		},
	}
}

type helloDemo struct {
	g *globals
}

func (d *helloDemo) init(t *terminal.Terminal) {
	t.Clear()
}

func (d *helloDemo) draw(t *terminal.Terminal) {
	t.PutString(5, 3, "Hello, ")
	t.PutStringWithAttrs(12, 3, "World!", cellbuf.ColorGreen, cellbuf.ColorDefault)
}

func (d *helloDemo) handle(t *terminal.Terminal, ev event.Event) bool {
	if ev.Type != event.TypeKey {
		return true
	}
	switch {
	case ev.Key == event.KeyEsc:
		return false
	case ev.Ch == 'b':
		if err := t.Bell(); err != nil {
			d.g.logger.Warn("bell failed", "error", err)
		}
	}
	return true
}
