package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/cellterm/cellbuf"
	"github.com/lixenwraith/cellterm/event"
	"github.com/lixenwraith/cellterm/terminal"
	"github.com/lixenwraith/cellterm/tui"
)

func newEventsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Show translated input events; Ctrl+C exits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runApp(cmd.Context(), &eventsView{})
		},
	}
}

// eventsView lists the most recent events below a title, newest last
type eventsView struct {
	log   []string
	count int
}

func (v *eventsView) init(t *terminal.Terminal) {
	t.Clear()
}

// capacity is how many log rows fit inside the framed pane
func (v *eventsView) capacity(t *terminal.Terminal) int {
	_, h := t.Size()
	return max(h-4, 0)
}

func (v *eventsView) draw(t *terminal.Terminal) {
	t.Clear()
	screen := tui.Screen(t)

	title := screen.Sub(0, 0, screen.W, 1)
	title.Fill(cellbuf.ColorBlue)
	title.Text(1, 0, "Input events - Ctrl+C to quit", cellbuf.ColorWhite|cellbuf.AttrBold, cellbuf.ColorBlue)

	pane := screen.Sub(0, 1, screen.W, screen.H-2).Card("events", tui.LineSingle, cellbuf.ColorCyan, cellbuf.ColorDefault)
	for i, line := range v.log {
		pane.Text(0, i, line, cellbuf.ColorDefault, cellbuf.ColorDefault)
	}

	status := fmt.Sprintf("size %dx%d  events %d", screen.W, screen.H, v.count)
	screen.Text(1, screen.H-1, status, cellbuf.ColorCyan, cellbuf.ColorDefault)
}

func (v *eventsView) handle(t *terminal.Terminal, ev event.Event) bool {
	if ev.Type == event.TypeKey && ev.Key == event.KeyCtrlC {
		return false
	}
	v.count++
	v.log = append(v.log, fmt.Sprintf("%4d  %s", v.count, ev.String()))
	if n := v.capacity(t); len(v.log) > n {
		v.log = v.log[len(v.log)-n:]
	}
	return true
}
