// @focus: #sys { term }
// Package terminal is the render and input facade over a character-cell device.
//
// Features:
//   - Cell grid with damage tracking; Flush writes only the damaged rectangle
//   - Width-aware string placement and clipped line primitives
//   - Input listener goroutine translating device samples into events
//   - Bounded, ordered event hand-off with two-phase shutdown
//
// Devices plug in through Backend (output) and Source (input); see the
// backend/ subpackages for ANSI, tcell, Windows console and headless devices.
// The consumer goroutine owns the grid and attribute context; only the event
// channel and the shutdown signal are shared with the listener.
package terminal
