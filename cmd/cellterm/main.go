package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/cellterm/backend/ansi"
)

func main() {
	// Panic Recovery: the tty may still be raw when a demo crashes
	defer func() {
		if r := recover(); r != nil {
			ansi.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCELLTERM CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd(&globals{}).Execute(); err != nil {
		os.Exit(1)
	}
}
