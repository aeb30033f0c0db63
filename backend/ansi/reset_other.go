//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package ansi

func resetTerminalMode() {}
