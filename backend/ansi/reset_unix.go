//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package ansi

import (
	"os"

	"golang.org/x/sys/unix"
)

// resetTerminalMode attempts to restore the tty to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try via /dev/tty (works even if stdin redirected)
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}
	termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Iflag |= unix.ICRNL
	unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
}
