package terminal

import (
	"github.com/pkg/errors"
)

// ErrClosed is returned by GetEvent once the listener has exited cleanly
// and every queued event was consumed
var ErrClosed = errors.New("terminal closed")

// DeviceError reports a failed backend operation. The tracked grid may no
// longer match the device; the caller decides whether to redraw (Sync) or abort.
type DeviceError struct {
	Op  string // size, write, read, cursor, bell, close
	Err error
}

func (e *DeviceError) Error() string {
	return "terminal " + e.Op + ": " + e.Err.Error()
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// deviceErr wraps err for op; nil stays nil
func deviceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DeviceError{Op: op, Err: err}
}

// IsDeviceError reports whether err carries a DeviceError
func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}
