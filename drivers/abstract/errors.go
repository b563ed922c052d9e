package abstract

import (
	"errors"
	"fmt"
	"syscall"
)

// ExitError is returned when a stream fails with an operating system error;
// the process is expected to exit with Code.
type ExitError struct {
	Code   int
	Stream string
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("stream %s failed with os error (exit code %d): %s", e.Stream, e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// SyncError carries the stream that failed with a non os error
type SyncError struct {
	Stream string
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("failed to sync stream %s: %s", e.Stream, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// osErrorCode extracts the errno of an operating system error anywhere in the chain
func osErrorCode(err error) (int, bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return 0, false
	}

	code := int(errno)
	if code == 0 {
		code = 1
	}

	return code, true
}
