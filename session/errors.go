package session

import (
	"errors"
	"fmt"

	"github.com/rennwerk/telemetry/errs"
)

// FileError is a session-fatal failure tied to one segment file: either the
// file could not be read or its records could not be decoded. It aborts the
// whole build; later segments are never opened and no partial log survives.
//
// Whether it is an I/O or a decode fault is carried by the wrapped cause:
// errors.Is(err, errs.ErrTruncatedRecord) identifies decode failures, while
// I/O failures unwrap to the underlying *fs.PathError.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err is a session-fatal decode failure, as
// opposed to an I/O one.
func IsDecodeError(err error) bool {
	return errors.Is(err, errs.ErrTruncatedRecord) || errors.Is(err, errs.ErrUnknownVersion)
}
