package framework

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error taxonomy shared by the registry and the analyzer. Components wrap
// these so callers can branch with errors.Is regardless of the OS error
// underneath.
var (
	// ErrInvalidArgument rejects bad input such as an empty registry name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound reports a lookup target that does not exist. Boundaries
	// turn it into absence rather than a failure.
	ErrNotFound = errors.New("not found")

	// ErrIOFailure covers read, write and decode failures.
	ErrIOFailure = errors.New("io failure")
)

// PathError ties a failed operation to the path it touched.
type PathError struct {
	Op   string // read, write, stat, decode
	Path string
	Kind error // one of the taxonomy sentinels
	Err  error // underlying cause
}

// Error implements the error interface.
func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the cause.
func (e *PathError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewPathError classifies err for path. fs.ErrNotExist maps to ErrNotFound,
// everything else to ErrIOFailure.
func NewPathError(op, path string, err error) *PathError {
	kind := ErrIOFailure
	if errors.Is(err, fs.ErrNotExist) {
		kind = ErrNotFound
	}
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

// InvalidArgument wraps ErrInvalidArgument with a message.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
