package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

// Operation names carried by InvalidOperation.
const (
	OpGet     = "get"
	OpSave    = "save"
	OpGetList = "getList"
	OpPing    = "ping"
)

// InvalidOperation is the single failure type returned to callers. Err wraps
// ErrInvalidArgument or ErrNotFound together with a detail message.
type InvalidOperation struct {
	Op  string
	Err error
}

func (e *InvalidOperation) Error() string {
	return fmt.Sprintf("invalid operation %s: %v", e.Op, e.Err)
}

func (e *InvalidOperation) Unwrap() error { return e.Err }

// Kind returns "invalid_argument", "not_found" or "unknown".
func (e *InvalidOperation) Kind() string {
	switch {
	case errors.Is(e.Err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(e.Err, ErrNotFound):
		return "not_found"
	default:
		return "unknown"
	}
}

// NewInvalidOperation wraps err for op. A nil err yields nil.
func NewInvalidOperation(op string, err error) error {
	if err == nil {
		return nil
	}
	return &InvalidOperation{Op: op, Err: err}
}
