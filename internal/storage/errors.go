package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a lookup with no matching record.
type NotFoundError struct {
	Resource   string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Identifier)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Error wraps a backend failure with the attempted operation.
type Error struct {
	Op    string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Wrap returns nil when err is nil and otherwise an *Error for op. Not
// found errors pass through unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return err
	}
	return &Error{Op: op, Cause: err}
}

// ResumeNotFound is the not found error for a résumé lookup.
func ResumeNotFound(identifier string) *NotFoundError {
	return &NotFoundError{Resource: "resume", Identifier: identifier}
}
