package keymap

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	// ErrUnknownAction indicates a name that is not in the action catalog.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMalformedBinding indicates a key specification that cannot be parsed.
	ErrMalformedBinding = errors.New("malformed binding")

	// ErrNotBound indicates a binding that is not on the action's list.
	ErrNotBound = errors.New("binding not bound to action")

	// ErrNilAction indicates Register was called without an action.
	ErrNilAction = errors.New("nil action")

	// ErrPersist indicates the bindings could not be saved.
	ErrPersist = errors.New("saving bindings failed")
)

// OperationError describes a failed registry operation.
type OperationError struct {
	Op      string // Operation name (e.g., "register", "edit", "clear")
	Action  string // Action name, if any
	Binding string // Key specification involved, if any
	Err     error  // Underlying error
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := "keymap: " + e.Op
	if e.Action != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Action)
	}
	if e.Binding != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Binding)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func opError(op, action, binding string, err error) *OperationError {
	return &OperationError{Op: op, Action: action, Binding: binding, Err: err}
}

// malformed joins ErrMalformedBinding with the parser's cause.
func malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformedBinding, err)
}

// DecodeError indicates a persisted document that could not be decoded.
type DecodeError struct {
	Format string // "json" or "yaml"
	Path   string // Source file, if known
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("decoding %s bindings %s: %v", e.Format, e.Path, e.Err)
	}
	return fmt.Sprintf("decoding %s bindings: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
