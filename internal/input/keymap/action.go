package keymap

// Action is the behavior bound to a catalog action.
// Arguments are captured by the implementation, typically in a closure.
type Action interface {
	Invoke() error
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func() error

// Invoke calls f.
func (f ActionFunc) Invoke() error {
	return f()
}

// Do wraps a function that cannot fail.
func Do(fn func()) Action {
	return ActionFunc(func() error {
		fn()
		return nil
	})
}
