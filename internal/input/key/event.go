package key

import (
	"fmt"
	"strings"
	"time"
)

// Binding is a physical key combination: a key code plus a modifier mask.
// Two bindings are equal iff both fields match, so Binding can be used as a
// map key.
type Binding struct {
	// Code identifies the key pressed.
	Code Key

	// Mods contains the modifier keys that must be held.
	Mods Modifier
}

// NewBinding creates a binding for a key and modifiers.
func NewBinding(code Key, mods Modifier) Binding {
	return Binding{Code: code, Mods: mods}
}

// IsZero returns true if no key is set.
func (b Binding) IsZero() bool {
	return b.Code == KeyNone
}

// IsBare returns true if the binding has no modifiers.
func (b Binding) IsBare() bool {
	return b.Mods == ModNone
}

// Bare returns the binding with all modifiers removed.
func (b Binding) Bare() Binding {
	return Binding{Code: b.Code}
}

// String returns the accelerator name, e.g. "<Control>s".
func (b Binding) String() string {
	return Format(b)
}

// Label returns a readable label such as "Ctrl+S" for display.
func (b Binding) Label() string {
	name := b.Code.Name()
	if r := b.Code.Rune(); r != 0 && len(name) == 1 {
		name = strings.ToUpper(name)
	}
	if b.Mods == ModNone {
		return name
	}
	return b.Mods.String() + "+" + name
}

// GoString implements fmt.GoStringer for debugging.
func (b Binding) GoString() string {
	return fmt.Sprintf("Binding{Code: %s, Mods: %s}", b.Code.String(), b.Mods.String())
}

// Event represents a single captured key press.
type Event struct {
	Binding

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(code Key, mods Modifier) Event {
	return Event{
		Binding:   Binding{Code: code, Mods: mods},
		Timestamp: time.Now(),
	}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return NewEvent(KeyFromRune(r), mods)
}

// IsModified returns true if any modifier other than the lock bits is held.
func (e Event) IsModified() bool {
	return e.Mods.Without(ModLock|ModNumLock) != ModNone
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Binding == other.Binding
}

// Matches checks if this event matches a key specification string exactly.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Binding == parsed
}

// WithModifier returns a copy with the specified modifier added.
func (e Event) WithModifier(mod Modifier) Event {
	clone := e
	clone.Mods = clone.Mods.With(mod)
	return clone
}
