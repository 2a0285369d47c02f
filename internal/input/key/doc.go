// Package key provides the physical key model used by the keybinding registry.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: an X11/GDK keysym (named keys, keypad keys, function keys, runes)
//   - Modifier: a GDK-style modifier mask (Shift, Control, Alt, Mod2..)
//   - Binding: a comparable (Key, Modifier) pair used as a map key
//   - Event: a captured key press with a timestamp
//
// # Key Specifications
//
// Bindings are written in accelerator notation, which is also the form
// persisted to disk:
//
//   - Accelerator: "<Control>s", "<Shift>space", "<Mod1>Left", "KP_Add"
//   - Readable: "Ctrl+S", "Alt+F4", "Ctrl++"
//
// Format always produces accelerator notation, and Parse(Format(b)) == b.
package key
