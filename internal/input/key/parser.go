package key

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses a key specification string into a Binding.
//
// Supported formats:
//   - Accelerator: "<Control>s", "<Control><Shift>KP_Add", "<Mod1>Left"
//   - Readable: "Ctrl+S", "Alt+F4", "Ctrl++"
//   - Single key: "a", "plus", "Page_Up", "F5"
//
// Letters are folded to lower case, so "<Control>S" and "<Control>s" are
// the same binding.
func Parse(spec string) (Binding, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Binding{}, ErrEmptySpec
	}

	// "<" on its own is the less-than key
	if strings.HasPrefix(spec, "<") && spec != "<" {
		return parseAccelerator(spec)
	}

	if k := parseKeyName(spec); k != KeyNone {
		return Binding{Code: k}, nil
	}

	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return Binding{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, spec)
}

// parseAccelerator parses GTK notation: zero or more <Modifier> tokens
// followed by a key name.
func parseAccelerator(spec string) (Binding, error) {
	var mods Modifier
	rest := spec

	for strings.HasPrefix(rest, "<") && rest != "<" {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return Binding{}, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
		}
		token := rest[1:end]
		mod, ok := modifierFromAccel(token)
		if !ok {
			return Binding{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, token, spec)
		}
		mods = mods.With(mod)
		rest = rest[end+1:]
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Binding{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	if strings.ContainsRune(rest, '>') && len([]rune(rest)) > 1 {
		return Binding{}, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
	}

	k := parseKeyName(rest)
	if k == KeyNone {
		return Binding{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, rest, spec)
	}
	return Binding{Code: k, Mods: mods}, nil
}

// parseModifierStyle parses "Ctrl+S" style notation.
func parseModifierStyle(spec string) (Binding, error) {
	var modPart, keyPart string
	if strings.HasSuffix(spec, "++") {
		// "Ctrl++" binds the plus key
		modPart = spec[:len(spec)-2]
		keyPart = "+"
	} else {
		i := strings.LastIndexByte(spec, '+')
		modPart = spec[:i]
		keyPart = strings.TrimSpace(spec[i+1:])
	}

	if keyPart == "" {
		return Binding{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}

	var mods Modifier
	for _, p := range strings.Split(modPart, "+") {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Binding{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods = mods.With(mod)
	}

	k := parseKeyName(keyPart)
	if k == KeyNone {
		return Binding{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, keyPart, spec)
	}
	return Binding{Code: k, Mods: mods}, nil
}

// parseKeyName resolves a key name, accepting the raw "0x...." form that
// Key.Name produces for unnamed keysyms.
func parseKeyName(name string) Key {
	if k := KeyFromName(name); k != KeyNone {
		return k.ToLower()
	}
	if len(name) > 2 && (strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X")) {
		if v, err := strconv.ParseUint(name[2:], 16, 32); err == nil && v != 0 {
			return Key(v)
		}
	}
	return KeyNone
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Binding {
	b, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return b
}

// Format returns the canonical accelerator text for a binding.
// The result parses back to the same binding.
func Format(b Binding) string {
	if b.Code == KeyNone {
		return ""
	}
	return b.Mods.Accel() + b.Code.Name()
}

// Normalize parses and re-formats a key specification to its canonical form.
func Normalize(spec string) (string, error) {
	b, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return Format(b), nil
}
