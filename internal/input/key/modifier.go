package key

import "strings"

// Modifier is a modifier key mask. Bit positions follow GDK so that masks
// captured by the windowing layer can be stored without translation.
type Modifier uint32

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << 0

	// ModLock indicates Caps Lock.
	ModLock Modifier = 1 << 1

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << 2

	// ModAlt indicates the Alt key (Mod1).
	ModAlt Modifier = 1 << 3

	// ModMod2 is usually mapped to Num Lock.
	ModMod2 Modifier = 1 << 4
	ModMod3 Modifier = 1 << 5
	ModMod4 Modifier = 1 << 6
	ModMod5 Modifier = 1 << 7

	// ModSuper indicates the Super (Windows) key.
	ModSuper Modifier = 1 << 26

	// ModHyper indicates the Hyper key.
	ModHyper Modifier = 1 << 27

	// ModMeta indicates the Meta key (Cmd on macOS).
	ModMeta Modifier = 1 << 28

	// ModNumLock is the bit most platforms set while Num Lock is active.
	ModNumLock = ModMod2

	// ModMask covers every modifier this package understands.
	ModMask = ModShift | ModLock | ModCtrl | ModAlt | ModMod2 | ModMod3 |
		ModMod4 | ModMod5 | ModSuper | ModHyper | ModMeta
)

// accelOrder is the order modifiers are written in accelerator names.
var accelOrder = []struct {
	mod  Modifier
	name string
}{
	{ModShift, "Shift"},
	{ModLock, "Lock"},
	{ModCtrl, "Control"},
	{ModAlt, "Alt"},
	{ModMod2, "Mod2"},
	{ModMod3, "Mod3"},
	{ModMod4, "Mod4"},
	{ModMod5, "Mod5"},
	{ModSuper, "Super"},
	{ModHyper, "Hyper"},
	{ModMeta, "Meta"},
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Accel returns the accelerator prefix, e.g. "<Shift><Control>".
func (m Modifier) Accel() string {
	var sb strings.Builder
	for _, o := range accelOrder {
		if m.Has(o.mod) {
			sb.WriteString("<")
			sb.WriteString(o.name)
			sb.WriteString(">")
		}
	}
	return sb.String()
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.Has(ModSuper) {
		parts = append(parts, "Super")
	}
	if m.Has(ModHyper) {
		parts = append(parts, "Hyper")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	if m.Has(ModLock) {
		parts = append(parts, "Lock")
	}
	if m.Has(ModMod2) {
		parts = append(parts, "Mod2")
	}
	if m.Has(ModMod3) {
		parts = append(parts, "Mod3")
	}
	if m.Has(ModMod4) {
		parts = append(parts, "Mod4")
	}
	if m.Has(ModMod5) {
		parts = append(parts, "Mod5")
	}
	return strings.Join(parts, "+")
}

// ShortString returns a compact representation like "C-A-S-M".
func (m Modifier) ShortString() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "C")
	}
	if m.HasAlt() {
		parts = append(parts, "A")
	}
	if m.HasShift() {
		parts = append(parts, "S")
	}
	if m.HasMeta() {
		parts = append(parts, "M")
	}
	return strings.Join(parts, "-")
}

// accelModifierMap maps lower case accelerator tokens (the text between
// angle brackets) to modifiers.
var accelModifierMap = map[string]Modifier{
	"shift":   ModShift,
	"shft":    ModShift,
	"lock":    ModLock,
	"control": ModCtrl,
	"ctrl":    ModCtrl,
	"ctl":     ModCtrl,
	"primary": ModCtrl,
	"alt":     ModAlt,
	"mod1":    ModAlt,
	"mod2":    ModMod2,
	"mod3":    ModMod3,
	"mod4":    ModMod4,
	"mod5":    ModMod5,
	"super":   ModSuper,
	"hyper":   ModHyper,
	"meta":    ModMeta,
}

// modifierNameMap maps readable modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModSuper,
	"win":     ModSuper,
	"hyper":   ModHyper,
	"numlock": ModNumLock,
}

// ModifierFromName returns the Modifier for a readable name such as "Ctrl"
// or "Alt" (case-insensitive). Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

// modifierFromAccel returns the Modifier for an accelerator token such as
// "Control" or "Mod1" (case-insensitive).
func modifierFromAccel(token string) (Modifier, bool) {
	m, ok := accelModifierMap[strings.ToLower(strings.TrimSpace(token))]
	return m, ok
}
