package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Key identifies a keyboard key by its X11/GDK keysym value.
//
// Printable Latin-1 characters use their code point ('a' is 0x61). Other
// Unicode characters use the X11 convention 0x01000000 | rune.
type Key uint32

const (
	// KeyNone represents no key.
	KeyNone Key = 0

	KeySpace Key = 0x0020

	// Special keys
	KeyBackSpace  Key = 0xff08
	KeyTab        Key = 0xff09
	KeyReturn     Key = 0xff0d
	KeyPause      Key = 0xff13
	KeyScrollLock Key = 0xff14
	KeyEscape     Key = 0xff1b
	KeyDelete     Key = 0xffff
	KeyInsert     Key = 0xff63
	KeyMenu       Key = 0xff67
	KeyPrint      Key = 0xff61
	KeyNumLock    Key = 0xff7f
	KeyCapsLock   Key = 0xffe5

	// Navigation
	KeyHome     Key = 0xff50
	KeyLeft     Key = 0xff51
	KeyUp       Key = 0xff52
	KeyRight    Key = 0xff53
	KeyDown     Key = 0xff54
	KeyPageUp   Key = 0xff55
	KeyPageDown Key = 0xff56
	KeyEnd      Key = 0xff57

	// Keypad keys
	KeyKPSpace     Key = 0xff80
	KeyKPTab       Key = 0xff89
	KeyKPEnter     Key = 0xff8d
	KeyKPHome      Key = 0xff95
	KeyKPLeft      Key = 0xff96
	KeyKPUp        Key = 0xff97
	KeyKPRight     Key = 0xff98
	KeyKPDown      Key = 0xff99
	KeyKPPageUp    Key = 0xff9a
	KeyKPPageDown  Key = 0xff9b
	KeyKPEnd       Key = 0xff9c
	KeyKPBegin     Key = 0xff9d
	KeyKPInsert    Key = 0xff9e
	KeyKPDelete    Key = 0xff9f
	KeyKPMultiply  Key = 0xffaa
	KeyKPAdd       Key = 0xffab
	KeyKPSeparator Key = 0xffac
	KeyKPSubtract  Key = 0xffad
	KeyKPDecimal   Key = 0xffae
	KeyKPDivide    Key = 0xffaf
	KeyKP0         Key = 0xffb0
	KeyKP9         Key = 0xffb9

	// Function keys
	KeyF1  Key = 0xffbe
	KeyF12 Key = 0xffc9

	// unicodeOffset marks keysyms that carry a raw Unicode code point.
	unicodeOffset Key = 0x01000000
)

// KeyFromRune returns the keysym for a character.
func KeyFromRune(r rune) Key {
	switch {
	case r >= 0x20 && r <= 0x7e, r >= 0xa0 && r <= 0xff:
		return Key(r)
	case r > 0xff && r <= unicode.MaxRune:
		return unicodeOffset | Key(r)
	default:
		return KeyNone
	}
}

// KeyF returns the keysym for function key n (1-12), or KeyNone.
func KeyF(n int) Key {
	if n < 1 || n > 12 {
		return KeyNone
	}
	return KeyF1 + Key(n-1)
}

// KeyKP returns the keysym for keypad digit n (0-9), or KeyNone.
func KeyKP(n int) Key {
	if n < 0 || n > 9 {
		return KeyNone
	}
	return KeyKP0 + Key(n)
}

// Rune returns the character for a character key, or 0.
func (k Key) Rune() rune {
	switch {
	case k >= 0x20 && k <= 0x7e, k >= 0xa0 && k <= 0xff:
		return rune(k)
	case k > unicodeOffset && k <= unicodeOffset+unicode.MaxRune:
		return rune(k - unicodeOffset)
	default:
		return 0
	}
}

// IsRune returns true if this key produces a character.
func (k Key) IsRune() bool {
	return k.Rune() != 0
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyLeft && k <= KeyDown
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyKPSpace && k <= KeyKP9
}

// ToLower folds upper case letters to their lower case keysym.
func (k Key) ToLower() Key {
	if r := k.Rune(); r != 0 && unicode.IsUpper(r) {
		return KeyFromRune(unicode.ToLower(r))
	}
	return k
}

// Name returns the canonical accelerator name for the key.
func (k Key) Name() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyKP0 && k <= KeyKP9 {
		return fmt.Sprintf("KP_%d", k-KeyKP0)
	}
	if k.IsFunctionKey() {
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	if r := k.Rune(); r != 0 {
		return string(r)
	}
	if k == KeyNone {
		return ""
	}
	return fmt.Sprintf("0x%04x", uint32(k))
}

// String returns the key name, or "None".
func (k Key) String() string {
	if k == KeyNone {
		return "None"
	}
	return k.Name()
}

// keyNames maps keysyms to canonical X11 names.
var keyNames = map[Key]string{
	KeySpace:       "space",
	KeyBackSpace:   "BackSpace",
	KeyTab:         "Tab",
	KeyReturn:      "Return",
	KeyPause:       "Pause",
	KeyScrollLock:  "Scroll_Lock",
	KeyEscape:      "Escape",
	KeyDelete:      "Delete",
	KeyInsert:      "Insert",
	KeyMenu:        "Menu",
	KeyPrint:       "Print",
	KeyNumLock:     "Num_Lock",
	KeyCapsLock:    "Caps_Lock",
	KeyHome:        "Home",
	KeyLeft:        "Left",
	KeyUp:          "Up",
	KeyRight:       "Right",
	KeyDown:        "Down",
	KeyPageUp:      "Page_Up",
	KeyPageDown:    "Page_Down",
	KeyEnd:         "End",
	KeyKPSpace:     "KP_Space",
	KeyKPTab:       "KP_Tab",
	KeyKPEnter:     "KP_Enter",
	KeyKPHome:      "KP_Home",
	KeyKPLeft:      "KP_Left",
	KeyKPUp:        "KP_Up",
	KeyKPRight:     "KP_Right",
	KeyKPDown:      "KP_Down",
	KeyKPPageUp:    "KP_Page_Up",
	KeyKPPageDown:  "KP_Page_Down",
	KeyKPEnd:       "KP_End",
	KeyKPBegin:     "KP_Begin",
	KeyKPInsert:    "KP_Insert",
	KeyKPDelete:    "KP_Delete",
	KeyKPMultiply:  "KP_Multiply",
	KeyKPAdd:       "KP_Add",
	KeyKPSeparator: "KP_Separator",
	KeyKPSubtract:  "KP_Subtract",
	KeyKPDecimal:   "KP_Decimal",
	KeyKPDivide:    "KP_Divide",

	// Punctuation uses the X11 names so saved files stay readable.
	'!':  "exclam",
	'"':  "quotedbl",
	'#':  "numbersign",
	'$':  "dollar",
	'%':  "percent",
	'&':  "ampersand",
	'\'': "apostrophe",
	'(':  "parenleft",
	')':  "parenright",
	'*':  "asterisk",
	'+':  "plus",
	',':  "comma",
	'-':  "minus",
	'.':  "period",
	'/':  "slash",
	':':  "colon",
	';':  "semicolon",
	'<':  "less",
	'=':  "equal",
	'>':  "greater",
	'?':  "question",
	'@':  "at",
	'[':  "bracketleft",
	'\\': "backslash",
	']':  "bracketright",
	'^':  "asciicircum",
	'_':  "underscore",
	'`':  "grave",
	'{':  "braceleft",
	'|':  "bar",
	'}':  "braceright",
	'~':  "asciitilde",
}

// keyNameMap maps canonical names and X11 aliases to keysyms.
var keyNameMap = buildKeyNameMap()

// keyFoldMap is keyNameMap keyed by lower case name, plus friendly aliases.
var keyFoldMap = buildKeyFoldMap()

func buildKeyNameMap() map[string]Key {
	m := make(map[string]Key, len(keyNames)+32)
	for k, name := range keyNames {
		m[name] = k
	}
	for n := 0; n <= 9; n++ {
		m[fmt.Sprintf("KP_%d", n)] = KeyKP(n)
	}
	for n := 1; n <= 12; n++ {
		m[fmt.Sprintf("F%d", n)] = KeyF(n)
	}

	// X11 aliases
	m["Prior"] = KeyPageUp
	m["Next"] = KeyPageDown
	m["KP_Prior"] = KeyKPPageUp
	m["KP_Next"] = KeyKPPageDown
	return m
}

func buildKeyFoldMap() map[string]Key {
	m := make(map[string]Key, len(keyNameMap)+len(keyAliases))
	for name, k := range keyNameMap {
		m[strings.ToLower(name)] = k
	}
	for name, k := range keyAliases {
		m[name] = k
	}
	return m
}

// keyAliases are friendly lower case names accepted by the parser.
var keyAliases = map[string]Key{
	"esc":         KeyEscape,
	"enter":       KeyReturn,
	"cr":          KeyReturn,
	"bs":          KeyBackSpace,
	"backspace":   KeyBackSpace,
	"del":         KeyDelete,
	"ins":         KeyInsert,
	"pgup":        KeyPageUp,
	"pageup":      KeyPageUp,
	"pgdn":        KeyPageDown,
	"pagedown":    KeyPageDown,
	"scrolllock":  KeyScrollLock,
	"numlock":     KeyNumLock,
	"capslock":    KeyCapsLock,
	"printscreen": KeyPrint,
	"kp+":         KeyKPAdd,
	"kp-":         KeyKPSubtract,
	"kp*":         KeyKPMultiply,
	"kp/":         KeyKPDivide,
	"kpenter":     KeyKPEnter,
}

// KeyFromName returns the Key for a name.
// Canonical X11 names match exactly first, then case-insensitively; friendly
// aliases and single characters are also accepted. Returns KeyNone if the
// name is not recognized.
func KeyFromName(name string) Key {
	if name == "" {
		return KeyNone
	}
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	if runes := []rune(name); len(runes) == 1 {
		return KeyFromRune(runes[0])
	}
	if k, ok := keyFoldMap[strings.ToLower(name)]; ok {
		return k
	}
	return KeyNone
}
