// Package termkey converts terminal key events from tcell into key events
// the binding registry understands.
package termkey

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/internal/input/key"
)

// named pairs tcell keys with keysyms. Several tcell keys share a value
// (Tab and Ctrl+I are both 9), so this is a list rather than a map and the
// first entry wins.
var named = []struct {
	tk tcell.Key
	k  key.Key
}{
	{tcell.KeyTab, key.KeyTab},
	{tcell.KeyEnter, key.KeyReturn},
	{tcell.KeyBackspace, key.KeyBackSpace},
	{tcell.KeyBackspace2, key.KeyBackSpace},
	{tcell.KeyEscape, key.KeyEscape},
	{tcell.KeyDelete, key.KeyDelete},
	{tcell.KeyInsert, key.KeyInsert},
	{tcell.KeyHome, key.KeyHome},
	{tcell.KeyEnd, key.KeyEnd},
	{tcell.KeyPgUp, key.KeyPageUp},
	{tcell.KeyPgDn, key.KeyPageDown},
	{tcell.KeyUp, key.KeyUp},
	{tcell.KeyDown, key.KeyDown},
	{tcell.KeyLeft, key.KeyLeft},
	{tcell.KeyRight, key.KeyRight},
	{tcell.KeyPrint, key.KeyPrint},
	{tcell.KeyPause, key.KeyPause},
}

// ctrlPunct maps the control codes above Ctrl+Z to their characters.
var ctrlPunct = []struct {
	tk tcell.Key
	r  rune
}{
	{tcell.KeyCtrlBackslash, '\\'},
	{tcell.KeyCtrlRightSq, ']'},
	{tcell.KeyCtrlCarat, '^'},
	{tcell.KeyCtrlUnderscore, '_'},
}

// ConvertMod converts a tcell modifier mask.
func ConvertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

// Convert converts a tcell key, rune and modifier mask into a binding.
// Upper case runes become the lower case key with Shift, and control codes
// become the letter with Control. Returns false for keys with no keysym.
func Convert(tk tcell.Key, r rune, m tcell.ModMask) (key.Binding, bool) {
	mods := ConvertMod(m)

	if tk == tcell.KeyRune {
		if unicode.IsUpper(r) {
			r = unicode.ToLower(r)
			mods = mods.With(key.ModShift)
		}
		code := key.KeyFromRune(r)
		if code == key.KeyNone {
			return key.Binding{}, false
		}
		return key.Binding{Code: code, Mods: mods}, true
	}

	if tk == tcell.KeyBacktab {
		return key.Binding{Code: key.KeyTab, Mods: mods.With(key.ModShift)}, true
	}

	for _, n := range named {
		if n.tk == tk {
			return key.Binding{Code: n.k, Mods: mods}, true
		}
	}

	if tk >= tcell.KeyF1 && tk <= tcell.KeyF12 {
		return key.Binding{Code: key.KeyF(int(tk-tcell.KeyF1) + 1), Mods: mods}, true
	}

	if tk == tcell.KeyCtrlSpace {
		return key.Binding{Code: key.KeySpace, Mods: mods.With(key.ModCtrl)}, true
	}
	if tk >= tcell.KeyCtrlA && tk <= tcell.KeyCtrlZ {
		code := key.KeyFromRune('a' + rune(tk-tcell.KeyCtrlA))
		return key.Binding{Code: code, Mods: mods.With(key.ModCtrl)}, true
	}
	for _, p := range ctrlPunct {
		if p.tk == tk {
			return key.Binding{Code: key.KeyFromRune(p.r), Mods: mods.With(key.ModCtrl)}, true
		}
	}

	return key.Binding{}, false
}

// FromEvent converts a tcell key event into a key event.
func FromEvent(ev *tcell.EventKey) (key.Event, bool) {
	b, ok := Convert(ev.Key(), ev.Rune(), ev.Modifiers())
	if !ok {
		return key.Event{}, false
	}
	return key.Event{Binding: b, Timestamp: ev.When()}, true
}

// ToTcell converts a binding into the tcell key, rune and modifier mask a
// terminal would report for it. Returns false for keys a terminal cannot
// produce, such as the keypad keys.
func ToTcell(b key.Binding) (tcell.Key, rune, tcell.ModMask, bool) {
	var m tcell.ModMask
	if b.Mods.HasShift() {
		m |= tcell.ModShift
	}
	if b.Mods.HasCtrl() {
		m |= tcell.ModCtrl
	}
	if b.Mods.HasAlt() {
		m |= tcell.ModAlt
	}
	if b.Mods.HasMeta() {
		m |= tcell.ModMeta
	}

	if r := b.Code.Rune(); r != 0 {
		return tcell.KeyRune, r, m, true
	}

	for _, n := range named {
		if n.k == b.Code {
			return n.tk, 0, m, true
		}
	}
	if b.Code.IsFunctionKey() {
		return tcell.KeyF1 + tcell.Key(b.Code-key.KeyF1), 0, m, true
	}
	return tcell.KeyNUL, 0, 0, false
}
