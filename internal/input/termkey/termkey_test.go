package termkey

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/internal/input/key"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		tk   tcell.Key
		r    rune
		mod  tcell.ModMask
		want string
	}{
		{"rune", tcell.KeyRune, 'a', tcell.ModNone, "a"},
		{"upper rune", tcell.KeyRune, 'A', tcell.ModNone, "<Shift>a"},
		{"upper rune with shift", tcell.KeyRune, 'A', tcell.ModShift, "<Shift>a"},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, "space"},
		{"plus", tcell.KeyRune, '+', tcell.ModNone, "plus"},
		{"alt rune", tcell.KeyRune, 'x', tcell.ModAlt, "<Alt>x"},
		{"ctrl letter", tcell.KeyCtrlS, 0, tcell.ModCtrl, "<Control>s"},
		{"ctrl letter without mod", tcell.KeyCtrlQ, 0, tcell.ModNone, "<Control>q"},
		{"ctrl space", tcell.KeyCtrlSpace, 0, tcell.ModCtrl, "<Control>space"},
		{"ctrl backslash", tcell.KeyCtrlBackslash, 0, tcell.ModCtrl, "<Control>backslash"},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, "Tab"},
		{"backtab", tcell.KeyBacktab, 0, tcell.ModNone, "<Shift>Tab"},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, "Return"},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, "Escape"},
		{"backspace", tcell.KeyBackspace2, 0, tcell.ModNone, "BackSpace"},
		{"page up", tcell.KeyPgUp, 0, tcell.ModNone, "Page_Up"},
		{"alt left", tcell.KeyLeft, 0, tcell.ModAlt, "<Alt>Left"},
		{"shift down", tcell.KeyDown, 0, tcell.ModShift, "<Shift>Down"},
		{"f5", tcell.KeyF5, 0, tcell.ModNone, "F5"},
		{"meta f12", tcell.KeyF12, 0, tcell.ModMeta, "<Meta>F12"},
	}

	for _, tt := range tests {
		b, ok := Convert(tt.tk, tt.r, tt.mod)
		if !ok {
			t.Errorf("%s: Convert() not ok", tt.name)
			continue
		}
		if got := b.String(); got != tt.want {
			t.Errorf("%s: Convert() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestConvertUnknown(t *testing.T) {
	if _, ok := Convert(tcell.KeyF64, 0, tcell.ModNone); ok {
		t.Error("Convert(F64) should not be ok")
	}
	if _, ok := Convert(tcell.KeyRune, '\n', tcell.ModNone); ok {
		t.Error("Convert(newline rune) should not be ok")
	}
}

func TestFromEvent(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone)
	got, ok := FromEvent(ev)
	if !ok {
		t.Fatal("FromEvent() not ok")
	}
	if got.Binding != key.MustParse("f") {
		t.Errorf("FromEvent() = %s, want f", got.Binding)
	}
	if got.Timestamp.IsZero() {
		t.Error("FromEvent() lost the timestamp")
	}
}

func TestToTcellRoundTrip(t *testing.T) {
	for _, spec := range []string{
		"a", "<Control>s", "<Control>i", "<Shift>space", "plus", "Tab",
		"Return", "<Alt>Left", "Page_Down", "F1", "<Shift>F12", "Escape",
	} {
		b := key.MustParse(spec)
		tk, r, m, ok := ToTcell(b)
		if !ok {
			t.Errorf("ToTcell(%s) not ok", spec)
			continue
		}
		got, ok := Convert(tk, r, m)
		if !ok || got != b {
			t.Errorf("Convert(ToTcell(%s)) = %s, %v", spec, got, ok)
		}
	}

	if _, _, _, ok := ToTcell(key.MustParse("KP_Add")); ok {
		t.Error("ToTcell(KP_Add) should not be ok")
	}
}

func TestConvertMod(t *testing.T) {
	got := ConvertMod(tcell.ModCtrl | tcell.ModShift | tcell.ModAlt | tcell.ModMeta)
	want := key.ModCtrl | key.ModShift | key.ModAlt | key.ModMeta
	if got != want {
		t.Errorf("ConvertMod() = %v, want %v", got, want)
	}
}
