package key

import "testing"

func TestBindingIsComparable(t *testing.T) {
	m := map[Binding]string{
		MustParse("<Control>s"): "save",
		MustParse("s"):          "scroll",
	}

	if got := m[Binding{Code: Key('s'), Mods: ModCtrl}]; got != "save" {
		t.Errorf("lookup Ctrl+S = %q, want save", got)
	}
	if got := m[Binding{Code: Key('s')}]; got != "scroll" {
		t.Errorf("lookup s = %q, want scroll", got)
	}
	if _, ok := m[Binding{Code: Key('s'), Mods: ModAlt}]; ok {
		t.Error("Alt+S should not match")
	}
}

func TestBindingLabel(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"<Control>s", "Ctrl+S"},
		{"Page_Up", "Page_Up"},
		{"<Shift>space", "Shift+space"},
		{"<Mod1>Left", "Alt+Left"},
		{"1", "1"},
	}

	for _, tt := range tests {
		if got := MustParse(tt.spec).Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestBindingBare(t *testing.T) {
	b := MustParse("<Control><Shift>a")
	if b.IsBare() {
		t.Error("IsBare() = true for modified binding")
	}
	bare := b.Bare()
	if !bare.IsBare() || bare.Code != Key('a') {
		t.Errorf("Bare() = %#v", bare)
	}
	if !(Binding{}).IsZero() {
		t.Error("zero binding should report IsZero")
	}
	if got := b.String(); got != "<Shift><Control>a" {
		t.Errorf("String() = %q", got)
	}
}

func TestEventMatches(t *testing.T) {
	ev := NewRuneEvent('s', ModCtrl)

	if !ev.Matches("Ctrl+S") {
		t.Error("expected match for Ctrl+S")
	}
	if !ev.Matches("<Control>s") {
		t.Error("expected match for <Control>s")
	}
	if ev.Matches("s") {
		t.Error("unexpected match for s")
	}
	if ev.Matches("<Bogus>s") {
		t.Error("invalid spec should not match")
	}
	if ev.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}
}

func TestEventIsModified(t *testing.T) {
	tests := []struct {
		mods Modifier
		want bool
	}{
		{ModNone, false},
		{ModNumLock, false},
		{ModLock | ModNumLock, false},
		{ModCtrl | ModNumLock, true},
		{ModShift, true},
	}

	for _, tt := range tests {
		ev := NewEvent(KeyKPAdd, tt.mods)
		if got := ev.IsModified(); got != tt.want {
			t.Errorf("IsModified(%v) = %v, want %v", tt.mods, got, tt.want)
		}
	}
}

func TestEventEquals(t *testing.T) {
	a := NewEvent(KeyTab, ModNone)
	b := NewEvent(KeyTab, ModNone)
	if !a.Equals(b) {
		t.Error("events with the same binding should be equal")
	}
	if a.Equals(a.WithModifier(ModShift)) {
		t.Error("WithModifier should change the binding")
	}
}
