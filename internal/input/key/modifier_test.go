package key

import "testing"

func TestModifierHas(t *testing.T) {
	m := ModCtrl | ModShift

	if !m.Has(ModCtrl) {
		t.Error("expected Ctrl")
	}
	if !m.HasShift() {
		t.Error("expected Shift")
	}
	if m.HasAlt() {
		t.Error("unexpected Alt")
	}
	if m.Has(ModNumLock) {
		t.Error("unexpected NumLock")
	}
}

func TestModifierWithWithout(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModAlt)
	if m != ModCtrl|ModAlt {
		t.Errorf("With = %v, want Ctrl+Alt", m)
	}
	m = m.Without(ModCtrl)
	if m != ModAlt {
		t.Errorf("Without = %v, want Alt", m)
	}
	if !m.Without(ModAlt).IsEmpty() {
		t.Error("expected empty modifier")
	}
}

func TestModifierAccel(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "<Control>"},
		{ModCtrl | ModShift, "<Shift><Control>"},
		{ModAlt, "<Alt>"},
		{ModMeta | ModSuper | ModCtrl, "<Control><Super><Meta>"},
		{ModNumLock | ModShift, "<Shift><Mod2>"},
	}

	for _, tt := range tests {
		if got := tt.mod.Accel(); got != tt.want {
			t.Errorf("Modifier(%#x).Accel() = %q, want %q", uint32(tt.mod), got, tt.want)
		}
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod   Modifier
		want  string
		short string
	}{
		{ModNone, "", ""},
		{ModCtrl, "Ctrl", "C"},
		{ModCtrl | ModAlt | ModShift, "Ctrl+Alt+Shift", "C-A-S"},
		{ModMeta, "Meta", "M"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := tt.mod.ShortString(); got != tt.short {
			t.Errorf("ShortString() = %q, want %q", got, tt.short)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"Ctrl", ModCtrl},
		{"control", ModCtrl},
		{"Alt", ModAlt},
		{"Option", ModAlt},
		{"shift", ModShift},
		{"cmd", ModMeta},
		{"win", ModSuper},
		{"hyper", ModHyper},
		{"NumLock", ModNumLock},
		{"bogus", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
