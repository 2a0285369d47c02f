package i18n

import (
	"slices"
	"testing"

	"github.com/dshills/keybind/internal/input/catalog"
)

func newTranslator(t *testing.T, lang string) *Translator {
	t.Helper()
	tr, err := New(lang)
	if err != nil {
		t.Fatalf("New(%q) error = %v", lang, err)
	}
	return tr
}

func TestEnglishFallsBackToID(t *testing.T) {
	tr := newTranslator(t, "en")

	if got := tr.T("Zoom in"); got != "Zoom in" {
		t.Errorf("T(Zoom in) = %q", got)
	}
	if got := tr.T("no such message"); got != "no such message" {
		t.Errorf("T(missing) = %q, want the id", got)
	}
}

func TestGerman(t *testing.T) {
	tr := newTranslator(t, "de")

	tests := []struct {
		id   string
		want string
	}{
		{"Zoom in", "Vergrößern"},
		{"Reading", "Lesen"},
		{"shadowed", "verdeckt"},
		{"untranslated text", "untranslated text"},
	}
	for _, tt := range tests {
		if got := tr.T(tt.id); got != tt.want {
			t.Errorf("T(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestRegionalTagMatchesBase(t *testing.T) {
	tr := newTranslator(t, "de-AT")
	if got := tr.T("Zoom out"); got != "Verkleinern" {
		t.Errorf("T(Zoom out) = %q, want Verkleinern", got)
	}
}

func TestUnknownLanguageUsesEnglish(t *testing.T) {
	tr := newTranslator(t, "fr")
	if got := tr.T("Zoom in"); got != "Zoom in" {
		t.Errorf("T(Zoom in) = %q", got)
	}
	if tr.Lang() != "fr" {
		t.Errorf("Lang() = %q, want fr", tr.Lang())
	}
}

func TestTemplateData(t *testing.T) {
	data := map[string]any{"Page": 3, "Pages": 10, "Zoom": 150}

	en := newTranslator(t, "en")
	if got := en.T("viewer.status", data); got != "Page 3 of 10  Zoom 150%" {
		t.Errorf("en T(viewer.status) = %q", got)
	}

	de := newTranslator(t, "de")
	if got := de.T("viewer.status", data); got != "Seite 3 von 10  Zoom 150%" {
		t.Errorf("de T(viewer.status) = %q", got)
	}
}

func TestTitleAndGroup(t *testing.T) {
	cat := catalog.Default()
	de := newTranslator(t, "de")

	e, _ := cat.Lookup("execute command 3")
	if got := de.Title(e); got != "Externen Befehl ausführen (3)" {
		t.Errorf("Title(execute command 3) = %q", got)
	}
	e, _ = cat.Lookup("osd panel")
	if got := de.Title(e); got != "OSD-Anzeige einblenden" {
		t.Errorf("Title(osd panel) = %q", got)
	}
	if got := de.Group(catalog.GroupPageZoom); got != "Seitenausrichtung und Zoom" {
		t.Errorf("Group() = %q", got)
	}

	en := newTranslator(t, "en")
	e, _ = cat.Lookup("execute command 3")
	if got := en.Title(e); got != e.DisplayTitle() {
		t.Errorf("en Title() = %q, want %q", got, e.DisplayTitle())
	}
}

func TestEveryCatalogEntryTranslated(t *testing.T) {
	de := newTranslator(t, "de")
	for _, e := range catalog.Default().Entries() {
		if de.T(e.Title) == e.Title {
			t.Errorf("no German title for %q", e.Name)
		}
	}
	for _, g := range catalog.Default().Groups() {
		if de.Group(g.Name) == g.Name {
			t.Errorf("no German name for group %q", g.Name)
		}
	}
}

func TestAvailable(t *testing.T) {
	got := Available()
	if !slices.Equal(got, []string{"de", "en"}) {
		t.Errorf("Available() = %v, want [de en]", got)
	}
}
