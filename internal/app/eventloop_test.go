package app

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func injectRune(screen tcell.SimulationScreen, r rune) {
	screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
}

func runScreen(t *testing.T, a *App, screen tcell.Screen) {
	t.Helper()
	if err := a.RunScreen(screen); err != nil {
		t.Fatalf("RunScreen() error = %v", err)
	}
}

// screenLine returns row y of the simulation screen, trailing blanks trimmed.
func screenLine(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteString(string(runes))
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestRunScreenDispatchesKeys(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), nil)
	screen := newTestScreen(t)

	screen.InjectKey(tcell.KeyPgDn, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyPgDn, 0, tcell.ModNone)
	injectRune(screen, '+')
	injectRune(screen, 'f')
	injectRune(screen, 'q')
	runScreen(t, a, screen)

	v := a.Viewer()
	if v.Page != 3 {
		t.Errorf("Page = %d, want 3", v.Page)
	}
	if v.Zoom != 120 {
		t.Errorf("Zoom = %d, want 120", v.Zoom)
	}
	if !v.Fullscreen {
		t.Error("Fullscreen = false, want true")
	}
	if got := screenLine(screen, 0); got != "Page 3 of 20  Zoom 120%" {
		t.Errorf("status line = %q", got)
	}
	if got := screenLine(screen, 2); !strings.Contains(got, "[fullscreen]") {
		t.Errorf("flags line = %q", got)
	}
}

func TestRunScreenQuitKeys(t *testing.T) {
	tests := []struct {
		name   string
		inject func(tcell.SimulationScreen)
	}{
		{"q", func(s tcell.SimulationScreen) { injectRune(s, 'q') }},
		{"ctrl c", func(s tcell.SimulationScreen) { s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, testConfig(t), nil)
			screen := newTestScreen(t)
			tt.inject(screen)
			runScreen(t, a, screen)

			if got := screenLine(screen, 23); got != "Press q to quit" {
				t.Errorf("help line = %q", got)
			}
		})
	}
}

func TestRunScreenBoundQuitKey(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), keymap.Document{"osd panel": {"q"}})
	screen := newTestScreen(t)

	injectRune(screen, 'q')
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	runScreen(t, a, screen)

	if !a.Viewer().OSD {
		t.Error("bound q did not run its action")
	}
}

func TestRunScreenReload(t *testing.T) {
	a, store := newTestApp(t, testConfig(t), nil)
	screen := newTestScreen(t)

	if err := store.Save(keymap.Document{"next page": {"n"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := screen.PostEvent(tcell.NewEventInterrupt(reloadRequest{})); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}
	injectRune(screen, 'n')
	screen.InjectKey(tcell.KeyPgDn, 0, tcell.ModNone)
	injectRune(screen, 'q')
	runScreen(t, a, screen)

	v := a.Viewer()
	if v.Page != 2 {
		t.Errorf("Page = %d, want 2", v.Page)
	}
	if v.Message != "Keybindings reloaded" {
		t.Errorf("Message = %q", v.Message)
	}

	// Actions missing from the document keep their defaults.
	if owner, _ := a.Registry().Owner(key.MustParse("plus")); owner != "zoom in" {
		t.Errorf("plus owned by %q, want zoom in", owner)
	}
}

type brokenStore struct{}

func (brokenStore) Load() (keymap.Document, error) { return nil, errors.New("disk on fire") }
func (brokenStore) Save(keymap.Document) error     { return nil }

func TestRunScreenReloadFailure(t *testing.T) {
	a, err := New(Options{Config: testConfig(t), Store: brokenStore{}, LogOutput: io.Discard})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()
	screen := newTestScreen(t)

	if err := screen.PostEvent(tcell.NewEventInterrupt(reloadRequest{})); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}
	screen.InjectKey(tcell.KeyPgDn, 0, tcell.ModNone)
	injectRune(screen, 'q')
	runScreen(t, a, screen)

	if !strings.Contains(a.Viewer().Message, "disk on fire") {
		t.Errorf("Message = %q, want the load error", a.Viewer().Message)
	}
	if a.Viewer().Page != 2 {
		t.Errorf("Page = %d, want defaults kept after a failed reload", a.Viewer().Page)
	}
}

func TestRunScreenActionError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Commands["1"] = `error("boom")`
	a, _ := newTestApp(t, cfg, nil)
	screen := newTestScreen(t)

	injectRune(screen, '1')
	injectRune(screen, 'q')
	runScreen(t, a, screen)

	if !strings.Contains(a.Viewer().Message, "boom") {
		t.Errorf("Message = %q, want the script error", a.Viewer().Message)
	}
}

func TestRunScreenAlreadyRunning(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), nil)
	screen := newTestScreen(t)

	a.running.Store(true)
	if err := a.RunScreen(screen); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("RunScreen() error = %v, want ErrAlreadyRunning", err)
	}
}
