package script

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type notes struct {
	actions []string
	msgs    []string
}

func (n *notes) notify(action, msg string) {
	n.actions = append(n.actions, action)
	n.msgs = append(n.msgs, msg)
}

func TestCompileError(t *testing.T) {
	_, err := Compile("execute command 1", "keybind.notify(")
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("Compile() error = %v, want *Error", err)
	}
	if se.Phase != "compile" {
		t.Errorf("Phase = %q, want compile", se.Phase)
	}
	if se.Action != "execute command 1" {
		t.Errorf("Action = %q", se.Action)
	}
}

func TestNotify(t *testing.T) {
	var n notes
	cmd, err := Compile("execute command 2",
		`keybind.notify("hello from " .. keybind.action())`, WithNotifier(n.notify))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if err := cmd.Invoke(); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if len(n.msgs) != 1 || n.msgs[0] != "hello from execute command 2" {
		t.Errorf("messages = %v", n.msgs)
	}
	if n.actions[0] != "execute command 2" {
		t.Errorf("action = %q", n.actions[0])
	}
}

func TestPrintRedirected(t *testing.T) {
	var n notes
	cmd, err := Compile("execute command 3", `print("a", 1, true)`, WithNotifier(n.notify))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := cmd.Invoke(); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if len(n.msgs) != 1 || n.msgs[0] != "a\t1\ttrue" {
		t.Errorf("messages = %q, want [a\\t1\\ttrue]", n.msgs)
	}
}

func TestFreshStatePerRun(t *testing.T) {
	var n notes
	cmd, err := Compile("execute command 4", `
counter = (counter or 0) + 1
keybind.notify(tostring(counter))
`, WithNotifier(n.notify))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	for range 3 {
		if err := cmd.Invoke(); err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
	}
	for i, msg := range n.msgs {
		if msg != "1" {
			t.Errorf("run %d saw counter %s, want 1", i, msg)
		}
	}
}

func TestSandbox(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"dofile", `dofile("/etc/passwd")`},
		{"loadfile", `loadfile("/etc/passwd")`},
		{"loadstring", `loadstring("return 1")()`},
		{"load", `load(function() return nil end)`},
		{"require", `require("os")`},
		{"os", `os.exit(1)`},
		{"io", `io.open("/etc/passwd")`},
		{"debug", `debug.getinfo(1)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Compile("execute command 5", tt.source)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			err = cmd.Invoke()
			var se *Error
			if !errors.As(err, &se) || se.Phase != "run" {
				t.Errorf("Invoke() error = %v, want run error", err)
			}
		})
	}
}

func TestSafeLibraries(t *testing.T) {
	var n notes
	cmd, err := Compile("execute command 6", `
local t = {3, 1, 2}
table.sort(t)
keybind.notify(string.format("%d%d%d %d", t[1], t[2], t[3], math.max(4, 9)))
`, WithNotifier(n.notify))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := cmd.Invoke(); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if len(n.msgs) != 1 || n.msgs[0] != "123 9" {
		t.Errorf("messages = %v, want [123 9]", n.msgs)
	}
}

func TestRuntimeError(t *testing.T) {
	cmd, err := Compile("execute command 7", `error("boom")`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	err = cmd.Invoke()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Invoke() error = %v, want boom", err)
	}
}

func TestTimeout(t *testing.T) {
	cmd, err := Compile("execute command 8", `while true do end`, WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	start := time.Now()
	err = cmd.Invoke()
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Invoke() error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Invoke() took %v", elapsed)
	}
}

func TestRunCancelled(t *testing.T) {
	cmd, err := Compile("execute command 9", `while true do end`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err = cmd.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestAccessors(t *testing.T) {
	cmd, err := Compile("execute command 1", "return")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if cmd.Action() != "execute command 1" {
		t.Errorf("Action() = %q", cmd.Action())
	}
	if cmd.Source() != "return" {
		t.Errorf("Source() = %q", cmd.Source())
	}
}
