// Package script runs the Lua snippets bound to the "execute command N"
// actions.
//
// A Command is compiled once from source and executed in a fresh sandboxed
// Lua state on every invocation, so scripts cannot keep state between runs
// or observe each other. The sandbox opens only the base, table, string and
// math libraries, with file loading and require removed.
//
// Scripts see a global "keybind" table:
//
//	keybind.notify(msg)   -- report a message to the host
//	keybind.action()      -- the name of the action being executed
//
// print is redirected to keybind.notify.
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// DefaultTimeout bounds a single invocation.
const DefaultTimeout = 2 * time.Second

// ErrTimeout is returned when a script runs past its timeout.
var ErrTimeout = errors.New("lua execution timeout")

// removedGlobals are base library functions unavailable to scripts.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// Notifier receives messages sent by scripts.
type Notifier func(action, msg string)

// Error describes a script that failed to compile or run.
type Error struct {
	Action string
	Phase  string // "compile" or "run"
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %q: %s: %v", e.Action, e.Phase, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Command is a compiled Lua snippet bound to an action.
type Command struct {
	action  string
	source  string
	proto   *lua.FunctionProto
	notify  Notifier
	timeout time.Duration
}

// Option configures a Command.
type Option func(*Command)

// WithNotifier sets the receiver of keybind.notify and print output.
func WithNotifier(fn Notifier) Option {
	return func(c *Command) {
		c.notify = fn
	}
}

// WithTimeout sets the execution timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Command) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Compile parses and compiles source for action.
func Compile(action, source string, opts ...Option) (*Command, error) {
	chunk, err := parse.Parse(strings.NewReader(source), action)
	if err != nil {
		return nil, &Error{Action: action, Phase: "compile", Err: err}
	}
	proto, err := lua.Compile(chunk, action)
	if err != nil {
		return nil, &Error{Action: action, Phase: "compile", Err: err}
	}

	c := &Command{
		action:  action,
		source:  source,
		proto:   proto,
		notify:  func(string, string) {},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Action returns the action name the command is bound to.
func (c *Command) Action() string {
	return c.action
}

// Source returns the Lua source.
func (c *Command) Source() string {
	return c.source
}

// Invoke runs the command with the default context.
func (c *Command) Invoke() error {
	return c.Run(context.Background())
}

// Run executes the command in a fresh sandbox. It blocks until the script
// returns, fails, or ctx or the command timeout expires.
func (c *Command) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	L := newSandbox()
	defer L.Close()
	L.SetContext(ctx)
	L.SetGlobal("keybind", c.module(L))
	L.SetGlobal("print", L.NewFunction(c.luaPrint))

	defer func() {
		if r := recover(); r != nil {
			err = &Error{Action: c.action, Phase: "run", Err: fmt.Errorf("lua panic: %v", r)}
		}
	}()

	L.Push(L.NewFunctionFromProto(c.proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &Error{Action: c.action, Phase: "run", Err: ErrTimeout}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &Error{Action: c.action, Phase: "run", Err: ctxErr}
		}
		return &Error{Action: c.action, Phase: "run", Err: err}
	}
	return nil
}

// newSandbox creates a Lua state with only the safe standard libraries.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// module builds the keybind table exposed to scripts.
func (c *Command) module(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"notify": func(L *lua.LState) int {
			c.notify(c.action, L.ToStringMeta(L.CheckAny(1)).String())
			return 0
		},
		"action": func(L *lua.LState) int {
			L.Push(lua.LString(c.action))
			return 1
		},
	})
}

// luaPrint joins its arguments with tabs and forwards them to the notifier.
func (c *Command) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	c.notify(c.action, strings.Join(parts, "\t"))
	return 0
}
