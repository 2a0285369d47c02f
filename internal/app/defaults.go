package app

import (
	"slices"

	"github.com/dshills/keybind/internal/input/catalog"
)

// defaultBindings are the bindings each action is registered with. They
// apply only while the stored document has no entry for the action.
var defaultBindings = map[string][]string{
	"previous page":         {"Page_Up", "KP_Page_Up", "BackSpace"},
	"next page":             {"Page_Down", "KP_Page_Down"},
	"previous page ff":      {"<Shift>Page_Up", "<Shift>KP_Page_Up", "<Shift>BackSpace", "<Shift><Mod1>Left"},
	"next page ff":          {"<Shift>Page_Down", "<Shift>KP_Page_Down", "<Shift><Mod1>Right"},
	"previous page dynamic": {"<Mod1>Left"},
	"next page dynamic":     {"<Mod1>Right"},

	"scroll left bottom":   {"KP_1"},
	"scroll middle bottom": {"KP_2"},
	"scroll right bottom":  {"KP_3"},
	"scroll left middle":   {"KP_4"},
	"scroll middle":        {"KP_5"},
	"scroll right middle":  {"KP_6"},
	"scroll left top":      {"KP_7"},
	"scroll middle top":    {"KP_8"},
	"scroll right top":     {"KP_9"},

	"exit fullscreen":   {"Escape"},
	"toggle fullscreen": {"f", "F11"},

	"zoom in":       {"plus", "KP_Add", "equal"},
	"zoom out":      {"minus", "KP_Subtract"},
	"zoom original": {"<Control>0", "KP_0"},

	"scroll down":  {"Down", "KP_Down"},
	"scroll up":    {"Up", "KP_Up"},
	"scroll right": {"Right", "KP_Right"},
	"scroll left":  {"Left", "KP_Left"},

	"smart scroll up":   {"<Shift>space"},
	"smart scroll down": {"space"},

	"osd panel": {"Tab"},
}

// DefaultBindings returns the default bindings for an action. Command slot
// N defaults to the digit N.
func DefaultBindings(name string) []string {
	if n, ok := catalog.CommandSlot(name); ok {
		return []string{string(rune('0' + n))}
	}
	return slices.Clone(defaultBindings[name])
}
