package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Catalog errors
var (
	ErrEmptyName     = errors.New("empty action name")
	ErrDuplicateName = errors.New("duplicate action name")
)

// Group names used by the built-in catalog.
const (
	GroupReading       = "Reading"
	GroupPageZoom      = "Page orientation and zoom"
	GroupUserInterface = "User interface"
)

// CommandSlots is the number of "execute command N" actions.
const CommandSlots = 9

const commandPrefix = "execute command "

// Entry describes one action a key can be bound to.
type Entry struct {
	// Name is the stable identifier used in code and in the saved document.
	Name string

	// Title is the human-readable label.
	Title string

	// Group is the preferences section. Empty means the action is not
	// user-editable.
	Group string

	// Ordinal is the slot number for numbered actions, 0 otherwise.
	Ordinal int
}

// Editable returns true if the action appears in the preferences UI.
func (e Entry) Editable() bool {
	return e.Group != ""
}

// DisplayTitle returns the title, with the ordinal appended for numbered
// actions: "Execute external command (3)".
func (e Entry) DisplayTitle() string {
	if e.Ordinal > 0 {
		return fmt.Sprintf("%s (%d)", e.Title, e.Ordinal)
	}
	return e.Title
}

// Group is a named set of editable actions.
type Group struct {
	Name    string
	Entries []Entry
}

// Catalog is the closed set of valid action names.
// It is immutable after construction and safe for concurrent reads.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// New creates a catalog from entries, preserving their order.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, ErrEmptyName
		}
		if _, exists := c.index[e.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		c.index[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// CommandActionName returns the action name for external command slot n.
func CommandActionName(n int) string {
	return commandPrefix + strconv.Itoa(n)
}

// CommandSlot returns the slot number of an "execute command N" action.
func CommandSlot(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, commandPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > CommandSlots {
		return 0, false
	}
	return n, true
}

// builtinEntries are the reader actions, in preferences order.
var builtinEntries = []Entry{
	{Name: "previous page", Title: "Previous page", Group: GroupReading},
	{Name: "next page", Title: "Next page", Group: GroupReading},
	{Name: "previous page ff", Title: "Back ten pages", Group: GroupReading},
	{Name: "next page ff", Title: "Forward ten pages", Group: GroupReading},
	{Name: "previous page dynamic", Title: "Previous page (dynamic)", Group: GroupReading},
	{Name: "next page dynamic", Title: "Next page (dynamic)", Group: GroupReading},

	{Name: "scroll left bottom", Title: "Scroll to bottom left", Group: GroupPageZoom},
	{Name: "scroll middle bottom", Title: "Scroll to bottom center", Group: GroupPageZoom},
	{Name: "scroll right bottom", Title: "Scroll to bottom right", Group: GroupPageZoom},
	{Name: "scroll left middle", Title: "Scroll to middle left", Group: GroupPageZoom},
	{Name: "scroll middle", Title: "Scroll to center", Group: GroupPageZoom},
	{Name: "scroll right middle", Title: "Scroll to middle right", Group: GroupPageZoom},
	{Name: "scroll left top", Title: "Scroll to top left", Group: GroupPageZoom},
	{Name: "scroll middle top", Title: "Scroll to top center", Group: GroupPageZoom},
	{Name: "scroll right top", Title: "Scroll to top right", Group: GroupPageZoom},

	{Name: "exit fullscreen", Title: "Exit from fullscreen", Group: GroupUserInterface},
	{Name: "toggle fullscreen", Title: "Toggle fullscreen", Group: GroupUserInterface},

	{Name: "zoom in", Title: "Zoom in", Group: GroupPageZoom},
	{Name: "zoom out", Title: "Zoom out", Group: GroupPageZoom},
	{Name: "zoom original", Title: "Normal size", Group: GroupPageZoom},

	{Name: "scroll down", Title: "Scroll down", Group: GroupReading},
	{Name: "scroll up", Title: "Scroll up", Group: GroupReading},
	{Name: "scroll right", Title: "Scroll right", Group: GroupReading},
	{Name: "scroll left", Title: "Scroll left", Group: GroupReading},

	{Name: "smart scroll up", Title: "Smart scroll up", Group: GroupReading},
	{Name: "smart scroll down", Title: "Smart scroll down", Group: GroupReading},

	{Name: "osd panel", Title: "Show OSD panel", Group: GroupUserInterface},
}

// Default returns the built-in catalog: the reader actions followed by the
// external command slots.
func Default() *Catalog {
	entries := make([]Entry, 0, len(builtinEntries)+CommandSlots)
	entries = append(entries, builtinEntries...)
	for n := 1; n <= CommandSlots; n++ {
		entries = append(entries, Entry{
			Name:    CommandActionName(n),
			Title:   "Execute external command",
			Group:   GroupUserInterface,
			Ordinal: n,
		})
	}

	c, err := New(entries...)
	if err != nil {
		panic("catalog: invalid built-in entries: " + err.Error())
	}
	return c
}

// IsValid returns true if name is a catalog action.
func (c *Catalog) IsValid(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Lookup returns the entry for name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.index[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns all action names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Name
	}
	return out
}

// Len returns the number of actions.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Groups returns editable entries grouped by group name, groups in order of
// first appearance.
func (c *Catalog) Groups() []Group {
	var groups []Group
	pos := make(map[string]int)
	for _, e := range c.entries {
		if !e.Editable() {
			continue
		}
		i, ok := pos[e.Group]
		if !ok {
			i = len(groups)
			pos[e.Group] = i
			groups = append(groups, Group{Name: e.Group})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
