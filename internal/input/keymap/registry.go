package keymap

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/dshills/keybind/internal/input/catalog"
	"github.com/dshills/keybind/internal/input/key"
)

// Logger receives registry diagnostics. Messages are printf-style.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures a Registry.
type Option func(*Registry)

// WithStore sets where bindings are loaded from and saved to.
func WithStore(s Store) Option {
	return func(r *Registry) {
		if s != nil {
			r.store = s
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// Tier identifies how an event was matched.
type Tier int

const (
	// TierExact matched the binding exactly.
	TierExact Tier = iota + 1

	// TierFuzzy matched a stored binding on the same key whose modifiers
	// overlap the event's.
	TierFuzzy

	// TierBare matched the unmodified binding for the event's key.
	TierBare
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierFuzzy:
		return "fuzzy"
	case TierBare:
		return "bare"
	default:
		return "none"
	}
}

// Match is the result of resolving an event.
type Match struct {
	Action  string
	Binding key.Binding // The stored binding that matched
	Tier    Tier
}

// Conflict describes a binding listed by an action that another action owns.
type Conflict struct {
	Binding  key.Binding
	Owner    string
	Claimant string
}

// claim records which action owns a binding and when it was claimed.
type claim struct {
	action string
	seq    uint64
}

// Registry maps physical key bindings to catalog actions.
//
// It keeps three views consistent: binding to owning action, action to its
// ordered binding list, and action to callback. An action's list may carry
// bindings owned by another action; those are shadowed and become live when
// the owner lets go.
//
// Registry is not safe for concurrent use. All calls are expected on the
// event-processing goroutine.
type Registry struct {
	catalog *catalog.Catalog
	store   Store
	log     Logger

	owners   map[key.Binding]claim
	lists    map[string][]key.Binding
	actions  map[string]Action
	defaults map[string][]key.Binding

	seq       uint64
	lastSaved Document
}

// NewRegistry creates a registry for the actions in cat and loads the
// stored bindings. Load failures are logged, never returned.
func NewRegistry(cat *catalog.Catalog, opts ...Option) *Registry {
	r := &Registry{
		catalog:  cat,
		store:    NewMemoryStore(nil),
		log:      nopLogger{},
		owners:   make(map[key.Binding]claim),
		lists:    make(map[string][]key.Binding),
		actions:  make(map[string]Action),
		defaults: make(map[string][]key.Binding),
	}
	for _, opt := range opts {
		opt(r)
	}

	doc, err := r.store.Load()
	if doc == nil && err != nil {
		r.log.Error("couldn't load keybindings: %v", err)
	}
	r.install(doc, err, false)
	return r
}

// Catalog returns the action catalog.
func (r *Registry) Catalog() *catalog.Catalog {
	return r.catalog
}

// install rebuilds the binding views from doc. Actions missing from doc
// get their remembered defaults when useDefaults is set, otherwise nothing.
func (r *Registry) install(doc Document, loadErr error, useDefaults bool) {
	switch {
	case doc == nil && loadErr == nil:
		r.log.Info("no saved keybindings, using defaults")
	case doc != nil && loadErr != nil:
		r.log.Warn("some saved keybindings were skipped: %v", loadErr)
	}

	for name := range doc {
		if !r.catalog.IsValid(name) {
			r.log.Debug("ignoring saved bindings for unknown action %q", name)
		}
	}

	r.owners = make(map[key.Binding]claim)
	r.lists = make(map[string][]key.Binding, r.catalog.Len())

	for _, name := range r.catalog.Names() {
		var list []key.Binding
		if specs, ok := doc[name]; ok {
			for _, spec := range specs {
				b, err := key.Parse(spec)
				if err != nil {
					r.log.Warn("skipping saved binding %q for %q: %v", spec, name, err)
					continue
				}
				list = appendUnique(list, b)
			}
		} else if useDefaults {
			list = slices.Clone(r.defaults[name])
		}

		r.lists[name] = list
		for _, b := range list {
			r.claim(name, b)
		}
	}
}

// claim gives b to name unless another action already owns it.
func (r *Registry) claim(name string, b key.Binding) {
	if c, ok := r.owners[b]; ok {
		if c.action != name {
			r.log.Warn("binding %s for %q is already used by %q", b, name, c.action)
		}
		return
	}
	r.seq++
	r.owners[b] = claim{action: name, seq: r.seq}
}

// release drops name's ownership of b and hands it to the first action in
// catalog order that still lists it.
func (r *Registry) release(name string, b key.Binding) {
	c, ok := r.owners[b]
	if !ok || c.action != name {
		return
	}
	delete(r.owners, b)

	for _, other := range r.catalog.Names() {
		if slices.Contains(r.lists[other], b) {
			r.seq++
			r.owners[b] = claim{action: other, seq: r.seq}
			r.log.Info("binding %s now triggers %q", b, other)
			return
		}
	}
}

// Register installs the action for name. If name has no bindings on record,
// defaults are adopted in order. Defaults are parsed before anything changes.
// Register never saves.
func (r *Registry) Register(name string, defaults []string, action Action) error {
	if !r.catalog.IsValid(name) {
		return opError("register", name, "", ErrUnknownAction)
	}
	if action == nil {
		return opError("register", name, "", ErrNilAction)
	}

	parsed := make([]key.Binding, 0, len(defaults))
	for _, spec := range defaults {
		b, err := key.Parse(spec)
		if err != nil {
			return opError("register", name, spec, malformed(err))
		}
		parsed = appendUnique(parsed, b)
	}

	if len(r.lists[name]) == 0 {
		r.lists[name] = slices.Clone(parsed)
	}
	for _, b := range r.lists[name] {
		r.claim(name, b)
	}

	r.actions[name] = action
	r.defaults[name] = parsed
	return nil
}

// MustRegister is like Register but panics on error.
// Use only for startup wiring with known-valid names and defaults.
func (r *Registry) MustRegister(name string, defaults []string, action Action) {
	if err := r.Register(name, defaults, action); err != nil {
		panic(err)
	}
}

// IsRegistered returns true if name has an action installed.
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.actions[name]
	return ok
}

// Lookup resolves an event to an action without invoking it.
//
// Resolution tries, in order: the exact binding; a stored binding on the
// same key whose non-empty modifier mask overlaps the event's (the best
// overlap wins, then the fewest extra stored modifiers, then the earliest
// claim); and the unmodified binding for the key. Only actions with an
// installed callback are considered.
func (r *Registry) Lookup(ev key.Binding) (Match, bool) {
	ev.Code = ev.Code.ToLower()

	if c, ok := r.owners[ev]; ok && r.actions[c.action] != nil {
		return Match{Action: c.action, Binding: ev, Tier: TierExact}, true
	}

	var (
		best      Match
		bestScore fuzzyScore
		found     bool
	)
	for b, c := range r.owners {
		if b.Code != ev.Code || b.Mods == key.ModNone || b.Mods&ev.Mods == 0 {
			continue
		}
		if r.actions[c.action] == nil {
			continue
		}
		score := fuzzyScore{
			overlap: bits.OnesCount32(uint32(b.Mods & ev.Mods)),
			missing: bits.OnesCount32(uint32(b.Mods &^ ev.Mods)),
			seq:     c.seq,
		}
		if !found || score.better(bestScore) {
			best = Match{Action: c.action, Binding: b, Tier: TierFuzzy}
			bestScore = score
			found = true
		}
	}
	if found {
		return best, true
	}

	bare := ev.Bare()
	if c, ok := r.owners[bare]; ok && r.actions[c.action] != nil {
		return Match{Action: c.action, Binding: bare, Tier: TierBare}, true
	}

	return Match{}, false
}

type fuzzyScore struct {
	overlap int
	missing int
	seq     uint64
}

func (s fuzzyScore) better(o fuzzyScore) bool {
	if s.overlap != o.overlap {
		return s.overlap > o.overlap
	}
	if s.missing != o.missing {
		return s.missing < o.missing
	}
	return s.seq < o.seq
}

// Execute resolves ev and invokes the matching action. handled is true when
// an action ran; the caller should then stop further handling of the event.
// No match returns (false, nil).
func (r *Registry) Execute(ev key.Binding) (handled bool, err error) {
	m, ok := r.Lookup(ev)
	if !ok {
		return false, nil
	}

	r.log.Debug("%s -> %q (%s)", ev, m.Action, m.Tier)
	if err := r.actions[m.Action].Invoke(); err != nil {
		return true, opError("execute", m.Action, m.Binding.String(), err)
	}
	return true, nil
}

// EditBinding binds newSpec to name. With a non-empty oldSpec the new
// binding replaces the old one at the same position; otherwise it is
// appended. If another action owned the new binding it loses it, and that
// action's name is returned. The registry is saved before returning.
func (r *Registry) EditBinding(name, newSpec, oldSpec string) (string, error) {
	if !r.catalog.IsValid(name) {
		return "", opError("edit", name, newSpec, ErrUnknownAction)
	}
	nb, err := key.Parse(newSpec)
	if err != nil {
		return "", opError("edit", name, newSpec, malformed(err))
	}

	idx := -1
	var ob key.Binding
	if oldSpec != "" {
		ob, err = key.Parse(oldSpec)
		if err != nil {
			return "", opError("edit", name, oldSpec, malformed(err))
		}
		idx = slices.Index(r.lists[name], ob)
		if idx < 0 {
			return "", opError("edit", name, oldSpec, ErrNotBound)
		}
	}

	var previous string
	if c, ok := r.owners[nb]; ok && c.action != name {
		previous = c.action
		r.lists[previous] = slices.DeleteFunc(r.lists[previous], func(b key.Binding) bool { return b == nb })
		delete(r.owners, nb)
	}

	list := r.lists[name]
	if idx >= 0 {
		updated := make([]key.Binding, 0, len(list))
		for i, b := range list {
			switch {
			case i == idx:
				updated = append(updated, nb)
			case b != nb:
				updated = append(updated, b)
			}
		}
		r.lists[name] = updated
		if ob != nb {
			r.release(name, ob)
		}
	} else {
		r.lists[name] = appendUnique(list, nb)
	}

	if _, ok := r.owners[nb]; !ok {
		r.seq++
		r.owners[nb] = claim{action: name, seq: r.seq}
	}

	if err := r.save("edit", name); err != nil {
		return previous, err
	}
	return previous, nil
}

// ClearBinding removes spec from name's bindings and saves. The binding must
// be on name's list.
func (r *Registry) ClearBinding(name, spec string) error {
	if !r.catalog.IsValid(name) {
		return opError("clear", name, spec, ErrUnknownAction)
	}
	b, err := key.Parse(spec)
	if err != nil {
		return opError("clear", name, spec, malformed(err))
	}
	if !slices.Contains(r.lists[name], b) {
		return opError("clear", name, spec, ErrNotBound)
	}

	r.lists[name] = slices.DeleteFunc(r.lists[name], func(x key.Binding) bool { return x == b })
	r.release(name, b)

	return r.save("clear", name)
}

// BindingsFor returns a copy of name's bindings in order, shadowed ones
// included.
func (r *Registry) BindingsFor(name string) ([]key.Binding, error) {
	if !r.catalog.IsValid(name) {
		return nil, opError("bindings", name, "", ErrUnknownAction)
	}
	out := make([]key.Binding, len(r.lists[name]))
	copy(out, r.lists[name])
	return out, nil
}

// Owner returns the action that b triggers.
func (r *Registry) Owner(b key.Binding) (string, bool) {
	c, ok := r.owners[b]
	return c.action, ok
}

// Shadowed returns the bindings on name's list that another action owns.
func (r *Registry) Shadowed(name string) ([]key.Binding, error) {
	if !r.catalog.IsValid(name) {
		return nil, opError("shadowed", name, "", ErrUnknownAction)
	}
	var out []key.Binding
	for _, b := range r.lists[name] {
		if c, ok := r.owners[b]; ok && c.action != name {
			out = append(out, b)
		}
	}
	return out, nil
}

// Conflicts returns every shadowed binding, in catalog order.
func (r *Registry) Conflicts() []Conflict {
	var out []Conflict
	for _, name := range r.catalog.Names() {
		for _, b := range r.lists[name] {
			if c, ok := r.owners[b]; ok && c.action != name {
				out = append(out, Conflict{Binding: b, Owner: c.action, Claimant: name})
			}
		}
	}
	return out
}

// Document returns the current bindings in persisted form: every catalog
// action with its full list.
func (r *Registry) Document() Document {
	doc := make(Document, r.catalog.Len())
	for _, name := range r.catalog.Names() {
		specs := make([]string, 0, len(r.lists[name]))
		for _, b := range r.lists[name] {
			specs = append(specs, key.Format(b))
		}
		doc[name] = specs
	}
	return doc
}

// save writes the document. On failure the in-memory state is kept.
func (r *Registry) save(op, name string) error {
	doc := r.Document()
	if err := r.store.Save(doc); err != nil {
		r.log.Error("couldn't save keybindings: %v", err)
		return opError(op, name, "", fmt.Errorf("%w: %w", ErrPersist, err))
	}
	r.lastSaved = doc
	return nil
}

// Reload re-reads the store and rebuilds the bindings, keeping installed
// actions. Actions missing from the document fall back to the defaults they
// were registered with. A document equal to the last one saved by this
// registry is ignored. If the store cannot be read the current bindings are
// kept and the error is returned.
func (r *Registry) Reload() error {
	doc, err := r.store.Load()
	if doc == nil && err != nil {
		r.log.Error("couldn't reload keybindings: %v", err)
		return opError("reload", "", "", err)
	}
	if err == nil && r.lastSaved != nil && doc.Equal(r.lastSaved) {
		r.log.Debug("keybindings unchanged, skipping reload")
		return nil
	}

	r.install(doc, err, true)
	r.log.Info("keybindings reloaded")
	return nil
}

func appendUnique(list []key.Binding, b key.Binding) []key.Binding {
	if slices.Contains(list, b) {
		return list
	}
	return append(list, b)
}
