package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/dshills/keybind/internal/input/catalog"
)

// AppName names the configuration directory.
const AppName = "keybind"

// Default file names inside the configuration directory.
const (
	ConfigFileName   = "config.toml"
	BindingsFileName = "keybindings.json"
)

// Config is the complete application configuration.
type Config struct {
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Logging     LoggingConfig     `toml:"logging"`
	UI          UIConfig          `toml:"ui"`

	// Commands maps a command slot ("1".."9") to a Lua snippet.
	Commands map[string]string `toml:"commands"`
}

// KeybindingsConfig locates the persisted bindings document.
type KeybindingsConfig struct {
	// Path is the bindings file. A ".yaml" or ".yml" extension selects YAML.
	Path string `toml:"path"`
	// Watch reloads the bindings when the file changes on disk.
	Watch bool `toml:"watch"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File receives log output. Empty means stderr.
	File string `toml:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Language is a BCP 47 tag used for action titles.
	Language string `toml:"language"`
}

// Dir returns the keybind configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "", fmt.Errorf("%w: %v", ErrNoConfigDir, err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	dir, err := Dir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(dir, ConfigFileName)
}

// Default returns the built-in configuration.
func Default() *Config {
	bindings := BindingsFileName
	if dir, err := Dir(); err == nil {
		bindings = filepath.Join(dir, BindingsFileName)
	}
	return &Config{
		Keybindings: KeybindingsConfig{
			Path:  bindings,
			Watch: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			Language: "en",
		},
		Commands: make(map[string]string),
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment, then validates it. A missing file leaves the defaults in
// place.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(path, data); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.Keybindings.Path = expandHome(cfg.Keybindings.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults without consulting the
// environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode("<reader>", data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals data onto c. Unknown keys are rejected.
func (c *Config) decode(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			pe.Line, pe.Column = derr.Position()
		case errors.As(err, &serr) && len(serr.Errors) > 0:
			pe.Line, pe.Column = serr.Errors[0].Position()
			pe.Message = "unknown key " + strings.Join(serr.Errors[0].Key(), ".")
		}
		return pe
	}
	if c.Commands == nil {
		c.Commands = make(map[string]string)
	}
	return nil
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// envVar binds an environment variable to a setting.
type envVar struct {
	name string
	path string
	set  func(c *Config, v string) error
}

var envVars = []envVar{
	{"KEYBIND_BINDINGS_PATH", "keybindings.path", func(c *Config, v string) error {
		c.Keybindings.Path = v
		return nil
	}},
	{"KEYBIND_WATCH", "keybindings.watch", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Keybindings.Watch = b
		return nil
	}},
	{"KEYBIND_LOG_LEVEL", "logging.level", func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	}},
	{"KEYBIND_LOG_FILE", "logging.file", func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	}},
	{"KEYBIND_LANG", "ui.language", func(c *Config, v string) error {
		c.UI.Language = v
		return nil
	}},
}

// applyEnv overrides settings from the environment.
// Empty values are treated as set.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for _, ev := range envVars {
		v, ok := lookup(ev.name)
		if !ok {
			continue
		}
		if err := ev.set(c, v); err != nil {
			return &ValidationError{
				Path:    ev.path,
				Message: fmt.Sprintf("from %s: %v", ev.name, err),
				Value:   v,
			}
		}
	}
	return nil
}

// LogLevels lists the accepted logging.level values.
var LogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Keybindings.Path == "" {
		errs = append(errs, &ValidationError{
			Path: "keybindings.path", Message: "must not be empty", Value: `""`,
		})
	}

	if !slices.Contains(LogLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of " + strings.Join(LogLevels, ", "),
			Value:   c.Logging.Level,
		})
	}

	if _, err := language.Parse(c.UI.Language); err != nil {
		errs = append(errs, &ValidationError{
			Path: "ui.language", Message: "not a language tag", Value: c.UI.Language,
		})
	}

	seen := make(map[string]string, len(c.Commands))
	for _, slot := range slices.Sorted(maps.Keys(c.Commands)) {
		action, ok := CommandAction(slot)
		if !ok {
			errs = append(errs, &ValidationError{
				Path:    "commands." + slot,
				Message: fmt.Sprintf("slot must be 1..%d", catalog.CommandSlots),
				Value:   slot,
			})
			continue
		}
		if prev, dup := seen[action]; dup {
			errs = append(errs, &ValidationError{
				Path:    "commands." + slot,
				Message: fmt.Sprintf("same slot as commands.%s", prev),
				Value:   slot,
			})
			continue
		}
		seen[action] = slot
	}

	return errors.Join(errs...)
}

// CommandAction returns the catalog action name for a command slot key.
// Keys are decimal slot numbers; "01" and "1" name the same slot.
func CommandAction(slot string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(slot))
	if err != nil || n < 1 || n > catalog.CommandSlots {
		return "", false
	}
	return catalog.CommandActionName(n), true
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
