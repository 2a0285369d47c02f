// Package cli implements the keybind command line: inspecting and editing
// the stored keybindings, and running the terminal reader.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/app"
)

// Version information (set via ldflags during build).
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath   string
	bindingsPath string
	logLevel     string
	lang         string
}

// appOptions converts the flags into application options. Log lines go to
// the command's error stream.
func (g *globalOptions) appOptions(cmd *cobra.Command) app.Options {
	return app.Options{
		ConfigPath:   g.configPath,
		BindingsPath: g.bindingsPath,
		LogLevel:     g.logLevel,
		Language:     g.lang,
		LogOutput:    cmd.ErrOrStderr(),
	}
}

// openApp builds the application for a one-shot command. The bindings file
// is not watched.
func (g *globalOptions) openApp(cmd *cobra.Command) (*app.App, error) {
	opts := g.appOptions(cmd)
	opts.NoWatch = true
	return app.New(opts)
}

// NewRootCommand creates the root cobra command for keybind
func NewRootCommand() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "keybind",
		Short: "keybind - dynamic keybindings for a terminal reader",
		Long: `keybind maps key presses to reader actions through a user-editable
binding registry. Bindings are stored as JSON (or YAML) and can be edited
from the command line or by hand while the reader is running.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Configuration file (default: <user config dir>/keybind/config.toml)")
	cmd.PersistentFlags().StringVar(&g.bindingsPath, "bindings", "", "Keybindings file, overrides keybindings.path")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.lang, "lang", "", "Display language, e.g. en or de")

	// Add subcommands
	cmd.AddCommand(newListCommand(g))
	cmd.AddCommand(newShowCommand(g))
	cmd.AddCommand(newEditCommand(g))
	cmd.AddCommand(newClearCommand(g))
	cmd.AddCommand(newResolveCommand(g))
	cmd.AddCommand(newFindCommand(g))
	cmd.AddCommand(newRunCommand(g))
	cmd.AddCommand(newConfigCommand(g))
	cmd.AddCommand(newLanguagesCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
