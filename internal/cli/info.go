package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/i18n"
)

func newConfigCommand(g *globalOptions) *cobra.Command {
	var pathOnly bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the configuration file, the
KEYBIND_* environment variables and the command line flags are applied.

Examples:
  keybind config
  keybind config --path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if pathOnly {
				path := g.configPath
				if path == "" {
					path = config.DefaultPath()
				}
				_, _ = fmt.Fprintln(w, path)
				return nil
			}

			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := a.Config().Marshal()
			if err != nil {
				return err
			}
			_, _ = w.Write(data)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pathOnly, "path", false, "Print only the configuration file path")

	return cmd
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the available display languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, tag := range i18n.Available() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "keybind %s\n", Version)
			_, _ = fmt.Fprintf(w, "Commit: %s\n", Commit)
			_, _ = fmt.Fprintf(w, "Built: %s\n", Date)
		},
	}
}
