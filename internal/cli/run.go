package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/app"
)

func newRunCommand(g *globalOptions) *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the terminal reader",
		Long: `Run a small terminal reader driven by the keybindings.

The keybindings file is watched when keybindings.watch is set, and changes
made with "keybind edit" or by hand apply immediately. Press q or Ctrl+C to
quit unless those keys are bound.

Examples:
  keybind run
  keybind run --pages 300 --lang de`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := g.appOptions(cmd)
			opts.Pages = pages
			// The screen owns the terminal; log only to logging.file.
			opts.LogOutput = io.Discard

			a, err := app.New(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Run()
		},
	}

	cmd.Flags().IntVar(&pages, "pages", app.DefaultPages, "Length of the demo document")

	return cmd
}
