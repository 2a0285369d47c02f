package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/input/key"
)

func newEditCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <action> <binding> [old-binding]",
		Short: "Bind a key to an action",
		Long: `Bind a key to an action and save the keybindings file.

With old-binding the new key replaces it in place; otherwise the new key is
appended. If another action owned the key it loses it.

Bindings use accelerator notation (<Control>s, <Shift>Page_Down) or the
modifier style (Ctrl+S).

Examples:
  keybind edit "zoom in" z
  keybind edit "next page" n Page_Down
  keybind edit "execute command 1" "<Control>1"`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, spec := args[0], args[1]
			var old string
			if len(args) == 3 {
				old = args[2]
			}

			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			previous, err := a.Registry().EditBinding(name, spec, old)
			if err != nil {
				return err
			}

			tr := a.Translator()
			binding, _ := key.Normalize(spec)
			w := cmd.OutOrStdout()
			if previous != "" {
				_, _ = fmt.Fprintln(w, mutedStyle.Render(tr.T("cli.cleared", map[string]any{
					"Binding": binding,
					"Action":  previous,
				})))
			}
			_, _ = fmt.Fprintln(w, okStyle.Render(tr.T("cli.edited", map[string]any{
				"Binding": binding,
				"Action":  name,
			})))
			return nil
		},
	}

	return cmd
}

func newClearCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <action> <binding>",
		Short: "Remove a key from an action",
		Long: `Remove a binding from an action's list and save the keybindings file.
If another action also lists the key, that action takes it over.

Examples:
  keybind clear "zoom in" equal`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, spec := args[0], args[1]

			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Registry().ClearBinding(name, spec); err != nil {
				return err
			}

			binding, _ := key.Normalize(spec)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(a.Translator().T("cli.cleared", map[string]any{
				"Binding": binding,
				"Action":  name,
			})))
			return nil
		},
	}

	return cmd
}
