package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/input/key"
)

func newShowCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <action>",
		Short: "Show the keybindings of one action",
		Long: `Show every binding on an action's list in order, with its readable
label and, for shadowed bindings, the action that currently owns it.

Examples:
  keybind show "zoom in"
  keybind show "execute command 3"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			reg := a.Registry()
			tr := a.Translator()

			bindings, err := reg.BindingsFor(name)
			if err != nil {
				return err
			}
			entry, _ := a.Catalog().Lookup(name)

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s (%s)\n", groupStyle.Render(tr.Title(entry)), name)
			if len(bindings) == 0 {
				_, _ = fmt.Fprintln(w, titleStyle.Render(mutedStyle.Render(tr.T("unbound"))))
				return nil
			}

			for _, b := range bindings {
				line := titleStyle.Render(bindingStyle.Render(key.Format(b))) + b.Label()
				if owner, ok := reg.Owner(b); ok && owner != name {
					ownerEntry, _ := a.Catalog().Lookup(owner)
					line += "  " + mutedStyle.Render(fmt.Sprintf("%s: %s", tr.T("shadowed"), tr.Title(ownerEntry)))
				}
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	return cmd
}
