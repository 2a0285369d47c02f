package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/app"
	"github.com/dshills/keybind/internal/i18n"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
)

func newListCommand(g *globalOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List actions and their keybindings",
		Long: `List the editable actions by group with their keybindings.

A binding that another action already owns is marked as shadowed; it takes
effect once the owner lets go of it. External command slots without a
configured script are hidden unless --all is given.

Examples:
  keybind list
  keybind list --all --lang de`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			writeList(cmd.OutOrStdout(), a, all)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include actions with nothing to run")

	return cmd
}

func writeList(w io.Writer, a *app.App, all bool) {
	reg := a.Registry()
	tr := a.Translator()

	first := true
	for _, group := range a.Catalog().Groups() {
		var lines []string
		for _, e := range group.Entries {
			if !all && !reg.IsRegistered(e.Name) {
				continue
			}
			lines = append(lines, titleStyle.Render(tr.Title(e))+formatBindings(reg, tr, e.Name))
		}
		if len(lines) == 0 {
			continue
		}

		if !first {
			_, _ = fmt.Fprintln(w)
		}
		first = false

		_, _ = fmt.Fprintln(w, groupStyle.Render(tr.Group(group.Name)))
		for _, line := range lines {
			_, _ = fmt.Fprintln(w, line)
		}
	}
}

// formatBindings renders an action's bindings in order, marking the ones
// another action owns.
func formatBindings(reg *keymap.Registry, tr *i18n.Translator, name string) string {
	bindings, err := reg.BindingsFor(name)
	if err != nil || len(bindings) == 0 {
		return mutedStyle.Render(tr.T("unbound"))
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if owner, _ := reg.Owner(b); owner != name {
			parts = append(parts, mutedStyle.Render(fmt.Sprintf("%s (%s)", key.Format(b), tr.T("shadowed"))))
			continue
		}
		parts = append(parts, bindingStyle.Render(key.Format(b)))
	}
	return strings.Join(parts, ", ")
}
