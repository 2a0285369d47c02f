package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
)

func newResolveCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <binding>",
		Short: "Show which action a key press would run",
		Long: `Resolve a key press the way the reader does, without running anything.

The exact binding is tried first, then a stored binding on the same key
whose modifiers overlap, then the unmodified key. The output names the
action and which of the three matched.

Examples:
  keybind resolve Page_Down
  keybind resolve "<Shift><Control>Page_Down"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := key.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", keymap.ErrMalformedBinding, err)
			}

			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			tr := a.Translator()
			w := cmd.OutOrStdout()

			m, ok := a.Registry().Lookup(b)
			if !ok {
				_, _ = fmt.Fprintln(w, mutedStyle.Render(tr.T("cli.unresolved", map[string]any{
					"Binding": key.Format(b),
				})))
				return nil
			}

			_, _ = fmt.Fprintln(w, okStyle.Render(tr.T("cli.resolved", map[string]any{
				"Binding": key.Format(b),
				"Action":  m.Action,
				"Tier":    m.Tier.String(),
			})))
			if m.Binding != b {
				_, _ = fmt.Fprintf(w, "%s: %s\n", tr.T("Match"), key.Format(m.Binding))
			}
			return nil
		},
	}

	return cmd
}
