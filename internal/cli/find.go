package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/input/search"
)

func newFindCommand(g *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <query>...",
		Short: "Find actions by title or name",
		Long: `Fuzzy-search the editable actions by their displayed title or their
action name, best match first, and show their keybindings.

Examples:
  keybind find zoom
  keybind find --limit 3 scroll top
  keybind find --lang de seite`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			tr := a.Translator()
			var candidates []search.Candidate
			for _, group := range a.Catalog().Groups() {
				for _, e := range group.Entries {
					candidates = append(candidates, search.Candidate{Name: e.Name, Title: tr.Title(e)})
				}
			}

			w := cmd.OutOrStdout()
			results := search.Match(strings.Join(args, " "), candidates, limit)
			if len(results) == 0 {
				_, _ = fmt.Fprintln(w, mutedStyle.Render(tr.T("No matching actions")))
				return nil
			}

			for _, r := range results {
				title := search.Highlight(r, groupStyle.Render)
				pad := max(titleWidth-2-len([]rune(r.Title)), 1)
				_, _ = fmt.Fprintf(w, "  %s%s%s  %s\n",
					title, strings.Repeat(" ", pad),
					formatBindings(a.Registry(), tr, r.Name),
					mutedStyle.Render("("+r.Name+")"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results (0 for all)")

	return cmd
}
