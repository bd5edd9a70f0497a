package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/permrank/pkg/scheme"
)

// schemesCommand creates the schemes command.
func (c *CLI) schemesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List the available ranking schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type info struct {
				Name        string `json:"name"`
				Description string `json:"description"`
				Ordered     bool   `json:"ordered"`
				Repetition  bool   `json:"repetition"`
				First       string `json:"first"`
			}
			var all []info
			for _, s := range scheme.All() {
				all = append(all, info{
					Name:        s.Name(),
					Description: s.Description(),
					Ordered:     s.Ordered(),
					Repetition:  s.Repetition(),
					First:       s.First().String(),
				})
			}
			if asJSON {
				return printJSON(all)
			}

			rows := make([][]string, len(all))
			for i, s := range all {
				name := s.Name
				if name == scheme.Default {
					name += " *"
				}
				rows[i] = []string{name, yesNo(s.Ordered), yesNo(s.Repetition), s.First, s.Description}
			}
			printTable([]string{"Scheme", "Lexicographic", "Repetition", "First", "Description"}, rows)
			printDetail("* default; override with --scheme or [defaults] scheme in the config file")
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
