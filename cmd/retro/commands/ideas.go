package commands

import (
	"context"

	"github.com/dyluth/retro/internal/actions"
	"github.com/dyluth/retro/internal/printer"
	"github.com/spf13/cobra"
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "List ideas and the controls you may use on them",
	Long: `List the ideas of the session file together with the controls the
configured user is offered for each one.

Ideas being edited or awaiting deletion show their edit and remove controls
as disabled. Only the facilitator sees the announcement or ban control.`,
	Args: cobra.NoArgs,
	RunE: runIdeas,
}

func init() {
	rootCmd.AddCommand(ideasCmd)
}

func runIdeas(cmd *cobra.Command, args []string) error {
	s, err := loadSession(context.Background(), false)
	if err != nil {
		return err
	}

	ideas := s.board.Ideas()
	if len(ideas) == 0 {
		printer.Info("No ideas in session %s\n", s.cfg.Session)
		return nil
	}

	for _, idea := range ideas {
		var names []string
		for _, c := range actions.BuildControls(s.cfg.User, idea).Available() {
			if c.Disabled {
				names = append(names, c.Name+" (disabled)")
				continue
			}
			names = append(names, c.Name)
		}
		printer.Idea(idea, names)
	}
	return nil
}
