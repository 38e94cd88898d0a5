package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dyluth/retro/internal/actions"
	"github.com/dyluth/retro/internal/printer"
	"github.com/dyluth/retro/internal/watch"
	"github.com/spf13/cobra"
)

var (
	deleteAssumeYes bool
	highlightWait   time.Duration
)

var editCmd = &cobra.Command{
	Use:   "edit <idea-id>",
	Short: "Put an idea into edit state",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <idea-id>",
	Short: "Submit an idea for deletion",
	Long: `Submit an idea for deletion after a yes/no confirmation.

Without a terminal the prompt cannot be answered and counts as declined;
pass --yes to confirm non-interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var highlightCmd = &cobra.Command{
	Use:   "highlight <idea-id>",
	Short: "Toggle the spotlight on an idea (facilitator only)",
	Long: `Toggle the spotlight on an idea for every participant of the session.

The new state is the opposite of the idea's current state and is pushed
once on the session channel as an idea_highlight_toggled event.

Examples:
  # Spotlight idea 666
  retro highlight 666

  # Spotlight and wait until the change comes back over the channel
  retro highlight 666 --wait 2s`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlight,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteAssumeYes, "yes", "y", false, "Confirm deletion without prompting")
	highlightCmd.Flags().DurationVar(&highlightWait, "wait", 0, "Wait up to this long for the toggle to echo back (0 = don't wait)")
	rootCmd.AddCommand(editCmd, deleteCmd, highlightCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, err := loadSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	idea, err := s.idea(args[0])
	if err != nil {
		return err
	}

	ctrl, err := s.controller(false)
	if err != nil {
		return err
	}

	ok, err := ctrl.Edit(ctx, idea)
	if err != nil {
		return printer.Error("edit failed", err.Error(), nil)
	}
	if !ok {
		printer.Warning("Idea #%d is locked: it is being edited or awaits deletion\n", idea.ID)
		return nil
	}

	printer.Success("Idea #%d is now in edit state\n", idea.ID)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, err := loadSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	idea, err := s.idea(args[0])
	if err != nil {
		return err
	}

	ctrl, err := s.controller(deleteAssumeYes)
	if err != nil {
		return err
	}

	state, err := ctrl.Delete(ctx, idea)
	if err != nil {
		return printer.Error("deletion failed", err.Error(), nil)
	}

	switch state {
	case actions.DeletionSubmitted:
		printer.Success("Idea #%d submitted for deletion\n", idea.ID)
	case actions.DeletionCancelled:
		printer.Info("Deletion of idea #%d cancelled\n", idea.ID)
	default:
		printer.Warning("Idea #%d is locked: it is being edited or awaits deletion\n", idea.ID)
	}
	return nil
}

func runHighlight(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, err := loadSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	idea, err := s.idea(args[0])
	if err != nil {
		return err
	}

	ctrl, err := s.controller(false)
	if err != nil {
		return err
	}

	bridge, ok := ctrl.Highlighter()
	if !ok {
		return printer.Error(
			"highlighting is facilitator-only",
			fmt.Sprintf("User %d is not the facilitator of session %s.", s.cfg.User.ID, s.cfg.Session),
			[]string{"Ask the facilitator to spotlight the idea"},
		)
	}

	if highlightWait > 0 {
		listenCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		sub, err := s.client.Subscribe(listenCtx)
		if err != nil {
			return fmt.Errorf("failed to subscribe to session: %w", err)
		}
		s.board.Attach(s.client)
		go s.client.Serve(listenCtx, sub)
	}

	msg, err := bridge.Toggle(ctx, idea)
	if err != nil {
		return printer.Error("highlight failed", err.Error(), nil)
	}

	if highlightWait > 0 {
		if _, err := watch.WaitForHighlight(ctx, s.board, idea.ID, msg.IsHighlighted, highlightWait); err != nil {
			return printer.Error("highlight not confirmed", err.Error(), []string{"Check that the session channel is reachable:\n  retro watch"})
		}
	}

	if msg.IsHighlighted {
		printer.Success("Idea #%d highlighted\n", idea.ID)
	} else {
		printer.Success("Highlight removed from idea #%d\n", idea.ID)
	}
	return nil
}
