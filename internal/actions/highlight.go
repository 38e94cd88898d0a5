package actions

import (
	"context"
	"fmt"
	"log"

	"github.com/dyluth/retro/pkg/retro"
)

// HighlightBridge publishes spotlight toggles for a facilitator.
// Obtain one from Controller.Highlighter.
type HighlightBridge struct {
	channel retro.Channel
	user    retro.User
}

// Toggle publishes exactly one idea_highlight_toggled message carrying the
// negation of idea.IsHighlighted as read now. The idea is not modified: the
// new state comes back through the channel subscription.
func (b *HighlightBridge) Toggle(ctx context.Context, idea retro.Idea) (retro.HighlightToggled, error) {
	msg := retro.HighlightToggled{
		ID:            idea.ID,
		IsHighlighted: !idea.IsHighlighted,
	}

	if err := b.channel.Push(ctx, retro.EventIdeaHighlightToggled, msg); err != nil {
		return msg, fmt.Errorf("failed to push highlight toggle for idea %d: %w", idea.ID, err)
	}

	log.Printf("[Actions] Highlight of idea %d set to %t by facilitator %d", idea.ID, msg.IsHighlighted, b.user.ID)
	return msg, nil
}
