package actions

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dyluth/retro/pkg/retro"
)

// DeleteConfirmMessage is shown before an idea is submitted for deletion.
const DeleteConfirmMessage = "Are you sure you want to delete this idea?"

// ErrNilCollaborator is returned by NewController when a dependency is missing.
var ErrNilCollaborator = errors.New("nil collaborator")

// IdeaActions is the dispatch surface of the embedding application.
// The controller calls each method at most once per activation.
type IdeaActions interface {
	InitiateIdeaEditState(ctx context.Context, ideaID int) error
	SubmitIdeaDeletionAsync(ctx context.Context, ideaID int) error
}

// ConfirmFunc asks the user a yes/no question and blocks until answered.
// A dismissed prompt must report false.
type ConfirmFunc func(message string) bool

// DeletionState is the state of the one-shot deletion machine.
type DeletionState int

const (
	// DeletionIdle means nothing happened: the control was inert
	DeletionIdle DeletionState = iota

	// DeletionAwaitingConfirmation is held while the prompt is open
	DeletionAwaitingConfirmation

	// DeletionSubmitted means the deletion intent was dispatched
	DeletionSubmitted

	// DeletionCancelled means the user declined; nothing was dispatched
	DeletionCancelled
)

func (s DeletionState) String() string {
	switch s {
	case DeletionIdle:
		return "idle"
	case DeletionAwaitingConfirmation:
		return "awaiting_confirmation"
	case DeletionSubmitted:
		return "submitted"
	case DeletionCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("DeletionState(%d)", int(s))
	}
}

// Controller turns control activations into local intents or channel messages
// on behalf of one user. It keeps no idea state between calls: every
// activation re-evaluates permissions against the idea it is given.
type Controller struct {
	user     retro.User
	channel  retro.Channel
	dispatch IdeaActions
	confirm  ConfirmFunc
}

// NewController wires a controller for user. The channel is borrowed; the
// caller keeps ownership and closes it.
func NewController(user retro.User, channel retro.Channel, dispatch IdeaActions, confirm ConfirmFunc) (*Controller, error) {
	if channel == nil {
		return nil, fmt.Errorf("channel: %w", ErrNilCollaborator)
	}
	if dispatch == nil {
		return nil, fmt.Errorf("idea actions: %w", ErrNilCollaborator)
	}
	if confirm == nil {
		return nil, fmt.Errorf("confirm func: %w", ErrNilCollaborator)
	}

	return &Controller{
		user:     user,
		channel:  channel,
		dispatch: dispatch,
		confirm:  confirm,
	}, nil
}

// User returns the user the controller acts for.
func (c *Controller) User() retro.User {
	return c.user
}

// Controls returns the affordances currently offered for idea.
func (c *Controller) Controls(idea retro.Idea) Controls {
	return BuildControls(c.user, idea)
}

// Edit dispatches an edit-state intent for idea. It reports false without
// dispatching anything when the idea is locked.
func (c *Controller) Edit(ctx context.Context, idea retro.Idea) (bool, error) {
	if !Evaluate(c.user, idea).CanEdit {
		log.Printf("[Actions] Edit ignored for idea %d: idea is locked", idea.ID)
		return false, nil
	}

	if err := c.dispatch.InitiateIdeaEditState(ctx, idea.ID); err != nil {
		return true, fmt.Errorf("failed to initiate edit of idea %d: %w", idea.ID, err)
	}

	log.Printf("[Actions] Edit initiated for idea %d by user %d", idea.ID, c.user.ID)
	return true, nil
}

// Delete runs the deletion machine for idea and returns the state it ended in.
// Locked ideas stay DeletionIdle and no prompt is shown. The idea's
// DeletionSubmitted flag is left for the store to set.
func (c *Controller) Delete(ctx context.Context, idea retro.Idea) (DeletionState, error) {
	if !Evaluate(c.user, idea).CanDelete {
		log.Printf("[Actions] Delete ignored for idea %d: idea is locked", idea.ID)
		return DeletionIdle, nil
	}

	// DeletionAwaitingConfirmation holds for as long as confirm blocks.
	if !c.confirm(DeleteConfirmMessage) {
		log.Printf("[Actions] Delete of idea %d declined by user %d", idea.ID, c.user.ID)
		return DeletionCancelled, nil
	}

	// The intent has been emitted even if the dispatcher rejects it.
	if err := c.dispatch.SubmitIdeaDeletionAsync(ctx, idea.ID); err != nil {
		return DeletionSubmitted, fmt.Errorf("failed to submit deletion of idea %d: %w", idea.ID, err)
	}

	log.Printf("[Actions] Deletion submitted for idea %d by user %d", idea.ID, c.user.ID)
	return DeletionSubmitted, nil
}

// Highlighter returns the spotlight bridge. Only facilitators get one; for
// everybody else there is no path that can publish a toggle.
func (c *Controller) Highlighter() (*HighlightBridge, bool) {
	if !c.user.IsFacilitator {
		return nil, false
	}
	return &HighlightBridge{channel: c.channel, user: c.user}, true
}
