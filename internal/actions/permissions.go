// Package actions decides what a participant may do with a single idea and
// carries out the permitted action: starting an edit, submitting a deletion
// behind a confirmation prompt, or toggling the facilitator spotlight over the
// session channel.
package actions

import "github.com/dyluth/retro/pkg/retro"

// IconVariant selects which of the two highlight affordances is offered.
type IconVariant string

const (
	// IconAnnounce is offered when the idea is not highlighted
	IconAnnounce IconVariant = "announce"

	// IconSuppress is offered when the idea is highlighted
	IconSuppress IconVariant = "suppress"
)

// Permissions is the decision record for one (user, idea) pair.
type Permissions struct {
	// Locked is true while the idea is being edited or awaits deletion.
	// Edit and delete share it, so they are never enabled independently.
	Locked bool

	CanEdit     bool
	CanDelete   bool
	CanAnnounce bool

	HighlightIcon IconVariant
}

// Evaluate computes the permissions of user on idea. It is pure; callers pass
// the current user and idea on every evaluation instead of caching the result.
func Evaluate(user retro.User, idea retro.Idea) Permissions {
	locked := idea.InEditState || idea.DeletionSubmitted

	icon := IconAnnounce
	if idea.IsHighlighted {
		icon = IconSuppress
	}

	return Permissions{
		Locked:        locked,
		CanEdit:       !locked,
		CanDelete:     !locked,
		CanAnnounce:   user.IsFacilitator,
		HighlightIcon: icon,
	}
}
