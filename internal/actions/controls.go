package actions

import "github.com/dyluth/retro/pkg/retro"

// Control is one actionable affordance next to an idea.
type Control struct {
	Name     string // edit, remove, announcement or ban
	Title    string
	Disabled bool
}

// Controls is the set of affordances offered for an idea.
// Highlight is nil when the user may not spotlight ideas.
type Controls struct {
	Edit      Control
	Delete    Control
	Highlight *Control
}

// BuildControls maps Evaluate's decision onto the affordances a client shows.
func BuildControls(user retro.User, idea retro.Idea) Controls {
	p := Evaluate(user, idea)

	c := Controls{
		Edit:   Control{Name: "edit", Title: "Edit Idea", Disabled: !p.CanEdit},
		Delete: Control{Name: "remove", Title: "Delete Idea", Disabled: !p.CanDelete},
	}

	if !p.CanAnnounce {
		return c
	}

	switch p.HighlightIcon {
	case IconSuppress:
		c.Highlight = &Control{Name: "ban", Title: "Remove Highlight"}
	default:
		c.Highlight = &Control{Name: "announcement", Title: "Highlight Idea"}
	}

	return c
}

// Available returns the controls in display order, skipping absent ones.
func (c Controls) Available() []Control {
	out := []Control{c.Edit, c.Delete}
	if c.Highlight != nil {
		out = append(out, *c.Highlight)
	}
	return out
}
