package retro

import (
	"fmt"

	"github.com/google/uuid"
)

// User is a participant of a retrospective session.
// Users are supplied by the connection layer and do not change during a session.
type User struct {
	ID            int    `json:"id"             yaml:"id"`             // Unique within the session
	Token         string `json:"token"          yaml:"token"`          // Opaque auth token for the socket handshake
	IsFacilitator bool   `json:"is_facilitator" yaml:"is_facilitator"` // Facilitators may spotlight ideas
}

// Idea is a single card on the retrospective board.
// The boolean flags are owned by the surrounding store; this package only reads them.
type Idea struct {
	ID                int      `json:"id"                 yaml:"id"`                 // Stable across edits
	Body              string   `json:"body"               yaml:"body"`               // Free text
	UserID            int      `json:"user_id"            yaml:"user_id"`            // Author
	Category          Category `json:"category,omitempty" yaml:"category,omitempty"` // Optional column tag
	InEditState       bool     `json:"inEditState"        yaml:"inEditState"`        // Someone is editing it right now
	DeletionSubmitted bool     `json:"deletionSubmitted"  yaml:"deletionSubmitted"`  // Deletion requested, not yet confirmed
	IsHighlighted     bool     `json:"isHighlighted"      yaml:"isHighlighted"`      // Facilitator spotlight
}

// Category groups ideas into the board's columns.
type Category string

const (
	// CategoryHappy collects things that went well
	CategoryHappy Category = "happy"

	// CategorySad collects things that went badly
	CategorySad Category = "sad"

	// CategoryConfused collects open questions
	CategoryConfused Category = "confused"
)

// Validate checks if the Category is empty or a known column.
func (c Category) Validate() error {
	switch c {
	case "", CategoryHappy, CategorySad, CategoryConfused:
		return nil
	default:
		return fmt.Errorf("unknown category: %q", c)
	}
}

// Validate checks if the User has valid field values.
func (u *User) Validate() error {
	if u.ID < 1 {
		return fmt.Errorf("invalid user ID: must be >= 1, got %d", u.ID)
	}
	return nil
}

// Validate checks if the Idea has valid field values.
func (i *Idea) Validate() error {
	if i.ID < 1 {
		return fmt.Errorf("invalid idea ID: must be >= 1, got %d", i.ID)
	}

	if err := i.Category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	return nil
}

// ValidateSessionID checks that a session identifier is a UUID.
// Session topics are derived from it, so a malformed ID would silently
// route messages to the wrong channel.
func ValidateSessionID(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return fmt.Errorf("invalid session ID %q: not a valid UUID", sessionID)
	}
	return nil
}
