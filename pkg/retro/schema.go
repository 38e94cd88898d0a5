package retro

import "fmt"

// Event names carried in Envelope.Event.
const (
	// EventIdeaHighlightToggled is pushed by the facilitator to spotlight an idea
	// or remove the spotlight. Other clients depend on this exact literal.
	EventIdeaHighlightToggled = "idea_highlight_toggled"
)

// SessionTopic returns the Pub/Sub channel name for a session.
// Pattern: retro:{session_id}
func SessionTopic(sessionID string) string {
	return fmt.Sprintf("retro:%s", sessionID)
}
