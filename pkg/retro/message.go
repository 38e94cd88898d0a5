package retro

import (
	"encoding/json"
	"fmt"
)

// Envelope is the unit published on a session channel.
// Payload is kept raw so that handlers decode only the events they understand.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// HighlightToggled is the payload of EventIdeaHighlightToggled.
// IsHighlighted is the new spotlight state, not the previous one.
type HighlightToggled struct {
	ID            int  `json:"id"`
	IsHighlighted bool `json:"isHighlighted"`
}

// NewEnvelope marshals payload and wraps it with the event name.
func NewEnvelope(event string, payload any) (*Envelope, error) {
	if event == "" {
		return nil, fmt.Errorf("event name cannot be empty")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}

	return &Envelope{Event: event, Payload: raw}, nil
}

// DecodeEnvelope parses a message read from a session channel.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	if env.Event == "" {
		return nil, fmt.Errorf("envelope has no event name")
	}
	return &env, nil
}

// DecodeHighlightToggled parses an EventIdeaHighlightToggled payload.
func DecodeHighlightToggled(payload json.RawMessage) (*HighlightToggled, error) {
	var msg HighlightToggled
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payload: %w", EventIdeaHighlightToggled, err)
	}
	if msg.ID < 1 {
		return nil, fmt.Errorf("invalid %s payload: idea ID must be >= 1, got %d", EventIdeaHighlightToggled, msg.ID)
	}
	return &msg, nil
}
