package retro

import (
	"context"
	"encoding/json"
)

// Handler receives the raw payload of one event.
type Handler func(payload json.RawMessage)

// Channel is a bidirectional publish/subscribe endpoint bound to one session.
//
// Push is fire-and-forget: it returns once the message is handed to the
// transport and never waits for other participants. Implementations must not
// retry; delivery policy belongs to the transport.
type Channel interface {
	Push(ctx context.Context, event string, payload any) error
	On(event string, handler Handler)
}
