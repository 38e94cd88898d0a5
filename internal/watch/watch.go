package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dyluth/retro/internal/board"
	"github.com/dyluth/retro/pkg/retro"
)

// OutputFormat selects how StreamActivity renders events
type OutputFormat int

const (
	// OutputFormatDefault is human-readable with timestamps and emojis
	OutputFormatDefault OutputFormat = iota

	// OutputFormatJSON is line-delimited JSON
	OutputFormatJSON
)

// Event is one line of JSON output
type Event struct {
	Timestamp time.Time       `json:"timestamp"`
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// StreamActivity writes every envelope received on sub to w until the context
// is cancelled or the subscription closes. It returns the number of envelopes
// written.
func StreamActivity(ctx context.Context, sub *retro.Subscription, format OutputFormat, w io.Writer) (int, error) {
	count := 0

	for {
		select {
		case <-ctx.Done():
			return count, nil

		case env, ok := <-sub.Events():
			if !ok {
				return count, nil
			}
			if err := writeEvent(w, format, Event{Timestamp: time.Now(), Event: env.Event, Payload: env.Payload}); err != nil {
				return count, err
			}
			count++

		case err, ok := <-sub.Errors():
			if !ok {
				return count, nil
			}
			if werr := writeEvent(w, format, Event{Timestamp: time.Now(), Event: "malformed_message", Error: err.Error()}); werr != nil {
				return count, werr
			}
		}
	}
}

// FormatEvent renders an event for the default output format.
func FormatEvent(e Event) string {
	if e.Error != "" {
		return fmt.Sprintf("⚠️  Malformed message: %s", e.Error)
	}

	switch e.Event {
	case retro.EventIdeaHighlightToggled:
		msg, err := retro.DecodeHighlightToggled(e.Payload)
		if err != nil {
			return fmt.Sprintf("⚠️  Bad %s payload: %v", e.Event, err)
		}
		if msg.IsHighlighted {
			return fmt.Sprintf("📣 Idea Highlighted: #%d", msg.ID)
		}
		return fmt.Sprintf("🚫 Highlight Removed: #%d", msg.ID)
	default:
		return fmt.Sprintf("📨 %s: %s", e.Event, string(e.Payload))
	}
}

// Summary describes a finished watch session.
func Summary(count int, started time.Time) string {
	return fmt.Sprintf("Stopped watching after %s events (started %s)", humanize.Comma(int64(count)), humanize.Time(started))
}

// WaitForHighlight polls the board until idea id reports the wanted
// highlight state. Used to confirm that a pushed toggle came back over the
// channel. Polls every 50ms for the specified timeout duration.
func WaitForHighlight(ctx context.Context, b *board.Board, id int, want bool, timeout time.Duration) (retro.Idea, error) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	timeoutCh := time.After(timeout)

	for {
		idea, err := b.Get(id)
		if err != nil {
			return retro.Idea{}, err
		}
		if idea.IsHighlighted == want {
			return idea, nil
		}

		select {
		case <-ctx.Done():
			return idea, ctx.Err()
		case <-timeoutCh:
			return idea, fmt.Errorf("timeout waiting for highlight of idea %d after %v", id, timeout)
		case <-ticker.C:
		}
	}
}

func writeEvent(w io.Writer, format OutputFormat, e Event) error {
	var line string
	switch format {
	case OutputFormatJSON:
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		line = string(data)
	default:
		line = fmt.Sprintf("[%s] %s", e.Timestamp.Format("15:04:05"), FormatEvent(e))
	}

	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}
