package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/retro/internal/board"
	"github.com/dyluth/retro/internal/testutil"
	"github.com/dyluth/retro/pkg/retro"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer shared with the streaming goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func setupClient(t *testing.T) (*retro.Client, *miniredis.Miniredis) {
	mr := testutil.StartRedis(t)
	return testutil.NewClient(t, mr, uuid.New().String()), mr
}

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			name:     "highlight on",
			event:    Event{Event: retro.EventIdeaHighlightToggled, Payload: json.RawMessage(`{"id":666,"isHighlighted":true}`)},
			expected: "📣 Idea Highlighted: #666",
		},
		{
			name:     "highlight off",
			event:    Event{Event: retro.EventIdeaHighlightToggled, Payload: json.RawMessage(`{"id":666,"isHighlighted":false}`)},
			expected: "🚫 Highlight Removed: #666",
		},
		{
			name:     "bad highlight payload",
			event:    Event{Event: retro.EventIdeaHighlightToggled, Payload: json.RawMessage(`{"isHighlighted":false}`)},
			expected: "⚠️  Bad idea_highlight_toggled payload",
		},
		{
			name:     "unknown event",
			event:    Event{Event: "idea_committed", Payload: json.RawMessage(`{"id":1}`)},
			expected: `📨 idea_committed: {"id":1}`,
		},
		{
			name:     "malformed message",
			event:    Event{Event: "malformed_message", Error: "failed to unmarshal envelope"},
			expected: "⚠️  Malformed message: failed to unmarshal envelope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(FormatEvent(tt.event), tt.expected), "got %q", FormatEvent(tt.event))
		})
	}
}

func TestStreamActivity(t *testing.T) {
	for _, format := range []OutputFormat{OutputFormatDefault, OutputFormatJSON} {
		client, mr := setupClient(t)
		ctx, cancel := context.WithCancel(context.Background())

		sub, err := client.Subscribe(ctx)
		require.NoError(t, err)

		var out syncBuffer
		done := make(chan int, 1)
		go func() {
			n, err := StreamActivity(ctx, sub, format, &out)
			assert.NoError(t, err)
			done <- n
		}()

		require.NoError(t, client.Push(ctx, retro.EventIdeaHighlightToggled, retro.HighlightToggled{ID: 666, IsHighlighted: true}))
		mr.Publish(client.Topic(), "{broken")

		require.Eventually(t, func() bool {
			return strings.Count(out.String(), "\n") >= 2
		}, time.Second, 10*time.Millisecond)

		cancel()
		n := <-done
		assert.Equal(t, 1, n)
		sub.Close()

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)

		if format == OutputFormatJSON {
			events := map[string]Event{}
			for _, line := range lines {
				var e Event
				require.NoError(t, json.Unmarshal([]byte(line), &e))
				events[e.Event] = e
			}
			require.Contains(t, events, retro.EventIdeaHighlightToggled)
			assert.JSONEq(t, `{"id":666,"isHighlighted":true}`, string(events[retro.EventIdeaHighlightToggled].Payload))
			require.Contains(t, events, "malformed_message")
			assert.NotEmpty(t, events["malformed_message"].Error)
		} else {
			assert.Contains(t, out.String(), "📣 Idea Highlighted: #666")
			assert.Contains(t, out.String(), "Malformed message")
		}
	}
}

func TestSummary(t *testing.T) {
	s := Summary(1234, time.Now().Add(-3*time.Minute))
	assert.Equal(t, "Stopped watching after 1,234 events (started 3 minutes ago)", s)
}

func TestWaitForHighlight(t *testing.T) {
	ctx := context.Background()

	t.Run("returns immediately when state already matches", func(t *testing.T) {
		b := board.New([]retro.Idea{{ID: 1, IsHighlighted: true}})
		idea, err := WaitForHighlight(ctx, b, 1, true, time.Second)
		require.NoError(t, err)
		assert.True(t, idea.IsHighlighted)
	})

	t.Run("returns after the channel echo arrives", func(t *testing.T) {
		b := board.New([]retro.Idea{{ID: 1}})
		go func() {
			time.Sleep(100 * time.Millisecond)
			b.ApplyHighlight(retro.HighlightToggled{ID: 1, IsHighlighted: true})
		}()

		idea, err := WaitForHighlight(ctx, b, 1, true, 2*time.Second)
		require.NoError(t, err)
		assert.True(t, idea.IsHighlighted)
	})

	t.Run("times out", func(t *testing.T) {
		b := board.New([]retro.Idea{{ID: 1}})
		_, err := WaitForHighlight(ctx, b, 1, true, 200*time.Millisecond)
		assert.ErrorContains(t, err, "timeout waiting for highlight of idea 1")
	})

	t.Run("fails for unknown idea", func(t *testing.T) {
		b := board.New(nil)
		_, err := WaitForHighlight(ctx, b, 5, true, time.Second)
		assert.ErrorIs(t, err, board.ErrIdeaNotFound)
	})
}
