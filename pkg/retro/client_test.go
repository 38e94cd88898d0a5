package retro

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestClient creates a test client connected to a miniredis instance
func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(&redis.Options{Addr: mr.Addr()}, uuid.New().String())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestNewClient(t *testing.T) {
	t.Run("creates client scoped to session topic", func(t *testing.T) {
		sessionID := uuid.New().String()
		client, err := NewClient(&redis.Options{Addr: "localhost:6379"}, sessionID)
		require.NoError(t, err)
		defer client.Close()
		assert.Equal(t, "retro:"+sessionID, client.Topic())
	})

	t.Run("rejects empty session ID", func(t *testing.T) {
		_, err := NewClient(&redis.Options{Addr: "localhost:6379"}, "")
		assert.ErrorContains(t, err, "session ID cannot be empty")
	})

	t.Run("rejects non-UUID session ID", func(t *testing.T) {
		_, err := NewClient(&redis.Options{Addr: "localhost:6379"}, "retro-42")
		assert.ErrorContains(t, err, "not a valid UUID")
	})
}

func TestPing(t *testing.T) {
	client, _ := setupTestClient(t)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestPushDeliversEnvelope(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	sub, err := client.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	err = client.Push(ctx, EventIdeaHighlightToggled, HighlightToggled{ID: 666, IsHighlighted: true})
	require.NoError(t, err)

	select {
	case env := <-sub.Events():
		assert.Equal(t, EventIdeaHighlightToggled, env.Event)
		assert.JSONEq(t, `{"id":666,"isHighlighted":true}`, string(env.Payload))
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for envelope")
	}
}

func TestPushFailsWhenRedisIsDown(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())

	client, err := NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}, uuid.New().String())
	require.NoError(t, err)
	defer client.Close()

	mr.Close()

	err = client.Push(context.Background(), EventIdeaHighlightToggled, HighlightToggled{ID: 1})
	assert.ErrorContains(t, err, "failed to publish idea_highlight_toggled event")
}

func TestSubscriptionSkipsMalformedMessages(t *testing.T) {
	client, mr := setupTestClient(t)
	ctx := context.Background()

	sub, err := client.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	mr.Publish(client.Topic(), "garbage")
	require.NoError(t, client.Push(ctx, EventIdeaHighlightToggled, HighlightToggled{ID: 2}))

	select {
	case err := <-sub.Errors():
		assert.ErrorContains(t, err, "failed to unmarshal envelope")
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for decode error")
	}

	select {
	case env := <-sub.Events():
		assert.Equal(t, EventIdeaHighlightToggled, env.Event)
	case <-time.After(1 * time.Second):
		t.Fatal("subscription stopped after malformed message")
	}
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	client, _ := setupTestClient(t)

	sub, err := client.Subscribe(context.Background())
	require.NoError(t, err)

	assert.NoError(t, sub.Close())
	assert.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(1 * time.Second):
		t.Fatal("events channel not closed after Close")
	}
}

func TestServeDispatchesToHandlers(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan HighlightToggled, 2)
	client.On(EventIdeaHighlightToggled, func(payload json.RawMessage) {
		msg, err := DecodeHighlightToggled(payload)
		if assert.NoError(t, err) {
			received <- *msg
		}
	})
	client.On("unrelated", func(json.RawMessage) {
		t.Error("handler for another event must not run")
	})
	client.On(EventIdeaHighlightToggled, nil)

	sub, err := client.Subscribe(ctx)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- client.Serve(ctx, sub) }()

	require.NoError(t, client.Push(ctx, EventIdeaHighlightToggled, HighlightToggled{ID: 666, IsHighlighted: false}))

	select {
	case msg := <-received:
		assert.Equal(t, HighlightToggled{ID: 666, IsHighlighted: false}, msg)
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for handler")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(1 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
