// Package testutil holds shared fixtures for tests that need a session
// channel backed by an in-process Redis.
package testutil

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/retro/pkg/retro"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// SessionID is a fixed session UUID for tests
const SessionID = "3f2b8c1e-6d4a-4b7e-9a51-0c2d7e8f9a10"

// StartRedis runs a miniredis server that is closed when the test ends.
func StartRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

// NewClient connects a channel client for sessionID to mr.
func NewClient(t *testing.T, mr *miniredis.Miniredis, sessionID string) *retro.Client {
	t.Helper()

	client, err := retro.NewClient(&redis.Options{Addr: mr.Addr()}, sessionID)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

// Listen subscribes a separate participant to the session topic of sessionID.
func Listen(t *testing.T, mr *miniredis.Miniredis, sessionID string) *retro.Subscription {
	t.Helper()

	sub, err := NewClient(t, mr, sessionID).Subscribe(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { sub.Close() })
	return sub
}
