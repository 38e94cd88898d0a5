package retro

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Client is a Redis Pub/Sub backed Channel scoped to one session.
// All messages travel on retro:{session_id}. The client is safe for concurrent use.
type Client struct {
	rdb       *redis.Client
	sessionID string
	topic     string

	mu       sync.RWMutex
	handlers map[string][]Handler
}

var _ Channel = (*Client)(nil)

// NewClient creates a channel client for the specified session.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - sessionID: retrospective session UUID
//
// Returns an error if sessionID is not a UUID.
func NewClient(redisOpts *redis.Options, sessionID string) (*Client, error) {
	if err := ValidateSessionID(sessionID); err != nil {
		return nil, err
	}

	return &Client{
		rdb:       redis.NewClient(redisOpts),
		sessionID: sessionID,
		topic:     SessionTopic(sessionID),
		handlers:  make(map[string][]Handler),
	}, nil
}

// Topic returns the Pub/Sub channel name this client publishes to.
func (c *Client) Topic() string {
	return c.topic
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Push publishes one event on the session topic.
// There is exactly one PUBLISH per call; failures are returned, not retried.
func (c *Client) Push(ctx context.Context, event string, payload any) error {
	env, err := NewEnvelope(event, payload)
	if err != nil {
		return err
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if err := c.rdb.Publish(ctx, c.topic, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event, err)
	}

	return nil
}

// On registers a handler for an event name. Several handlers may be registered
// for the same event; they run in registration order on the Serve goroutine.
func (c *Client) On(event string, handler Handler) {
	if handler == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], handler)
}

// Subscription represents an active Pub/Sub subscription to a session topic.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *Envelope
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of decoded envelopes.
// The channel is closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *Envelope {
	return s.events
}

// Errors returns the channel of decoding errors.
// The subscription continues after errors - malformed messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Implements io.Closer.
// Safe to call multiple times - subsequent calls are no-ops.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Subscribe subscribes to the session topic.
// It returns once Redis has confirmed the subscription, so messages published
// after Subscribe returns are delivered.
//
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once: a subscriber that falls behind may lose messages.
func (c *Client) Subscribe(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, c.topic)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", c.topic, err)
	}

	eventsChan := make(chan *Envelope, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				env, err := DecodeEnvelope([]byte(msg.Payload))
				if err != nil {
					select {
					case errorsChan <- err:
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- env:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// Serve dispatches envelopes from sub to the registered handlers until the
// context is cancelled or the subscription closes. Events without a handler
// are dropped.
func (c *Client) Serve(ctx context.Context, sub *Subscription) error {
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case env, ok := <-sub.Events():
			if !ok {
				return nil
			}
			c.dispatch(env)

		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			log.Printf("[Channel] Skipping malformed message on %s: %v", c.topic, err)
		}
	}
}

// Listen subscribes and serves handlers until the context is cancelled.
func (c *Client) Listen(ctx context.Context) error {
	sub, err := c.Subscribe(ctx)
	if err != nil {
		return err
	}
	return c.Serve(ctx, sub)
}

func (c *Client) dispatch(env *Envelope) {
	c.mu.RLock()
	handlers := append([]Handler(nil), c.handlers[env.Event]...)
	c.mu.RUnlock()

	for _, h := range handlers {
		h(env.Payload)
	}
}
