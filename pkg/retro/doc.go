// Package retro provides the shared session types and the real-time channel
// used by participants of a live retrospective.
//
// # Overview
//
// A retrospective session is a board of ideas that every connected participant
// sees. Changes that must reach all participants travel over a per-session
// Pub/Sub channel. Each message is an Envelope carrying an event name and a
// JSON payload.
//
// # Wire Contract
//
// The facilitator spotlights an idea by pushing:
//
//	event:   "idea_highlight_toggled"
//	payload: {"id": 666, "isHighlighted": true}
//
// Other clients must be able to decode this exact shape, so the event name and
// the payload field names never change.
//
// # Usage Example
//
//	client, err := retro.NewClient(&redis.Options{Addr: "localhost:6379"}, sessionID)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.On(retro.EventIdeaHighlightToggled, func(payload json.RawMessage) {
//		msg, err := retro.DecodeHighlightToggled(payload)
//		...
//	})
//	go client.Listen(ctx)
//
//	err = client.Push(ctx, retro.EventIdeaHighlightToggled, retro.HighlightToggled{ID: 666, IsHighlighted: true})
//
// # Redis Schema
//
// Session channel: retro:{session_id}
package retro
