// Package board keeps the local view of a session's ideas. It is the
// dispatch surface the actions controller talks to, and it applies spotlight
// changes that arrive over the session channel. Nothing is persisted.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/dyluth/retro/pkg/retro"
)

// ErrIdeaNotFound is returned for an idea the board does not hold.
var ErrIdeaNotFound = errors.New("idea not found")

// Board is an in-memory idea list. Safe for concurrent use: channel handlers
// run on the subscription goroutine while actions run on the caller's.
type Board struct {
	mu    sync.RWMutex
	ideas map[int]retro.Idea
}

// New creates a board holding ideas. Later duplicates of an ID replace earlier ones.
func New(ideas []retro.Idea) *Board {
	b := &Board{ideas: make(map[int]retro.Idea, len(ideas))}
	for _, idea := range ideas {
		b.ideas[idea.ID] = idea
	}
	return b
}

// Get returns a copy of one idea.
func (b *Board) Get(id int) (retro.Idea, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	idea, ok := b.ideas[id]
	if !ok {
		return retro.Idea{}, fmt.Errorf("idea %d: %w", id, ErrIdeaNotFound)
	}
	return idea, nil
}

// Ideas returns a snapshot of all ideas ordered by ID.
func (b *Board) Ideas() []retro.Idea {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]retro.Idea, 0, len(b.ideas))
	for _, idea := range b.ideas {
		out = append(out, idea)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InitiateIdeaEditState marks an idea as being edited.
func (b *Board) InitiateIdeaEditState(_ context.Context, ideaID int) error {
	return b.update(ideaID, func(idea *retro.Idea) { idea.InEditState = true })
}

// SubmitIdeaDeletionAsync marks an idea as awaiting deletion.
func (b *Board) SubmitIdeaDeletionAsync(_ context.Context, ideaID int) error {
	return b.update(ideaID, func(idea *retro.Idea) { idea.DeletionSubmitted = true })
}

// ApplyHighlight stores the spotlight state announced by the facilitator.
func (b *Board) ApplyHighlight(msg retro.HighlightToggled) error {
	return b.update(msg.ID, func(idea *retro.Idea) { idea.IsHighlighted = msg.IsHighlighted })
}

// Attach subscribes the board to spotlight changes on ch.
// Malformed payloads and unknown ideas are logged and skipped.
func (b *Board) Attach(ch retro.Channel) {
	ch.On(retro.EventIdeaHighlightToggled, func(payload json.RawMessage) {
		msg, err := retro.DecodeHighlightToggled(payload)
		if err != nil {
			log.Printf("[Board] Ignoring highlight message: %v", err)
			return
		}
		if err := b.ApplyHighlight(*msg); err != nil {
			log.Printf("[Board] Ignoring highlight message: %v", err)
		}
	})
}

func (b *Board) update(id int, mutate func(*retro.Idea)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idea, ok := b.ideas[id]
	if !ok {
		return fmt.Errorf("idea %d: %w", id, ErrIdeaNotFound)
	}
	mutate(&idea)
	b.ideas[id] = idea
	return nil
}
