// Package feed maintains a client-side cached activity feed and merges
// incremental deltas into it without refetching.
package feed

import "github.com/planloop/planloop/internal/domain/dto"

type Change string

const (
	ChangeAdd    Change = "add"
	ChangeRemove Change = "remove"
)

// Delta is one pending feed mutation.
type Delta struct {
	Change   Change
	Activity dto.Activity
}

// ApplyDeltas merges a batch of deltas into a cached, sorted feed and returns
// the new feed. The input slices are not modified. Removals match by entity
// id; adds are skipped when the entity is already present.
func ApplyDeltas(cache []dto.Activity, deltas []Delta) []dto.Activity {
	removed := make(map[string]bool)
	for _, delta := range deltas {
		if delta.Change == ChangeRemove {
			removed[delta.Activity.EntityID()] = true
		}
	}

	next := make([]dto.Activity, 0, len(cache)+len(deltas))
	present := make(map[string]bool)
	for _, activity := range cache {
		id := activity.EntityID()
		if removed[id] {
			continue
		}
		next = append(next, activity)
		present[id] = true
	}

	for _, delta := range deltas {
		if delta.Change != ChangeAdd {
			continue
		}
		id := delta.Activity.EntityID()
		if present[id] || removed[id] {
			continue
		}
		next = append(next, delta.Activity)
		present[id] = true
	}

	dto.SortActivities(next)
	return next
}

// Store holds the cached feed plus a queue of pending deltas. It is meant to
// be owned by a single consumer (the UI loop); it is not safe for concurrent
// use.
type Store struct {
	cache   []dto.Activity
	seeded  bool
	pending []Delta
}

func NewStore() *Store {
	return &Store{}
}

// Enqueue adds a delta to the pending queue without applying it.
func (s *Store) Enqueue(delta Delta) {
	s.pending = append(s.pending, delta)
}

// Flush applies all pending deltas and clears the queue. When no cache has
// been seeded yet, only the add deltas are taken, sorted, and used as the
// initial feed.
func (s *Store) Flush() []dto.Activity {
	if len(s.pending) == 0 {
		return s.cache
	}

	if !s.seeded {
		var initial []dto.Activity
		for _, delta := range s.pending {
			if delta.Change == ChangeAdd {
				initial = append(initial, delta.Activity)
			}
		}
		dto.SortActivities(initial)
		s.cache = initial
		s.seeded = true
	} else {
		s.cache = ApplyDeltas(s.cache, s.pending)
	}

	s.pending = nil
	return s.cache
}

// Activities returns the current cached feed.
func (s *Store) Activities() []dto.Activity {
	return s.cache
}
