// Package votes reconciles "has this user voted" membership with the delta
// that must be applied to the displayed counter.
//
// A Set is a plain toggle (upvote a story, save a tip). A Ballot holds the two
// mutually exclusive up/down sets used for incident reports.
package votes

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Set is a set of record identifiers. The zero value is an empty set.
type Set struct {
	ids map[string]struct{}
}

// NewSet builds a set from ids, ignoring duplicates.
func NewSet(ids ...string) Set {
	s := Set{}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *Set) add(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Has reports whether id is a member.
func (s Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int { return len(s.ids) }

// Toggle flips the membership of id and returns the counter delta: +1 when id
// was added, -1 when it was removed.
func (s *Set) Toggle(id string) int {
	if s.Has(id) {
		delete(s.ids, id)
		return -1
	}
	s.add(id)
	return 1
}

// Remove drops id and returns -1 if it was present, 0 otherwise.
func (s *Set) Remove(id string) int {
	if !s.Has(id) {
		return 0
	}
	delete(s.ids, id)
	return -1
}

// IDs returns the members in sorted order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a JSON array of strings.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes a JSON array of strings. null yields an empty set.
func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("votes: set must be a JSON array of strings: %w", err)
	}
	*s = NewSet(ids...)
	return nil
}

// Direction is the kind of a report vote.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up"/"down" and the "upvote"/"downvote" aliases.
func ParseDirection(raw string) (Direction, error) {
	switch raw {
	case "up", "upvote":
		return Up, nil
	case "down", "downvote":
		return Down, nil
	default:
		return "", fmt.Errorf("votes: invalid vote type %q", raw)
	}
}

// Change is the counter delta produced by one ballot operation.
type Change struct {
	Up   int `json:"up"`
	Down int `json:"down"`
}

// IsZero reports whether the change leaves both counters untouched.
func (c Change) IsZero() bool { return c.Up == 0 && c.Down == 0 }

// Ballot keeps the upvoted and downvoted sets of one user. A record is never
// in both sets.
type Ballot struct {
	Upvoted   Set `json:"upvoted"`
	Downvoted Set `json:"downvoted"`
}

// State returns the current vote of the user on id, or "" when none.
func (b Ballot) State(id string) Direction {
	switch {
	case b.Upvoted.Has(id):
		return Up
	case b.Downvoted.Has(id):
		return Down
	default:
		return ""
	}
}

// Cast applies a vote in direction d on id. Voting the active direction
// retracts it; voting the opposite direction clears the other vote first.
func (b *Ballot) Cast(id string, d Direction) Change {
	var c Change
	switch d {
	case Up:
		c.Up = b.Upvoted.Toggle(id)
		if c.Up > 0 {
			c.Down = b.Downvoted.Remove(id)
		}
	case Down:
		c.Down = b.Downvoted.Toggle(id)
		if c.Down > 0 {
			c.Up = b.Upvoted.Remove(id)
		}
	}
	return c
}

// Transition computes the change for voting d when the current state is
// from, without needing a whole ballot. It returns the resulting state.
func Transition(from Direction, d Direction) (Direction, Change) {
	b := Ballot{}
	const id = "record"
	switch from {
	case Up:
		b.Upvoted = NewSet(id)
	case Down:
		b.Downvoted = NewSet(id)
	}
	c := b.Cast(id, d)
	return b.State(id), c
}
