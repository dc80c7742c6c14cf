// Package idgen allocates student IDs of the form {prefix}-{yy}-{nnnn},
// skipping identifiers that are already in use.
package idgen

import "fmt"

// guardLimit bounds how many consecutive taken candidates Next will scan
// before giving up. A finite taken set can never exhaust it; it exists so
// pathological input still terminates.
const guardLimit = 1_000_000

// State is the allocator's position in the sequence. It is advanced by Next
// and never moves backwards, so no number is ever revisited.
type State struct {
	Seq int
}

// Allocator produces identifiers like MCP-26-0001. Only exact string
// collisions with the taken set are skipped; taken values outside the
// numbering scheme are ignored.
type Allocator struct {
	prefix    string
	yearToken string
	taken     map[string]struct{}
}

func New(prefix, yearToken string, taken []string) *Allocator {
	set := make(map[string]struct{}, len(taken))
	for _, id := range taken {
		set[id] = struct{}{}
	}
	return &Allocator{prefix: prefix, yearToken: yearToken, taken: set}
}

// Next returns the first free identifier at or after the state's sequence
// number, plus the state for the following call. The numeric suffix of
// successive results is strictly increasing.
func (a *Allocator) Next(s State) (string, State, error) {
	n := s.Seq
	for i := 0; i < guardLimit; i++ {
		candidate := fmt.Sprintf("%s-%s-%04d", a.prefix, a.yearToken, n)
		n++
		if _, used := a.taken[candidate]; !used {
			return candidate, State{Seq: n}, nil
		}
	}
	return "", s, fmt.Errorf("no free ID found after %d candidates from %s-%s-%04d", guardLimit, a.prefix, a.yearToken, s.Seq)
}

// Stream wraps an Allocator with its state for callers that just want
// successive IDs.
type Stream struct {
	alloc *Allocator
	state State
}

func NewStream(prefix, yearToken string, start int, taken []string) *Stream {
	return &Stream{
		alloc: New(prefix, yearToken, taken),
		state: State{Seq: start},
	}
}

func (s *Stream) Next() (string, error) {
	id, next, err := s.alloc.Next(s.state)
	if err != nil {
		return "", err
	}
	s.state = next
	return id, nil
}
