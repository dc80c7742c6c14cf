package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNextFormat(t *testing.T) {
	alloc := New("MCP", "26", nil)

	id, next, err := alloc.Next(State{Seq: 1})
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if id != "MCP-26-0001" {
		t.Errorf("Next() = %q, want %q", id, "MCP-26-0001")
	}
	if next.Seq != 2 {
		t.Errorf("next state Seq = %d, want 2", next.Seq)
	}
}

func TestNextSkipsTaken(t *testing.T) {
	tests := []struct {
		name  string
		taken []string
		start int
		want  []string
	}{
		{
			name:  "no collisions",
			taken: nil,
			start: 1,
			want:  []string{"MCP-26-0001", "MCP-26-0002", "MCP-26-0003"},
		},
		{
			name:  "first candidate taken",
			taken: []string{"MCP-26-0001"},
			start: 1,
			want:  []string{"MCP-26-0002", "MCP-26-0003", "MCP-26-0004"},
		},
		{
			name:  "gap in taken set",
			taken: []string{"MCP-26-0001", "MCP-26-0003"},
			start: 1,
			want:  []string{"MCP-26-0002", "MCP-26-0004", "MCP-26-0005"},
		},
		{
			name:  "taken values outside the scheme are ignored",
			taken: []string{"S2", "whatever", "MCP-26-001"},
			start: 1,
			want:  []string{"MCP-26-0001", "MCP-26-0002", "MCP-26-0003"},
		},
		{
			name:  "start above one",
			taken: nil,
			start: 42,
			want:  []string{"MCP-26-0042", "MCP-26-0043", "MCP-26-0044"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := NewStream("MCP", "26", tt.start, tt.taken)
			var got []string
			for i := 0; i < len(tt.want); i++ {
				id, err := stream.Next()
				if err != nil {
					t.Fatalf("Next() error = %v", err)
				}
				got = append(got, id)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ID sequence mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The allocator must never yield a taken value, and numeric suffixes must be
// strictly increasing, for any taken set and start position.
func TestNextNeverYieldsTakenAndIncreases(t *testing.T) {
	var taken []string
	for n := 1; n <= 200; n += 3 {
		taken = append(taken, fmt.Sprintf("MCP-26-%04d", n))
	}
	takenSet := make(map[string]bool, len(taken))
	for _, id := range taken {
		takenSet[id] = true
	}

	stream := NewStream("MCP", "26", 1, taken)
	prev := 0
	for i := 0; i < 500; i++ {
		id, err := stream.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if takenSet[id] {
			t.Fatalf("Next() yielded taken ID %q", id)
		}
		suffix := id[strings.LastIndex(id, "-")+1:]
		n, err := strconv.Atoi(suffix)
		if err != nil {
			t.Fatalf("suffix of %q is not numeric: %v", id, err)
		}
		if n <= prev {
			t.Fatalf("suffix not strictly increasing: %d after %d", n, prev)
		}
		prev = n
	}
}

func TestNextIsPure(t *testing.T) {
	alloc := New("MCP", "26", []string{"MCP-26-0001"})
	state := State{Seq: 1}

	first, _, err := alloc.Next(state)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	second, _, err := alloc.Next(state)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if first != second {
		t.Errorf("Next() from same state returned %q then %q", first, second)
	}
}
