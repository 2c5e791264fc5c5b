package agent

import (
	"testing"
)

func TestSample_Length(t *testing.T) {
	available := []string{"llama3", "mistral", "gemma", "phi3"}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"fewer than available", 2, 2},
		{"exactly available", 4, 4},
		{"more than available", 10, 4},
		{"zero", 0, 0},
		{"negative", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(1)
			got := s.Sample(available, tt.k)
			if len(got) != tt.want {
				t.Errorf("Sample(k=%d) returned %d agents, want %d", tt.k, len(got), tt.want)
			}
		})
	}
}

func TestSample_WithoutReplacement(t *testing.T) {
	available := []string{"a", "b", "c", "d", "e"}
	s := NewSelector(42)

	for i := 0; i < 100; i++ {
		got := s.Sample(available, 3)
		seen := make(map[string]bool, len(got))
		for _, id := range got {
			if seen[id] {
				t.Fatalf("draw %d contained duplicate %q: %v", i, id, got)
			}
			seen[id] = true
		}
	}
}

func TestSample_DoesNotMutateInput(t *testing.T) {
	available := []string{"a", "b", "c", "d"}
	s := NewSelector(7)
	s.Sample(available, 4)

	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if available[i] != want[i] {
			t.Fatalf("input slice mutated: %v", available)
		}
	}
}

func TestSample_SeededDeterminism(t *testing.T) {
	available := []string{"a", "b", "c", "d", "e", "f"}

	s1 := NewSelector(1234)
	s2 := NewSelector(1234)

	for i := 0; i < 20; i++ {
		got1 := s1.Sample(available, 3)
		got2 := s2.Sample(available, 3)
		for j := range got1 {
			if got1[j] != got2[j] {
				t.Fatalf("draw %d diverged: %v vs %v", i, got1, got2)
			}
		}
	}
}

func TestSample_CoversAllAgents(t *testing.T) {
	// With enough draws every agent should appear at least once.
	available := []string{"a", "b", "c", "d"}
	s := NewSelector(99)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		for _, id := range s.Sample(available, 2) {
			seen[id] = true
		}
	}

	for _, id := range available {
		if !seen[id] {
			t.Errorf("agent %q never drawn in 200 samples", id)
		}
	}
}
