package inspect

import (
	"sort"
	"testing"
)

func TestComplete_PrefixMatch(t *testing.T) {
	s := &Session{scenario: map[string]bool{
		"passthrough":     true,
		"pipeline":        true,
		"invalid_trigger": true,
	}}

	got := s.complete("p")
	sort.Strings(got)

	want := []string{"passthrough", "pipeline"}
	if len(got) != len(want) {
		t.Fatalf("complete(p) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("complete(p) = %v, want %v", got, want)
		}
	}
}

func TestComplete_NoMatch(t *testing.T) {
	s := &Session{scenario: map[string]bool{"passthrough": true}}
	if got := s.complete("zzz"); len(got) != 0 {
		t.Fatalf("complete(zzz) = %v, want empty", got)
	}
}

func TestComplete_EmptyPrefixMatchesAll(t *testing.T) {
	s := &Session{scenario: map[string]bool{"a": true, "b": true}}
	if got := s.complete(""); len(got) != 2 {
		t.Fatalf("complete(\"\") = %v, want 2 entries", got)
	}
}
