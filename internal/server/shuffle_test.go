package server

import "testing"

func TestShuffleLineupsExactOrder(t *testing.T) {
	lineups := []Lineup{{Slug: "a"}, {Slug: "b"}, {Slug: "c"}, {Slug: "d"}, {Slug: "e"}}
	got := shuffleLineups(lineups)
	want := []string{"c", "b", "a", "d", "e"}
	for i := range want {
		if got[i].Slug != want[i] {
			t.Fatalf("expected order %v, got %v at index %d", want, got[i].Slug, i)
		}
	}
}

func TestShuffleLineupsStable(t *testing.T) {
	lineups := []Lineup{{Slug: "a"}, {Slug: "b"}, {Slug: "c"}}
	first := shuffleLineups(lineups)
	second := shuffleLineups(lineups)
	for i := range first {
		if first[i].Slug != second[i].Slug {
			t.Fatal("expected identical order for identical input")
		}
	}
	// Input must not be mutated.
	if lineups[0].Slug != "a" || lineups[1].Slug != "b" || lineups[2].Slug != "c" {
		t.Fatalf("input mutated: %v", lineups)
	}
}

func TestTechniqueLabel(t *testing.T) {
	cases := map[string]string{
		"left":      "Left Click",
		"left_jump": "Jump Throw",
		"run_left":  "Run + Left",
		"custom":    "custom",
	}
	for value, want := range cases {
		if got := TechniqueLabel(value); got != want {
			t.Fatalf("TechniqueLabel(%q) = %q, want %q", value, got, want)
		}
	}
}
