package dedup

import "testing"

func pat(kind Kind, tokens []string, items []string, count int) *Pattern {
	return &Pattern{Kind: kind, Tokens: tokens, Items: items, Count: count}
}

func TestSelectEmpty(t *testing.T) {
	if got := Select(nil, 0.2); got != nil {
		t.Errorf("Select(nil) = %v, want nil", got)
	}
}

func TestSelectBudget(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		top      float64
		wantKept int
	}{
		{name: "single pattern low fraction", total: 1, top: 0.2, wantKept: 1},
		{name: "five at twenty percent", total: 5, top: 0.2, wantKept: 1},
		{name: "ceil rounds up", total: 6, top: 0.2, wantKept: 2},
		{name: "all at one hundred percent", total: 4, top: 1.0, wantKept: 4},
		{name: "zero fraction keeps one", total: 3, top: 0, wantKept: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns := make([]*Pattern, tt.total)
			for i := range patterns {
				// Disjoint items so the budget is the only limiter.
				item := string(rune('a'+i)) + " x"
				patterns[i] = pat(KindExact, []string{item}, []string{item}, 2)
			}

			got := Select(patterns, tt.top)
			if len(got) != tt.wantKept {
				t.Errorf("selected %d patterns, want %d", len(got), tt.wantKept)
			}
		})
	}
}

func TestSelectOrdersByScore(t *testing.T) {
	// Scores 4 and 9.
	low := pat(KindExact, []string{"a", "b"}, []string{"a b"}, 2)
	high := pat(KindExact, []string{"x", "y", "z"}, []string{"x y z"}, 3)

	got := Select([]*Pattern{low, high}, 1.0)
	if len(got) != 2 {
		t.Fatalf("selected %d patterns, want 2", len(got))
	}
	if got[0] != high || got[1] != low {
		t.Error("patterns not ordered by descending score")
	}
}

func TestSelectCountBreaksScoreTie(t *testing.T) {
	// Same score 6, different counts.
	rare := pat(KindExact, []string{"a", "b", "c"}, []string{"a b c"}, 2)
	frequent := pat(KindPrefix, []string{"x", "y"}, []string{"x y 1", "x y 2"}, 3)

	got := Select([]*Pattern{rare, frequent}, 1.0)
	if len(got) != 2 || got[0] != frequent {
		t.Errorf("higher count should win a score tie, got %v", got)
	}
}

func TestSelectNoOverlap(t *testing.T) {
	// Both patterns cover "a b c"; only the better one may survive.
	exact := pat(KindExact, []string{"a", "b", "c"}, []string{"a b c"}, 3)
	prefix := pat(KindPrefix, []string{"a", "b"}, []string{"a b c", "a b d"}, 2)

	got := Select([]*Pattern{exact, prefix}, 1.0)

	seen := make(map[string]bool)
	for _, p := range got {
		for _, item := range p.Items {
			if seen[item] {
				t.Fatalf("item %q covered by two selected patterns", item)
			}
			seen[item] = true
		}
	}
	if len(got) != 1 {
		t.Errorf("selected %d patterns, want 1 (overlap must reject the weaker)", len(got))
	}
	if got[0] != exact {
		t.Error("the higher-scoring exact pattern should be kept")
	}
}

func TestSelectSkipsConflictAndContinues(t *testing.T) {
	// Scores 12, 6 and 2; clash shares an item with best.
	best := pat(KindExact, []string{"a", "b", "c", "d"}, []string{"a b c d"}, 3)
	clash := pat(KindPrefix, []string{"a", "b", "c"}, []string{"a b c d", "a b c e"}, 2)
	clean := pat(KindSuffix, []string{"z"}, []string{"q z", "r z"}, 2)

	got := Select([]*Pattern{best, clash, clean}, 1.0)
	if len(got) != 2 {
		t.Fatalf("selected %d patterns, want 2", len(got))
	}
	if got[0] != best || got[1] != clean {
		t.Error("conflicting pattern should be skipped, later clean pattern accepted")
	}
}

func TestSelectDeterministicTieBreak(t *testing.T) {
	// Identical score and count: kind order breaks the tie, prefix first.
	suffix := pat(KindSuffix, []string{"m", "n"}, []string{"a m n", "b m n"}, 2)
	prefix := pat(KindPrefix, []string{"p", "q"}, []string{"p q a", "p q b"}, 2)

	for i := 0; i < 10; i++ {
		got := Select([]*Pattern{suffix, prefix}, 1.0)
		if len(got) != 2 || got[0] != prefix {
			t.Fatalf("run %d: prefix must order before suffix on equal score", i)
		}
	}
}
