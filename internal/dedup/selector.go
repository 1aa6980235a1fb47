package dedup

import (
	"math"
	"sort"
)

// Select ranks discovered patterns and greedily picks a conflict-free
// subset. The number of accepted patterns is bounded by
// max(1, ceil(len(patterns) * topPercentage)); no two accepted patterns
// share a covered content, so no entry is rewritten twice.
func Select(patterns []*Pattern, topPercentage float64) []*Pattern {
	if len(patterns) == 0 {
		return nil
	}

	ranked := make([]*Pattern, len(patterns))
	copy(ranked, patterns)

	// Score desc, count desc, then kind and key to stay deterministic
	// regardless of discovery order.
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Key() < b.Key()
	})

	limit := int(math.Ceil(float64(len(patterns)) * topPercentage))
	if limit < 1 {
		limit = 1
	}

	used := make(map[string]bool)
	var selected []*Pattern

	for _, p := range ranked {
		if len(selected) >= limit {
			break
		}
		conflict := false
		for _, item := range p.Items {
			if used[item] {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		for _, item := range p.Items {
			used[item] = true
		}
		selected = append(selected, p)
	}

	return selected
}
