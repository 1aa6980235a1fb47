package dedup

import (
	"strings"

	"github.com/link-foundation/deduplino/internal/lino"
)

// entryInfo caches the flattened view of one valid entry.
type entryInfo struct {
	tokens     []string
	content    string
	structured bool
	head       []string // flattened first child, set for structured entries
}

// Find discovers repeatable sub-sequences across the given entries: exact
// duplicates, shared prefixes, and shared suffixes. Returned patterns may
// overlap in covered items; Select resolves overlaps.
//
// Discovery is pairwise over distinct contents, so the prefix/suffix phase
// is quadratic in the number of distinct valid contents. That is an accepted
// bound for typical inputs; a sub-quadratic rewrite would change tie-break
// behavior and needs equivalence tests.
func Find(entries []*lino.Node) []*Pattern {
	infos, contents, freq, tokensOf := collectEntries(entries)

	var patterns []*Pattern
	consumed := make(map[string]bool)

	// Structured entries sharing a content collapse on their natural
	// "(head) tail" boundary instead of becoming exact duplicates.
	patterns = append(patterns, forcedPrefixPatterns(infos, contents, freq, consumed)...)

	// Exact duplicates among whatever step one left behind.
	for _, content := range contents {
		if consumed[content] || freq[content] < 2 {
			continue
		}
		patterns = append(patterns, &Pattern{
			Kind:   KindExact,
			Tokens: tokensOf[content],
			Items:  []string{content},
			Count:  freq[content],
		})
	}

	// Shared prefixes and suffixes among non-structured contents.
	patterns = append(patterns, pairwisePatterns(infos, freq, consumed)...)

	return patterns
}

// contentKey identifies a flattened token sequence unambiguously. A plain
// space join would conflate quoted tokens containing spaces ("'a b' c" vs
// "a b c"), so tokens are joined on NUL, which cannot appear in a token.
func contentKey(tokens []string) string {
	return strings.Join(tokens, "\x00")
}

// ContentDisplay renders a content key for human-facing output.
func ContentDisplay(key string) string {
	return strings.ReplaceAll(key, "\x00", " ")
}

// collectEntries filters to valid entries (two or more tokens) and tracks
// distinct contents in first-seen order with their occurrence counts and
// actual token slices.
func collectEntries(entries []*lino.Node) ([]entryInfo, []string, map[string]int, map[string][]string) {
	var infos []entryInfo
	var contents []string
	freq := make(map[string]int)
	tokensOf := make(map[string][]string)

	for _, entry := range entries {
		tokens := entry.Flatten()
		if len(tokens) < 2 {
			continue
		}

		info := entryInfo{
			tokens:  tokens,
			content: contentKey(tokens),
		}
		if head := structuredHead(entry); head != nil {
			info.structured = true
			info.head = head
		}

		if _, seen := freq[info.content]; !seen {
			contents = append(contents, info.content)
			tokensOf[info.content] = tokens
		}
		freq[info.content]++
		infos = append(infos, info)
	}

	return infos, contents, freq, tokensOf
}

// structuredHead returns the flattened first child when the entry is
// structured: a compound whose first child is itself a compound with at
// least one grandchild. Otherwise nil.
func structuredHead(entry *lino.Node) []string {
	if entry.IsLeaf() {
		return nil
	}
	first := entry.Children[0]
	if first.IsLeaf() || len(first.Children) == 0 {
		return nil
	}
	return first.Flatten()
}

// forcedPrefixPatterns builds a Prefix pattern for every content shared by
// at least two structured entries, keyed on the first entry's head. Contents
// turned into a pattern here are marked consumed.
func forcedPrefixPatterns(infos []entryInfo, contents []string, freq map[string]int, consumed map[string]bool) []*Pattern {
	structuredCount := make(map[string]int)
	heads := make(map[string]entryInfo)

	for _, info := range infos {
		if !info.structured {
			continue
		}
		structuredCount[info.content]++
		if _, ok := heads[info.content]; !ok {
			heads[info.content] = info
		}
	}

	var patterns []*Pattern
	for _, content := range contents {
		if structuredCount[content] < 2 {
			continue
		}
		head := heads[content].head
		// The head must leave at least one leftover token.
		if len(head) == 0 || len(head) >= len(heads[content].tokens) {
			continue
		}
		patterns = append(patterns, &Pattern{
			Kind:   KindPrefix,
			Tokens: head,
			Items:  []string{content},
			Count:  freq[content],
		})
		consumed[content] = true
	}

	return patterns
}

// pairwisePatterns compares every unordered pair of distinct non-structured
// contents and accumulates shared prefixes and suffixes into buckets keyed
// by the literal shared token sequence.
func pairwisePatterns(infos []entryInfo, freq map[string]int, consumed map[string]bool) []*Pattern {
	var contents []string
	tokens := make(map[string][]string)
	for _, info := range infos {
		if info.structured || consumed[info.content] {
			continue
		}
		if _, seen := tokens[info.content]; seen {
			continue
		}
		tokens[info.content] = info.tokens
		contents = append(contents, info.content)
	}

	buckets := make(map[string]*Pattern)
	covered := make(map[string]map[string]bool)
	var order []string

	add := func(kind Kind, shared []string, a, b string) {
		key := kind.String() + "\x00" + strings.Join(shared, "\x00")
		p, ok := buckets[key]
		if !ok {
			p = &Pattern{Kind: kind, Tokens: shared}
			buckets[key] = p
			covered[key] = make(map[string]bool)
			order = append(order, key)
		}
		for _, item := range []string{a, b} {
			if !covered[key][item] {
				covered[key][item] = true
				p.Items = append(p.Items, item)
			}
		}
	}

	for i := 0; i < len(contents); i++ {
		for j := i + 1; j < len(contents); j++ {
			a, b := tokens[contents[i]], tokens[contents[j]]

			if n := sharedPrefixLen(a, b); n > 0 {
				add(KindPrefix, a[:n], contents[i], contents[j])
			}
			if n := sharedSuffixLen(a, b); n > 0 {
				add(KindSuffix, a[len(a)-n:], contents[i], contents[j])
			}
		}
	}

	patterns := make([]*Pattern, 0, len(order))
	for _, key := range order {
		p := buckets[key]
		for _, item := range p.Items {
			p.Count += freq[item]
		}
		patterns = append(patterns, p)
	}
	return patterns
}

// sharedPrefixLen returns the longest common token-prefix length, capped so
// the prefix stays strictly shorter than both sequences.
func sharedPrefixLen(a, b []string) int {
	limit := len(a) - 1
	if len(b)-1 < limit {
		limit = len(b) - 1
	}
	n := 0
	for n < limit && a[n] == b[n] {
		n++
	}
	return n
}

// sharedSuffixLen is the suffix counterpart of sharedPrefixLen.
func sharedSuffixLen(a, b []string) int {
	limit := len(a) - 1
	if len(b)-1 < limit {
		limit = len(b) - 1
	}
	n := 0
	for n < limit && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}
