package dedup

import "strings"

// Kind discriminates how a pattern relates to the contents it covers.
type Kind int

const (
	// KindExact covers entries whose full content equals the pattern.
	KindExact Kind = iota
	// KindPrefix covers entries whose content starts with the pattern,
	// leaving at least one leftover token.
	KindPrefix
	// KindSuffix covers entries whose content ends with the pattern,
	// leaving at least one leftover token.
	KindSuffix
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindPrefix:
		return "prefix"
	case KindSuffix:
		return "suffix"
	default:
		return "unknown"
	}
}

// Pattern is one discovered repeatable token sequence together with the
// distinct flattened contents it covers.
type Pattern struct {
	Kind   Kind
	Tokens []string // the shared token sequence
	Items  []string // distinct covered content keys, first-seen order
	Count  int      // total entry occurrences across all covered items
}

// Score ranks patterns for selection: occurrences times pattern length.
func (p *Pattern) Score() int {
	return p.Count * len(p.Tokens)
}

// Key returns the space-joined pattern tokens.
func (p *Pattern) Key() string {
	return strings.Join(p.Tokens, " ")
}
