// Package dedup compresses link-notation text by detecting repeated token
// sub-sequences and rewriting them as numbered back-references.
//
// The pipeline has five stages:
//
//  1. Auto-Escape (optional) - Quotes problematic tokens so raw text parses
//  2. Parse - Raw text becomes an ordered sequence of entry trees
//  3. Find - Discovers exact-duplicate, shared-prefix and shared-suffix patterns
//  4. Select - Greedily picks a conflict-free top fraction by score
//  5. Rewrite - Emits numbered definitions and reference entries
//
// Basic usage:
//
//	d := dedup.New(
//	    dedup.WithTopPercentage(0.2),
//	    dedup.WithAutoEscape(true),
//	)
//	result, err := d.Run(text)
//
// A run is pure: it performs no I/O and no logging, leaves its input
// untouched, and returns one complete Result (or one error). Selection is
// greedy, not globally optimal, and untouched entries come back canonically
// reformatted rather than byte-identical.
package dedup
