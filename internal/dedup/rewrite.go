package dedup

import (
	"strconv"

	"github.com/link-foundation/deduplino/internal/lino"
)

// Rewrite assigns reference ids to the selected patterns and rewrites the
// entry sequence. Ids are handed out in selection order starting at 1; the
// definition for an id is emitted immediately before its first usage.
// Entries whose content is not covered by any selected pattern pass through
// unchanged, as does an entry a malformed pattern cannot actually rewrite.
func Rewrite(entries []*lino.Node, selected []*Pattern) []*lino.Node {
	ids := make(map[string]int)
	byID := make(map[int]*Pattern)

	nextID := 1
	for _, p := range selected {
		id := nextID
		nextID++
		byID[id] = p
		for _, item := range p.Items {
			ids[item] = id
		}
	}

	defined := make(map[int]bool)
	out := make([]*lino.Node, 0, len(entries))

	for _, entry := range entries {
		tokens := entry.Flatten()
		id, ok := ids[contentKey(tokens)]
		if !ok {
			out = append(out, entry)
			continue
		}

		usage, ok := usageNode(id, byID[id], tokens)
		if !ok {
			out = append(out, entry)
			continue
		}

		if !defined[id] {
			out = append(out, definitionNode(id, byID[id].Tokens))
			defined[id] = true
		}
		out = append(out, usage)
	}

	return out
}

// definitionNode builds the "<id>: token token ..." entry.
func definitionNode(id int, tokens []string) *lino.Node {
	children := make([]*lino.Node, 0, len(tokens)+1)
	children = append(children, lino.Leaf(strconv.Itoa(id)+":"))
	for _, tok := range tokens {
		children = append(children, lino.Leaf(tok))
	}
	return lino.Compound(children...)
}

// usageNode builds the reference entry for one covered occurrence. It
// returns false when the pattern does not actually match the entry tokens.
func usageNode(id int, p *Pattern, tokens []string) (*lino.Node, bool) {
	ref := lino.Leaf(strconv.Itoa(id))

	switch p.Kind {
	case KindExact:
		if !tokensEqual(tokens, p.Tokens) {
			return nil, false
		}
		return ref, true

	case KindPrefix:
		if len(tokens) < len(p.Tokens) || !tokensEqual(tokens[:len(p.Tokens)], p.Tokens) {
			return nil, false
		}
		leftover := tokens[len(p.Tokens):]
		if len(leftover) == 0 {
			return ref, true
		}
		children := append([]*lino.Node{ref}, leaves(leftover)...)
		return lino.Compound(children...), true

	case KindSuffix:
		if len(tokens) < len(p.Tokens) || !tokensEqual(tokens[len(tokens)-len(p.Tokens):], p.Tokens) {
			return nil, false
		}
		leftover := tokens[:len(tokens)-len(p.Tokens)]
		if len(leftover) == 0 {
			return ref, true
		}
		children := append(leaves(leftover), ref)
		return lino.Compound(children...), true
	}

	return nil, false
}

func leaves(tokens []string) []*lino.Node {
	nodes := make([]*lino.Node, len(tokens))
	for i, tok := range tokens {
		nodes[i] = lino.Leaf(tok)
	}
	return nodes
}

func tokensEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
