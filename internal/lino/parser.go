package lino

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParse is the sentinel wrapped by every parse failure.
var ErrParse = errors.New("parse failed")

// maxDepth bounds compound nesting. Deeper input is rejected rather than
// trusted, so the rest of the pipeline can recurse freely.
const maxDepth = 64

// labelPattern matches a reference-definition label such as "12:".
var labelPattern = regexp.MustCompile(`^\d+:$`)

// Parse converts raw text into an ordered sequence of entries, one per
// non-blank line. It deterministically rejects unbalanced parentheses,
// unterminated quotes, empty compounds, and unquoted tokens containing a
// colon (the colon is reserved for definition labels).
func Parse(text string) ([]*Node, error) {
	var entries []*Node

	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// parseLine parses one line into a single entry. A line with one top-level
// token yields a Leaf; multiple tokens yield a Compound.
func parseLine(line string) (*Node, error) {
	stack := [][]*Node{{}}
	topLevelFirst := true

	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '(':
			if len(stack) > maxDepth {
				return nil, fmt.Errorf("%w: nesting deeper than %d", ErrParse, maxDepth)
			}
			stack = append(stack, []*Node{})
			i++

		case c == ')':
			if len(stack) == 1 {
				return nil, fmt.Errorf("%w: unbalanced ')'", ErrParse)
			}
			children := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(children) == 0 {
				return nil, fmt.Errorf("%w: empty compound", ErrParse)
			}
			stack[len(stack)-1] = append(stack[len(stack)-1], Compound(children...))
			i++

		case c == '\'' || c == '"':
			end := strings.IndexByte(line[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated quote", ErrParse)
			}
			stack[len(stack)-1] = append(stack[len(stack)-1], Leaf(line[i+1:i+1+end]))
			i += end + 2

		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' && line[j] != '(' && line[j] != ')' {
				j++
			}
			token := line[i:j]
			if strings.Contains(token, ":") {
				// Only a definition label in entry-leading position may
				// carry an unquoted colon.
				if !(len(stack) == 1 && topLevelFirst && labelPattern.MatchString(token)) {
					return nil, fmt.Errorf("%w: unquoted colon in %q", ErrParse, token)
				}
			}
			stack[len(stack)-1] = append(stack[len(stack)-1], Leaf(token))
			i = j
		}

		if len(stack) == 1 && len(stack[0]) > 0 {
			topLevelFirst = false
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: unbalanced '('", ErrParse)
	}

	nodes := stack[0]
	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("%w: empty entry", ErrParse)
	case 1:
		return nodes[0], nil
	default:
		return Compound(nodes...), nil
	}
}
