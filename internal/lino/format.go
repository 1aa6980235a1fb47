package lino

import "strings"

// Format renders entries in canonical form, one entry per line. Top-level
// compounds are rendered as space-joined children without surrounding
// parentheses; nested compounds are parenthesized. Tokens that the parser
// could not re-read bare are quoted.
func Format(entries []*Node) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(formatEntry(entry))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatEntry(entry *Node) string {
	if entry.IsLeaf() {
		return quoteToken(entry.Token, false)
	}

	parts := make([]string, len(entry.Children))
	for i, child := range entry.Children {
		// A leading "<id>:" label stays bare so definitions render as
		// "1: a b" and round-trip through the parser.
		label := i == 0 && child.IsLeaf() && labelPattern.MatchString(child.Token)
		parts[i] = formatNode(child, label)
	}
	return strings.Join(parts, " ")
}

func formatNode(n *Node, label bool) string {
	if n.IsLeaf() {
		return quoteToken(n.Token, label)
	}

	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = formatNode(child, false)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// quoteToken wraps a token in quotes when it contains characters the parser
// treats as structure. Single quotes are preferred; tokens containing a
// single quote fall back to double quotes.
func quoteToken(token string, label bool) string {
	if label || !needsQuoting(token) {
		return token
	}
	if !strings.Contains(token, "'") {
		return "'" + token + "'"
	}
	return `"` + token + `"`
}

func needsQuoting(token string) bool {
	return token == "" || strings.ContainsAny(token, " \t()'\":")
}
