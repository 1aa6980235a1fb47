package dedup

import (
	"regexp"
	"strings"
)

// ParseProbe reports whether a candidate text parses successfully. The
// cascade uses it between stages; it must be side-effect free.
type ParseProbe func(text string) bool

var (
	// quotedToken matches a token already fully quoted, optionally with
	// trailing sentence punctuation.
	quotedToken = regexp.MustCompile(`^('[^']*'|"[^"]*")[,;.]*$`)

	// punctRun matches tokens made purely of brackets and punctuation.
	punctRun = regexp.MustCompile(`^\W+$`)

	// wordParen matches a letter directly adjacent to a parenthesis, the
	// signature of a stray or unbalanced parenthesis inside a word.
	wordParen = regexp.MustCompile(`[A-Za-z][()]|[()][A-Za-z]`)
)

// AutoEscape normalizes raw text so the strict parser accepts it, via three
// increasingly aggressive quoting passes. Stages one and two return as soon
// as their result parses; the total-escape fallback is returned without a
// parse check and the caller handles any residual failure. The cascade is
// pure and deterministic and never reorders lines or tokens.
func AutoEscape(text string, probe ParseProbe) string {
	minimal := escapeColonTokens(text)
	if probe(minimal) {
		return minimal
	}

	classified := escapeClassifiedTokens(text)
	if probe(classified) {
		return classified
	}

	return escapeAllTokens(text)
}

// escapeColonTokens quotes only whitespace-delimited tokens carrying a
// colon outside quotes (timestamps, host:port and the like).
func escapeColonTokens(text string) string {
	return mapTokens(text, func(token string) string {
		if quotedToken.MatchString(token) {
			return token
		}
		if strings.Contains(token, ":") {
			return quoteRaw(token)
		}
		return token
	})
}

// escapeClassifiedTokens re-tokenizes each line and quotes tokens that
// carry a colon or a letter-adjacent parenthesis, leaving quoted tokens and
// pure punctuation runs alone.
func escapeClassifiedTokens(text string) string {
	return mapTokens(text, func(token string) string {
		if quotedToken.MatchString(token) || punctRun.MatchString(token) {
			return token
		}
		if strings.Contains(token, ":") || wordParen.MatchString(token) {
			return quoteRaw(token)
		}
		return token
	})
}

// escapeAllTokens quotes every token that is not already quoted and not
// pure punctuation.
func escapeAllTokens(text string) string {
	return mapTokens(text, func(token string) string {
		if quotedToken.MatchString(token) || punctRun.MatchString(token) {
			return token
		}
		return quoteRaw(token)
	})
}

// mapTokens applies fn to every whitespace-delimited token, preserving line
// and token order.
func mapTokens(text string, fn func(string) string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		for j, field := range fields {
			fields[j] = fn(field)
		}
		lines[i] = strings.Join(fields, " ")
	}
	return strings.Join(lines, "\n")
}

// quoteRaw wraps a token in single quotes, falling back to double quotes
// when the token itself contains a single quote.
func quoteRaw(token string) string {
	if !strings.Contains(token, "'") {
		return "'" + token + "'"
	}
	return `"` + token + `"`
}
