package dedup

import (
	"fmt"
	"strings"

	"github.com/link-foundation/deduplino/internal/lino"
)

// Result reason strings surfaced to callers on success=false outcomes.
const (
	ReasonEmptyInput  = "Empty input"
	ReasonParseFailed = "Parsing failed"
	ReasonNoPatterns  = "No deduplication patterns found"
)

// DefaultTopPercentage is the fraction of discovered patterns selected when
// the caller does not override it.
const DefaultTopPercentage = 0.2

// ParseFunc converts raw text into an ordered entry sequence or fails.
type ParseFunc func(text string) ([]*lino.Node, error)

// FormatFunc renders an entry sequence as canonical text.
type FormatFunc func(entries []*lino.Node) string

// Result is the complete outcome of one deduplication run. The engine never
// partially writes output; every run yields exactly one Result or one error.
type Result struct {
	Output          string `json:"output"`
	Success         bool   `json:"success"`
	Reason          string `json:"reason,omitempty"`
	PatternsApplied int    `json:"patterns_applied"`
}

// Deduplicator runs the full pipeline: optional auto-escape, parse, pattern
// discovery, selection, rewrite, format. Each Run call is independent; a
// single Deduplicator is safe to use from concurrent goroutines.
type Deduplicator struct {
	topPercentage    float64
	autoEscape       bool
	failOnParseError bool
	parse            ParseFunc
	format           FormatFunc
}

// Option configures a Deduplicator.
type Option func(*Deduplicator)

// WithTopPercentage sets the selection budget fraction. The value is
// expected to lie in [0,1]; validating caller input is the CLI's job.
func WithTopPercentage(fraction float64) Option {
	return func(d *Deduplicator) {
		d.topPercentage = fraction
	}
}

// WithAutoEscape enables the quoting cascade that repairs raw text before
// parsing. Disabled by default.
func WithAutoEscape(enabled bool) Option {
	return func(d *Deduplicator) {
		d.autoEscape = enabled
	}
}

// WithFailOnParseError makes parse failures return an error instead of a
// success=false Result. Disabled by default.
func WithFailOnParseError(enabled bool) Option {
	return func(d *Deduplicator) {
		d.failOnParseError = enabled
	}
}

// WithParser plugs in an alternative parser implementation.
func WithParser(parse ParseFunc) Option {
	return func(d *Deduplicator) {
		d.parse = parse
	}
}

// WithFormatter plugs in an alternative formatter implementation.
func WithFormatter(format FormatFunc) Option {
	return func(d *Deduplicator) {
		d.format = format
	}
}

// New creates a Deduplicator with the given options.
func New(opts ...Option) *Deduplicator {
	d := &Deduplicator{
		topPercentage: DefaultTopPercentage,
		parse:         lino.Parse,
		format:        lino.Format,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run deduplicates one input text.
//
// Outcomes:
//   - blank input: success=false, reason "Empty input", output unchanged
//   - parse failure: error when fail-on-parse is set, otherwise
//     success=false with the best-effort (possibly escaped) text
//   - no patterns selected: success=false with canonically reformatted text
//   - otherwise: success=true with the rewritten text
func (d *Deduplicator) Run(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return &Result{Output: text, Reason: ReasonEmptyInput}, nil
	}

	work := text
	if d.autoEscape {
		work = AutoEscape(work, func(candidate string) bool {
			_, err := d.parse(candidate)
			return err == nil
		})
	}

	entries, err := d.parse(work)
	if err != nil {
		if d.failOnParseError {
			return nil, fmt.Errorf("parsing input: %w", err)
		}
		return &Result{Output: work, Reason: ReasonParseFailed}, nil
	}

	selected := Select(Find(entries), d.topPercentage)
	if len(selected) == 0 {
		return &Result{Output: d.format(entries), Reason: ReasonNoPatterns}, nil
	}

	rewritten := Rewrite(entries, selected)
	return &Result{
		Output:          d.format(rewritten),
		Success:         true,
		PatternsApplied: len(selected),
	}, nil
}

// Quick is a convenience for one-off runs without building a Deduplicator.
func Quick(text string, topPercentage float64, autoEscape bool) (*Result, error) {
	return New(
		WithTopPercentage(topPercentage),
		WithAutoEscape(autoEscape),
	).Run(text)
}
