package dedup

import "fmt"

// Report describes what discovery and selection would do to an input
// without committing to the rewrite as the primary output. Used by the
// stats command.
type Report struct {
	TotalEntries int        `json:"total_entries"`
	Patterns     []*Pattern `json:"-"`
	Selected     []*Pattern `json:"-"`

	PatternsFound    int     `json:"patterns_found"`
	PatternsSelected int     `json:"patterns_selected"`
	OriginalBytes    int     `json:"original_bytes"`
	RewrittenBytes   int     `json:"rewritten_bytes"`
	SavingsPercent   float64 `json:"savings_percent"`

	// Rewritten holds the would-be output, so callers can derive further
	// measurements (token counts, diffs) without a second run.
	Rewritten string `json:"-"`
}

// Analyze runs discovery and selection over the input and measures the
// projected rewrite. Parse failures follow the same policy as Run.
func (d *Deduplicator) Analyze(text string) (*Report, error) {
	work := text
	if d.autoEscape {
		work = AutoEscape(work, func(candidate string) bool {
			_, err := d.parse(candidate)
			return err == nil
		})
	}

	entries, err := d.parse(work)
	if err != nil {
		return nil, fmt.Errorf("parsing input: %w", err)
	}

	patterns := Find(entries)
	selected := Select(patterns, d.topPercentage)

	report := &Report{
		TotalEntries:     len(entries),
		Patterns:         patterns,
		Selected:         selected,
		PatternsFound:    len(patterns),
		PatternsSelected: len(selected),
		OriginalBytes:    len(d.format(entries)),
	}

	if len(selected) > 0 {
		report.Rewritten = d.format(Rewrite(entries, selected))
	} else {
		report.Rewritten = d.format(entries)
	}
	report.RewrittenBytes = len(report.Rewritten)

	if report.OriginalBytes > 0 {
		saved := report.OriginalBytes - report.RewrittenBytes
		report.SavingsPercent = float64(saved) / float64(report.OriginalBytes) * 100
	}

	return report, nil
}
