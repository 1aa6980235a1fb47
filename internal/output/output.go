// Package output provides formatted rendering for deduplication results
// and pattern reports. It supports text, JSON, and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/link-foundation/deduplino/internal/dedup"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteResult outputs a deduplication result. Text mode emits the rewritten
// text itself; JSON mode emits the full result value.
func (wr *Writer) WriteResult(res *dedup.Result) error {
	if wr.format == FormatJSON {
		return wr.WriteJSON(res)
	}
	_, err := io.WriteString(wr.w, res.Output)
	return err
}

// WriteReport outputs a pattern report in the configured format.
func (wr *Writer) WriteReport(report *dedup.Report) error {
	switch wr.format {
	case FormatJSON:
		return wr.writeReportJSON(report)
	case FormatTable:
		return wr.writeReportTable(report)
	default:
		return wr.writeReportText(report)
	}
}

func (wr *Writer) writeReportJSON(report *dedup.Report) error {
	type patternJSON struct {
		Kind   string   `json:"kind"`
		Tokens string   `json:"tokens"`
		Items  []string `json:"items"`
		Count  int      `json:"count"`
		Score  int      `json:"score"`
	}
	view := struct {
		*dedup.Report
		Selected []patternJSON `json:"selected"`
	}{Report: report}

	for _, p := range report.Selected {
		items := make([]string, len(p.Items))
		for i, item := range p.Items {
			items[i] = dedup.ContentDisplay(item)
		}
		view.Selected = append(view.Selected, patternJSON{
			Kind:   p.Kind.String(),
			Tokens: p.Key(),
			Items:  items,
			Count:  p.Count,
			Score:  p.Score(),
		})
	}
	return wr.WriteJSON(view)
}

func (wr *Writer) writeReportTable(report *dedup.Report) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tCOUNT\tITEMS\tSCORE\tPATTERN")
	fmt.Fprintln(tw, "----\t-----\t-----\t-----\t-------")

	for _, p := range report.Selected {
		key := p.Key()
		if len(key) > 60 {
			key = key[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", p.Kind, p.Count, len(p.Items), p.Score(), key)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(wr.w, "\nEntries: %d, patterns found: %d, selected: %d\n",
		report.TotalEntries, report.PatternsFound, report.PatternsSelected)
	fmt.Fprintf(wr.w, "Projected size: %d -> %d bytes (%.1f%% saved)\n",
		report.OriginalBytes, report.RewrittenBytes, report.SavingsPercent)
	return nil
}

func (wr *Writer) writeReportText(report *dedup.Report) error {
	fmt.Fprintf(wr.w, "Analyzed %d entries\n", report.TotalEntries)
	fmt.Fprintf(wr.w, "Patterns found: %d, selected: %d\n\n", report.PatternsFound, report.PatternsSelected)

	for i, p := range report.Selected {
		fmt.Fprintf(wr.w, "  %2d. [%s] %q covering %d contents, %d occurrences (score %d)\n",
			i+1, p.Kind, p.Key(), len(p.Items), p.Count, p.Score())
	}
	if len(report.Selected) > 0 {
		fmt.Fprintln(wr.w)
	}

	fmt.Fprintf(wr.w, "Projected size: %d -> %d bytes (%.1f%% saved)\n",
		report.OriginalBytes, report.RewrittenBytes, report.SavingsPercent)
	return nil
}
