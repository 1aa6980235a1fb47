package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatsTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "stats"}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.Flags().Float64("top", 0.2, "")
	cmd.Flags().Bool("auto-escape", false, "")
	cmd.Flags().String("token-model", "", "")
	return cmd
}

func TestStatsText(t *testing.T) {
	viper.Reset()
	viper.Set("format", "text")
	viper.Set("top_percentage", 1.0)

	file := writeTempFile(t, t.TempDir(), "in.lino", "a b c\na b c\nd e\n")

	var out bytes.Buffer
	cmd := newStatsTestCmd(&out)

	if err := runStats(cmd, []string{file}); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Analyzed 3 entries") {
		t.Errorf("output missing entry count: %q", got)
	}
	if !strings.Contains(got, "Patterns found: 1, selected: 1") {
		t.Errorf("output missing pattern summary: %q", got)
	}
	if !strings.Contains(got, `[exact] "a b c"`) {
		t.Errorf("output missing pattern line: %q", got)
	}
}

func TestStatsJSON(t *testing.T) {
	viper.Reset()
	viper.Set("format", "json")
	viper.Set("top_percentage", 1.0)

	file := writeTempFile(t, t.TempDir(), "in.lino", "a b\na b\n")

	var out bytes.Buffer
	cmd := newStatsTestCmd(&out)

	if err := runStats(cmd, []string{file}); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}

	var view struct {
		TotalEntries     int `json:"total_entries"`
		PatternsSelected int `json:"patterns_selected"`
		Selected         []struct {
			Kind   string `json:"kind"`
			Tokens string `json:"tokens"`
			Count  int    `json:"count"`
		} `json:"selected"`
	}
	if err := json.Unmarshal(out.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if view.TotalEntries != 2 || view.PatternsSelected != 1 {
		t.Errorf("report = %+v", view)
	}
	if len(view.Selected) != 1 || view.Selected[0].Kind != "exact" || view.Selected[0].Tokens != "a b" {
		t.Errorf("selected = %+v", view.Selected)
	}
}

func TestStatsTable(t *testing.T) {
	viper.Reset()
	viper.Set("format", "table")
	viper.Set("top_percentage", 1.0)

	file := writeTempFile(t, t.TempDir(), "in.lino", "a b\na b\n")

	var out bytes.Buffer
	cmd := newStatsTestCmd(&out)

	if err := runStats(cmd, []string{file}); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "KIND") || !strings.Contains(got, "exact") {
		t.Errorf("table output = %q", got)
	}
	if !strings.Contains(got, "Entries: 2, patterns found: 1, selected: 1") {
		t.Errorf("table summary missing: %q", got)
	}
}

func TestStatsNoPatterns(t *testing.T) {
	viper.Reset()
	viper.Set("format", "text")

	file := writeTempFile(t, t.TempDir(), "in.lino", "a b\nc d\n")

	var out bytes.Buffer
	cmd := newStatsTestCmd(&out)

	if err := runStats(cmd, []string{file}); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}
	if !strings.Contains(out.String(), "Patterns found: 0, selected: 0") {
		t.Errorf("output = %q", out.String())
	}
}
