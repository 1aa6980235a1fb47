package cmd

import (
	"fmt"

	"github.com/link-foundation/deduplino/internal/dedup"
	"github.com/link-foundation/deduplino/internal/output"
	"github.com/pkoukk/tiktoken-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] [file...]",
	Short: "Show pattern statistics without rewriting",
	Long: `Run pattern discovery and selection over the input and report what a
dedup run would do: the selected patterns, their coverage and scores, and
the projected size savings.

With --token-model, before/after token counts for that model are included
in the report.

Examples:
  deduplino stats input.lino
  deduplino stats --format table input.lino
  deduplino stats --token-model gpt-4 --top 1.0 input.lino`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Float64("top", dedup.DefaultTopPercentage, "fraction of discovered patterns to apply (0..1)")
	statsCmd.Flags().Bool("auto-escape", false, "repair raw text that would otherwise fail to parse")
	statsCmd.Flags().String("token-model", "", "report token counts for the given model (e.g. gpt-4)")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := buildDeduplicator(cmd)
	if err != nil {
		return err
	}

	text, err := gatherInput(cmd, args)
	if err != nil {
		return err
	}

	report, err := d.Analyze(text)
	if err != nil {
		return err
	}

	format := output.ParseFormat(viper.GetString("format"))
	writer := output.New(cmd.OutOrStdout(), format)
	if err := writer.WriteReport(report); err != nil {
		return err
	}

	model := viper.GetString("token_model")
	if cmd.Flags().Changed("token-model") {
		model, _ = cmd.Flags().GetString("token-model")
	}
	if model == "" || format == output.FormatJSON {
		return nil
	}

	before, after, err := countTokens(model, text, report.Rewritten)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Tokens (%s): %d -> %d\n", model, before, after)
	return nil
}

// countTokens measures the input and projected output with the BPE encoding
// of the given model.
func countTokens(model, before, after string) (int, int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get tokenizer for model %q: %w", model, err)
	}
	return len(tkm.Encode(before, nil, nil)), len(tkm.Encode(after, nil, nil)), nil
}
