package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/link-foundation/deduplino/internal/config"
	"github.com/link-foundation/deduplino/internal/dedup"
	"github.com/link-foundation/deduplino/internal/lino"
	"github.com/link-foundation/deduplino/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup [flags] [file...]",
	Short: "Deduplicate link-notation input",
	Long: `Read link-notation text from files (or stdin when no files are given),
replace repeated token sequences with numbered back-references, and write
the result to stdout or a file.

File arguments support glob patterns including "**", and files ending in
.gz are decompressed transparently.

Examples:
  deduplino dedup input.lino
  cat input.lino | deduplino dedup
  deduplino dedup --top 0.5 --auto-escape "logs/**/*.log"
  deduplino dedup --strict -o out.lino input.lino`,
	RunE: runDedup,
}

func init() {
	dedupCmd.Flags().Float64("top", dedup.DefaultTopPercentage, "fraction of discovered patterns to apply (0..1)")
	dedupCmd.Flags().Bool("auto-escape", false, "repair raw text that would otherwise fail to parse")
	dedupCmd.Flags().Bool("strict", false, "treat parse failures as errors")
	dedupCmd.Flags().StringP("output", "o", "", "write result to file instead of stdout")

	rootCmd.AddCommand(dedupCmd)
}

func runDedup(cmd *cobra.Command, args []string) error {
	d, err := buildDeduplicator(cmd)
	if err != nil {
		return err
	}

	text, err := gatherInput(cmd, args)
	if err != nil {
		return err
	}

	res, err := d.Run(text)
	if err != nil {
		return err
	}

	if !res.Success {
		fmt.Fprintln(cmd.ErrOrStderr(), res.Reason)
	} else if viper.GetBool("verbose") {
		fmt.Fprintf(cmd.ErrOrStderr(), "Applied %d pattern(s)\n", res.PatternsApplied)
	}

	return writeResult(cmd, res)
}

// buildDeduplicator merges config defaults with command flags and validates
// caller input the core itself does not check.
func buildDeduplicator(cmd *cobra.Command) (*dedup.Deduplicator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	top := cfg.TopPercentage
	if cmd.Flags().Changed("top") {
		top, _ = cmd.Flags().GetFloat64("top")
	}
	if err := config.ValidateTopPercentage(top); err != nil {
		return nil, err
	}

	autoEscape := cfg.AutoEscape
	if cmd.Flags().Changed("auto-escape") {
		autoEscape, _ = cmd.Flags().GetBool("auto-escape")
	}

	strict := cfg.Strict
	if cmd.Flags().Changed("strict") {
		strict, _ = cmd.Flags().GetBool("strict")
	}

	return dedup.New(
		dedup.WithTopPercentage(top),
		dedup.WithAutoEscape(autoEscape),
		dedup.WithFailOnParseError(strict),
	), nil
}

// gatherInput concatenates all input files, or reads stdin when no file
// arguments were given.
func gatherInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	files, err := config.ExpandGlobs(args)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, file := range files {
		text, err := lino.ReadFile(file)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimRight(text, "\n"))
	}
	return strings.Join(parts, "\n"), nil
}

// writeResult sends the result to --output or stdout in the configured
// format.
func writeResult(cmd *cobra.Command, res *dedup.Result) error {
	format := output.ParseFormat(viper.GetString("format"))
	outPath, _ := cmd.Flags().GetString("output")

	if outPath == "" {
		return output.New(cmd.OutOrStdout(), format).WriteResult(res)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := output.New(f, format).WriteResult(res); err != nil {
		return err
	}
	if viper.GetBool("verbose") {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
	}
	return nil
}
