package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/link-foundation/deduplino/internal/config"
	"github.com/link-foundation/deduplino/internal/dedup"
	"github.com/link-foundation/deduplino/internal/output"
	"github.com/link-foundation/deduplino/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Re-run deduplication whenever a file changes",
	Long: `Watch an input file and re-run deduplication on every change, printing
a one-line status per run. With --output the rewritten text is written to
a file each time, making this usable as a live companion to an editor or
a log producer.

Examples:
  deduplino watch input.lino
  deduplino watch --output out.lino input.lino
  deduplino watch --debounce 1s --auto-escape app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Float64("top", dedup.DefaultTopPercentage, "fraction of discovered patterns to apply (0..1)")
	watchCmd.Flags().Bool("auto-escape", false, "repair raw text that would otherwise fail to parse")
	watchCmd.Flags().StringP("output", "o", "", "write result to file on each run")
	watchCmd.Flags().String("debounce", "200ms", "quiet period before re-running (e.g. 500ms, 2s)")
	watchCmd.Flags().Bool("no-color", false, "disable colored status output")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	outPath, _ := cmd.Flags().GetString("output")
	debounceStr, _ := cmd.Flags().GetString("debounce")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %s", filePath)
	}

	debounce, err := config.ParseDuration(debounceStr)
	if err != nil {
		return fmt.Errorf("invalid --debounce value: %w", err)
	}

	d, err := buildDeduplicator(cmd)
	if err != nil {
		return err
	}

	colorMode := output.ColorAuto
	if noColor {
		colorMode = output.ColorNever
	}
	status := output.New(cmd.OutOrStdout(), output.FormatText)

	process := func(text string) error {
		res, err := d.Run(text)
		if err != nil {
			return err
		}
		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(res.Output), 0o644); err != nil {
				return fmt.Errorf("writing output file: %w", err)
			}
		}
		return status.WriteStatus(res.Success, res.PatternsApplied, res.Reason, colorMode)
	}

	watcher := watch.New(watch.Options{
		FilePath: filePath,
		Debounce: debounce,
		Initial:  true,
		Process:  process,
	})

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- watcher.Run(ctx)
	}()

	select {
	case <-sigChan:
		cancel()
		<-errChan
		return nil
	case err := <-errChan:
		return err
	}
}
