package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"number-persistence/internal/persistence"
	"number-persistence/internal/search"
	"number-persistence/internal/sink"
)

var (
	longExponent     int
	longOutput       string
	longDB           string
	longSubstitution string
)

// longSearchCmd runs the heuristic search over very long numbers
var longSearchCmd = &cobra.Command{
	Use:   "long-search",
	Short: "Heuristically search [10^k, 10^(k+1)) for persistence records",
	Long: `Walks the range of (k+1)-digit numbers, skipping candidates whose digits
are unlikely to produce a record, and appends every new maximum to a CSV log
as "<value>,<persistence>". Stop it with Ctrl-C; the log keeps what was found.

Example:
  persistence long-search --exponent 233 --output records.csv`,
	Args: cobra.NoArgs,
	RunE: runLongSearch,
}

func init() {
	longSearchCmd.Flags().IntVarP(&longExponent, "exponent", "k", -1, "Search [10^k, 10^(k+1)) (default: search.exponent)")
	longSearchCmd.Flags().StringVarP(&longOutput, "output", "o", "", "CSV record log (default: search.output)")
	longSearchCmd.Flags().StringVar(&longDB, "db", "", "Also store records in this SQLite database (default: database.path)")
	longSearchCmd.Flags().StringVar(&longSubstitution, "substitution", "", "Digit substitution policy (default: search.substitution)")
}

func runLongSearch(cmd *cobra.Command, args []string) error {
	exponent := cfg.Search.Exponent
	if longExponent >= 0 {
		exponent = longExponent
	}

	sub, err := search.SubstitutionByName(firstNonEmpty(longSubstitution, cfg.Search.Substitution))
	if err != nil {
		return err
	}

	csvLog, err := sink.NewCSVLog(firstNonEmpty(longOutput, cfg.Search.Output))
	if err != nil {
		return err
	}

	opts := append(cfg.CalculatorOptions(), persistence.WithStrategy(persistence.StrategyDivideAndConquer))
	calc, err := persistence.New(opts...)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	start, end := search.LongSearchRange(exponent)

	sinks := []search.Sink{csvLog}
	run, closeStore, err := startStoredRun(ctx, firstNonEmpty(longDB, cfg.Database.Path), search.VariantHeuristic, start, end)
	if err != nil {
		return err
	}
	defer closeStore()
	if run != nil {
		sinks = append(sinks, run)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Searching %d-digit numbers\n", exponent+1)
	fmt.Fprintf(out, "Record log: %s\n", csvLog.Path())

	searcher := search.Heuristic(calc, sink.Multi(sinks...),
		search.WithSubstitution(sub),
		search.WithLogger(logger),
		search.WithProgress(progressReporter(cmd), cfg.Search.ProgressInterval),
	)

	res, runErr := searcher.Run(ctx, start, end)
	finishStoredRun(ctx, run, res)

	fmt.Fprintf(out, "Candidates tested: %d\n", res.Candidates)
	fmt.Fprintf(out, "Records found: %d\n", res.Records)
	if res.Best.Value != nil {
		fmt.Fprintf(out, "Best persistence: %d\n", res.Best.Persistence)
	}
	if res.SinkFailures > 0 {
		logger.Warn("some records were not written", zap.Int("sink_failures", res.SinkFailures))
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
