package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"number-persistence/internal/persistence"
	"number-persistence/internal/search"
	"number-persistence/internal/sink"
)

var searchDB string

// searchCmd runs the exhaustive search over a small range
var searchCmd = &cobra.Command{
	Use:   "search <begin> <end>",
	Short: "Exhaustively search [begin, end) for persistence records",
	Long: `Tests every value in [begin, end), with zero digits rewritten to ones,
and prints each number that sets a new maximum persistence. The overall
record is printed when the range is done.

Example:
  persistence search 1 1000`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchDB, "db", "", "Also store records in this SQLite database (default: database.path)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	begin, err := persistence.ParseNumber(args[0])
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	end, err := persistence.ParseNumber(args[1])
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}

	calc, err := persistence.New(cfg.CalculatorOptions()...)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	sinks := []search.Sink{sink.NewPrinter(out)}
	run, closeStore, err := startStoredRun(ctx, firstNonEmpty(searchDB, cfg.Database.Path), search.VariantExhaustive, begin, end)
	if err != nil {
		return err
	}
	defer closeStore()
	if run != nil {
		sinks = append(sinks, run)
	}

	searcher := search.Exhaustive(calc, sink.Multi(sinks...),
		search.WithLogger(logger),
		search.WithProgress(progressReporter(cmd), cfg.Search.ProgressInterval),
	)

	res, runErr := searcher.Run(ctx, begin, end)
	finishStoredRun(ctx, run, res)

	if res.Best.Value != nil {
		fmt.Fprintf(out, "Overall record: %s\n", res.Best.Value)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// startStoredRun opens the record store at dbPath and registers a run. With
// an empty dbPath it returns a nil run and a no-op closer.
func startStoredRun(ctx context.Context, dbPath string, variant search.Variant, begin, end *big.Int) (*sink.Run, func(), error) {
	noop := func() {}
	if dbPath == "" {
		return nil, noop, nil
	}

	store, err := sink.OpenStore(dbPath)
	if err != nil {
		return nil, noop, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close record store", zap.Error(err))
		}
	}

	run, err := store.StartRun(ctx, variant, begin, end)
	if err != nil {
		closeStore()
		return nil, noop, err
	}
	logger.Info("recording run", zap.String("run_id", run.ID()), zap.String("db", dbPath))
	return run, closeStore, nil
}

// finishStoredRun stores the run summary, even after cancellation.
func finishStoredRun(ctx context.Context, run *sink.Run, res search.Result) {
	if run == nil {
		return
	}
	if err := run.Finish(context.WithoutCancel(ctx), res); err != nil {
		logger.Warn("failed to finish run", zap.String("run_id", run.ID()), zap.Error(err))
	}
}
