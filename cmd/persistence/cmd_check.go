package main

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"number-persistence/internal/persistence"
)

var (
	checkFile     string
	checkVerbose  bool
	checkWorkers  int
	checkOutput   string
	checkStrategy string
)

// checkCmd computes the persistence of individual numbers
var checkCmd = &cobra.Command{
	Use:   "check [number...]",
	Short: "Compute the multiplicative persistence of numbers",
	Long: `Prints the persistence of each number. A single number prints just the
count; several numbers (or --file) print "<value>,<persistence>" lines,
computed in parallel.

Example:
  persistence check 277777788888899
  persistence check --verbose 39
  persistence check --file numbers.txt --output results.csv`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Read numbers from a file, one per line")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Print every reduction step of a single number")
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "w", 0, "Parallel workers for batches (default: search.workers or all CPUs)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Write batch results to this file instead of stdout")
	checkCmd.Flags().StringVar(&checkStrategy, "strategy", "fold", "Digit product strategy: fold or divide-and-conquer")
}

func runCheck(cmd *cobra.Command, args []string) error {
	strategy, err := parseStrategy(checkStrategy)
	if err != nil {
		return err
	}

	numbers := make([]*big.Int, 0, len(args))
	for _, arg := range args {
		n, err := persistence.ParseNumber(arg)
		if err != nil {
			return err
		}
		numbers = append(numbers, n)
	}
	if checkFile != "" {
		loaded, err := persistence.LoadNumbers(checkFile)
		if err != nil {
			return err
		}
		numbers = append(numbers, loaded...)
	}
	if len(numbers) == 0 {
		return errors.New("no numbers given: pass them as arguments or use --file")
	}

	opts := append(cfg.CalculatorOptions(), persistence.WithStrategy(strategy))
	out := cmd.OutOrStdout()

	if len(numbers) == 1 && checkFile == "" && checkOutput == "" {
		calc, err := persistence.New(opts...)
		if err != nil {
			return err
		}
		if checkVerbose {
			steps := calc.Steps(numbers[0])
			parts := make([]string, len(steps))
			for i, s := range steps {
				parts[i] = s.String()
			}
			fmt.Fprintln(out, strings.Join(parts, " -> "))
			fmt.Fprintln(out, len(steps)-1)
			return nil
		}
		fmt.Fprintln(out, calc.Persistence(numbers[0]))
		return nil
	}

	workers := checkWorkers
	if workers <= 0 {
		workers = cfg.Search.Workers
	}

	results, err := persistence.CheckAll(commandContext(cmd), numbers, workers, opts...)
	if err != nil {
		return fmt.Errorf("batch check: %w", err)
	}
	logger.Debug("batch check finished", zap.Int("numbers", len(results)), zap.Int("workers", workers))

	if checkOutput != "" {
		if err := persistence.WriteResults(results, checkOutput); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d results to %s\n", len(results), checkOutput)
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(out, "%s,%d\n", r.Value, r.Persistence)
	}
	return nil
}

func parseStrategy(s string) (persistence.Strategy, error) {
	switch strings.ToLower(s) {
	case "", "fold":
		return persistence.StrategyFold, nil
	case "divide-and-conquer", "dc":
		return persistence.StrategyDivideAndConquer, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want fold or divide-and-conquer)", s)
	}
}
