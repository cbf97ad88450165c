package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"number-persistence/internal/sink"
)

var (
	recordsDB    string
	recordsLimit int
)

// recordsCmd lists records stored by earlier searches
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List stored persistence records, newest first",
	Long: `Prints "<run_id>,<value>,<persistence>" for records stored by search or
long-search runs that were given a database.`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().StringVar(&recordsDB, "db", "", "SQLite record store (default: database.path)")
	recordsCmd.Flags().IntVarP(&recordsLimit, "limit", "n", 50, "Maximum records to list")
}

func runRecords(cmd *cobra.Command, args []string) error {
	dbPath := firstNonEmpty(recordsDB, cfg.Database.Path)
	if dbPath == "" {
		return errors.New("no record store: set --db, database.path or DB_PATH")
	}
	if recordsLimit < 1 {
		return fmt.Errorf("--limit must be positive, got %d", recordsLimit)
	}

	store, err := sink.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListRecords(commandContext(cmd), recordsLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range records {
		fmt.Fprintf(out, "%s,%s,%d\n", r.RunID, r.Value, r.Persistence)
	}
	return nil
}
