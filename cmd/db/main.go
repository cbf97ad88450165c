package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"number-persistence/internal/logging"
	"number-persistence/internal/sink"
)

const dropTables = `
	DROP INDEX IF EXISTS idx_records_run_id;
	DROP TABLE IF EXISTS records;
	DROP TABLE IF EXISTS runs;
`

func main() {
	reset := flag.Bool("reset", false, "Drop existing runs and records before creating the schema")
	flag.Parse()

	logger, err := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbPath := getDBPath()
	if err := setup(dbPath, *reset, logger); err != nil {
		logger.Fatal("database setup failed", zap.String("db", dbPath), zap.Error(err))
	}

	logger.Info("database setup completed", zap.String("db", dbPath))
	fmt.Printf("Record store ready at %s\n", dbPath)
	fmt.Println("Use it with: persistence long-search --db", dbPath)
}

// setup applies the record schema to the database at dbPath, optionally
// dropping what was there first.
func setup(dbPath string, reset bool, logger *zap.Logger) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if reset {
		logger.Info("dropping existing tables")
		if _, err := db.Exec(dropTables); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	logger.Info("creating tables")
	if _, err := db.Exec(sink.Schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func getDBPath() string {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./persistence.db"
	}
	return dbPath
}
