package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"number-persistence/internal/api"
	"number-persistence/internal/persistence"
	"number-persistence/internal/sink"
)

var (
	serveAddr string
	serveDB   string
)

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the persistence HTTP API",
	Long: `Starts an HTTP server with:
  GET /persistence/{number}  persistence and reduction steps
  GET /records?limit=N       stored records, newest first
  GET /healthz               liveness
  GET /metrics               Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite record store (default: database.path)")
}

func runServe(cmd *cobra.Command, args []string) error {
	var store *sink.Store
	if dbPath := firstNonEmpty(serveDB, cfg.Database.Path); dbPath != "" {
		var err error
		store, err = sink.OpenStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("record store opened", zap.String("db", dbPath))
	}

	opts := append(cfg.CalculatorOptions(), persistence.WithStrategy(persistence.StrategyDivideAndConquer))
	server := api.NewServer(store, logger, cfg.Server.MaxDigits, opts...)

	srv := &http.Server{
		Addr:         firstNonEmpty(serveAddr, cfg.Server.Addr),
		Handler:      api.NewRouter(server, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(commandContext(cmd))

	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
