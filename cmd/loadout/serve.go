package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	v1 "github.com/KirkDiggler/loadout-efficiency/internal/handlers/api/v1"
	"github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis"
	"github.com/KirkDiggler/loadout-efficiency/internal/pkg/clock"
	"github.com/KirkDiggler/loadout-efficiency/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/loadout-efficiency/internal/redis"
	"github.com/KirkDiggler/loadout-efficiency/internal/repositories/catalog"
	"github.com/KirkDiggler/loadout-efficiency/internal/repositories/report"
)

var (
	httpAddr  string
	redisAddr string
	reportDB  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serve damage calculations and rankings over the catalog stored in Redis.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "listen address (default $LOADOUT_HTTP_ADDR)")
	serveCmd.Flags().StringVar(&redisAddr, "redis", "", "redis address (default $LOADOUT_REDIS_ADDR)")
	serveCmd.Flags().StringVar(&reportDB, "reports", "", "SQLite report database (default $LOADOUT_REPORT_DB)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	service, closeDeps, err := newAnalysisService(ctx, override(redisAddr, cfg.RedisAddr), override(reportDB, cfg.ReportDB))
	if err != nil {
		return err
	}
	defer closeDeps()

	handler, err := v1.NewHandler(&v1.HandlerConfig{AnalysisService: service})
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	srv := &http.Server{
		Addr:              override(httpAddr, cfg.HTTPAddr),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop", "error", err)
			return srv.Close()
		}
		slog.Info("Server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

// newAnalysisService wires the Redis catalog and, when reportPath is set,
// the SQLite report store
func newAnalysisService(ctx context.Context, redisEndpoint, reportPath string) (analysis.Service, func(), error) {
	client, err := redisclient.Connect(ctx, redisEndpoint, nil)
	if err != nil {
		return nil, nil, err
	}
	closers := []func() error{client.Close}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				slog.Warn("Failed to close dependency", "error", err)
			}
		}
	}

	catalogRepo, err := catalog.NewRedis(&catalog.RedisConfig{Client: client})
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	var reportRepo report.Repository
	if reportPath != "" {
		var db *sql.DB
		db, err = report.Open(ctx, reportPath)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, db.Close)

		reportRepo, err = report.NewSQLite(&report.SQLiteConfig{
			DB:          db,
			Clock:       clock.New(),
			IDGenerator: idgen.NewUUID("report"),
		})
		if err != nil {
			closeAll()
			return nil, nil, err
		}
	}

	service, err := analysis.NewOrchestrator(&analysis.Config{
		CatalogRepo: catalogRepo,
		ReportRepo:  reportRepo,
	})
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return service, closeAll, nil
}

func override(flag, fromEnv string) string {
	if flag != "" {
		return flag
	}
	return fromEnv
}
