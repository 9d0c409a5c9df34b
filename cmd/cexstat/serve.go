package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/cexstat/internal/api"
	"github.com/mtlprog/cexstat/internal/export"
	"github.com/mtlprog/cexstat/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "run the HTTP API with periodic portfolio refresh",
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	ctx, stop := context.WithCancel(c.Context)
	defer stop()

	d, err := newDeps()
	if err != nil {
		return err
	}

	var hook worker.AfterRefreshHook
	if d.cfg.SheetsEnabled() {
		sheets, err := export.NewSheetsWriter(ctx, d.cfg.SheetsSpreadsheetID, d.cfg.GoogleCredentialsJSON)
		if err != nil {
			return fmt.Errorf("creating sheets writer: %w", err)
		}
		hook = sheets
		slog.Info("Google Sheets export enabled", "spreadsheet", d.cfg.SheetsSpreadsheetID)
	}

	refreshWorker := worker.NewRefreshWorker(d.tracker, d.cfg.RefreshInterval, hook)
	go refreshWorker.Run(ctx)

	if d.cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, refresh endpoint is unprotected")
	}

	srv := api.NewServer(d.cfg.HTTPPort, d.tracker, d.client, d.cfg.AdminAPIKey)

	go func() {
		slog.Info("HTTP server listening", "port", d.cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
	return nil
}
