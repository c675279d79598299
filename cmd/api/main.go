package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/invoicer/internal/app"
	"github.com/MrJamesThe3rd/invoicer/internal/config"
	"github.com/MrJamesThe3rd/invoicer/internal/database"
	"github.com/MrJamesThe3rd/invoicer/internal/event"
	invoicerHttp "github.com/MrJamesThe3rd/invoicer/internal/http"
	clientHandler "github.com/MrJamesThe3rd/invoicer/internal/http/client"
	companyHandler "github.com/MrJamesThe3rd/invoicer/internal/http/company"
	importHandler "github.com/MrJamesThe3rd/invoicer/internal/http/importcsv"
	invoiceHandler "github.com/MrJamesThe3rd/invoicer/internal/http/invoice"
	itemHandler "github.com/MrJamesThe3rd/invoicer/internal/http/item"
	reportHandler "github.com/MrJamesThe3rd/invoicer/internal/http/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(db, logger)

	relay, rdb := a.Relay(cfg, logger)
	defer rdb.Close()

	router := invoicerHttp.New(
		invoicerHttp.Config{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RateLimit:      cfg.Server.RateLimit,
			JWTSecret:      cfg.Auth.JWTSecret,
			Timeout:        cfg.Server.Timeout,
		},
		a.Company,
		companyHandler.NewHandler(a.Company),
		clientHandler.NewHandler(a.Clients),
		itemHandler.NewHandler(a.Items),
		invoiceHandler.NewHandler(a.Invoices, a.Export),
		reportHandler.NewHandler(a.Reports),
		importHandler.NewHandler(a.Importer),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "port", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		err := relay.Listen(gctx, func(env event.Envelope) {
			slog.Debug("received remote event", "kind", env.Kind, "origin", env.Origin)
		})
		if err != nil {
			slog.Warn("event relay stopped", "error", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
