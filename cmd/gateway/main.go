package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/open-stdnum-gateway/pkg/config"
	"github.com/yourusername/open-stdnum-gateway/pkg/marc"
	"github.com/yourusername/open-stdnum-gateway/pkg/telemetry"
)

// @title           Open StdNum Gateway API
// @version         1.0
// @description     Validation, normalization and conversion of ISBN, ISSN and LCCN identifiers.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8899
// @BasePath  /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const serviceName = "stdnum-gateway"

func initLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
}

// marcSelfTest round-trips a small record through the ISO 2709 encoder,
// parser and identifier extraction for the configured profile.
func marcSelfTest(p *marc.Profile) error {
	blob := marc.BuildMARC("selftest",
		marc.Field{Tag: p.ISBNTag, Subfields: []marc.Subfield{{Code: "a", Value: "0-306-40615-2 (pbk.)"}}},
		marc.Field{Tag: p.TitleTag, Indicators: "10", Subfields: []marc.Subfield{{Code: "a", Value: "Self Test"}}},
	)
	rec, err := marc.ParseMARC(blob)
	if err != nil {
		return fmt.Errorf("parse %s: %w", hex.EncodeToString(blob), err)
	}
	ids := marc.ExtractIdentifiers(rec, p)
	if len(ids) != 1 || ids[0].Normalized != "9780306406157" {
		return fmt.Errorf("unexpected identifiers %+v in %s", ids, hex.EncodeToString(blob))
	}
	slog.Info("self-test passed", "profile", p.Name, "title", rec.Title(p), "fields", len(rec.Fields))
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	initLogger(cfg.LogLevel)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.Options{
		ServiceName: serviceName,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		slog.Warn("failed to init tracer", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	gw, err := NewGateway(cfg, prometheus.NewRegistry())
	if err != nil {
		slog.Error("failed to initialize gateway", "error", err)
		return 1
	}

	slog.Info("running MARC self-test", "profile", gw.profile.Name)
	if err := marcSelfTest(gw.profile); err != nil {
		slog.Error("self-test failed", "error", err)
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           gw.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("gateway starting", "addr", httpSrv.Addr, "auth", cfg.AuthEnabled())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("gateway listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down gateway...")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("gateway stopped with error", "error", err)
		return 1
	}
	slog.Info("gateway exiting")
	return 0
}
