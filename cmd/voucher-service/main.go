package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Cheertaboi/voucher-service/internal/api"
	"github.com/Cheertaboi/voucher-service/internal/config"
	"github.com/Cheertaboi/voucher-service/internal/logging"
	"github.com/Cheertaboi/voucher-service/internal/metrics"
	"github.com/Cheertaboi/voucher-service/internal/repository"
	"github.com/Cheertaboi/voucher-service/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to $CONFIG_PATH or config/config.yaml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "voucher-service: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Env, os.Stdout)
	if err != nil {
		return err
	}
	logger = logger.With().Str("service", cfg.App.Name).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	repo, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error().Err(err).Msg("close voucher store")
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := service.NewVoucherService(repo, m)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      api.NewRouter(svc, logger, m, reg),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	logger.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Msg("starting voucher-service")
	err = serve(ctx, srv, cfg.HTTP.ShutdownTimeout)
	logger.Info().Msg("server stopped")
	return err
}

// serve runs srv until ctx is done, then shuts it down within shutdownTimeout.
// A clean shutdown returns nil.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// we received a signal or the listener failed, shut down.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("HTTP server Shutdown")
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})
	return g.Wait()
}
