package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damon-houk/fxrate-store/internal/application/service"
	"github.com/damon-houk/fxrate-store/internal/config"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/db"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/handler"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/metrics"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	dotenv := flag.String("env-file", ".env", "optional dotenv file")
	usage := flag.Bool("usage", false, "print supported environment variables and exit")
	flag.Parse()

	if *usage {
		text, err := config.Usage()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(text)
		return
	}

	cfg, err := config.Load(*dotenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewJSONLogger(os.Stdout, cfg.LogLevel())
	logger.SetDefaultLogger(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped with error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	log.Info("Starting exchange rate store", map[string]interface{}{
		"engine": cfg.Storage.Engine,
		"addr":   cfg.HTTP.Addr,
	})

	repo, closer, err := db.OpenExchangeRateRepository(cfg.StorageOptions(log))
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("Error closing storage", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	rateService := service.NewExchangeRateService(metrics.NewInstrumentedRepository(repo, m), log)
	rateHandler := handler.NewExchangeRateHandler(rateService, log)

	router := mux.NewRouter()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.MetricsMiddleware(m),
	)
	rateHandler.RegisterRoutes(router)
	router.HandleFunc("/healthz", handler.HealthCheck).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", map[string]interface{}{"addr": cfg.HTTP.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
