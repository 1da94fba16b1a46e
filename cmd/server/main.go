package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/config"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/infra"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/router"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Circuit breaker guards the Redis pub/sub notification channel.
	notifyCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	// Worker pool for async jobs (low-stock alert emails). Handlers are wired
	// here (composition root) so the pool has access to all infrastructure.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	workerHandlers := &worker.WorkerHandlers{
		AlertaStock: worker.NewAlertaStockWorker(mailer, cfg.AlertasEmail),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Background sweep: catches low-stock drift that no movement triggered.
	inventarioRepo := repository.NewInventarioRepository(db)
	worker.StartStockSweep(ctx, worker.StockSweepConfig{
		InventarioRepo: inventarioRepo,
		Dispatcher:     dispatcher,
		Interval:       time.Duration(cfg.StockSweepMinutes) * time.Minute,
	})

	r := router.New(cfg, db, rdb, notifyCB, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("restaurante backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
