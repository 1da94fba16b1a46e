package worker

// sweep_cron.go
// Background goroutine that periodically scans the inventory for active
// ingredients below their minimum stock and enqueues a digest alert email.
// Complements the per-movement alert: catches drift from deleted movements
// and minimum-stock changes that happen without any movement.

import (
	"context"
	"time"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// StockSweepConfig holds all dependencies for the sweep goroutine.
type StockSweepConfig struct {
	InventarioRepo repository.InventarioRepository
	Dispatcher     *Dispatcher
	Interval       time.Duration
}

// StartStockSweep launches a background goroutine that ticks every
// cfg.Interval, computes the low-stock set, and enqueues one digest job when
// it is non-empty. It respects the context for graceful shutdown.
func StartStockSweep(ctx context.Context, cfg StockSweepConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("stock_sweep: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stock_sweep: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, cfg)
			}
		}
	}()
}

func sweep(ctx context.Context, cfg StockSweepConfig) {
	registros, err := cfg.InventarioRepo.ListarRegistros(ctx)
	if err != nil {
		log.Error().Err(err).Msg("stock_sweep: failed to list inventory records")
		return
	}

	var items []AlertaStockItem
	for _, reg := range registros {
		if reg.Insumo == nil || !reg.Insumo.Activo {
			continue
		}
		if reg.CantidadActual.LessThan(reg.Insumo.StockMinimo) {
			items = append(items, AlertaStockItem{
				Insumo:         reg.Insumo.Nombre,
				UnidadMedida:   reg.Insumo.UnidadMedida,
				CantidadActual: reg.CantidadActual.String(),
				StockMinimo:    reg.Insumo.StockMinimo.String(),
			})
		}
	}

	if len(items) == 0 {
		return
	}

	if err := cfg.Dispatcher.EnqueueAlertaStock(ctx, AlertaStockPayload{Items: items}); err != nil {
		log.Error().Err(err).Msg("stock_sweep: failed to enqueue alert")
		return
	}
	log.Info().Int("insumos", len(items)).Msg("stock_sweep: low-stock digest enqueued")
}
