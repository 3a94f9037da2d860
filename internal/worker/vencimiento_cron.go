package worker

// vencimiento_cron.go
// Background goroutine that periodically flips PENDIENTE invoices past their
// due date to VENCIDA. The sweep is a single conditional UPDATE, so it is
// safe to run on every instance of the server.

import (
	"context"
	"time"

	"coopelec/internal/repository"

	"github.com/rs/zerolog/log"
)

const vencimientoTickInterval = time.Hour

// StartVencimientoCron launches the overdue-invoice sweep. It runs once at
// startup and then on every tick, and respects the context for graceful
// shutdown.
func StartVencimientoCron(ctx context.Context, facturaRepo repository.FacturaRepository) {
	go func() {
		ticker := time.NewTicker(vencimientoTickInterval)
		defer ticker.Stop()

		log.Info().Msg("vencimiento_cron: started")
		sweep(ctx, facturaRepo)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencimiento_cron: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, facturaRepo)
			}
		}
	}()
}

func sweep(ctx context.Context, facturaRepo repository.FacturaRepository) {
	n, err := facturaRepo.MarcarVencidas(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("vencimiento_cron: sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int64("facturas", n).Msg("vencimiento_cron: invoices marked overdue")
	}
}
