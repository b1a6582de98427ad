package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues document jobs for
// orders stuck in estado='enviada' without a generated PDF (queue push
// failed at emit time, or the job died in processing). Skips the tick while
// the SMTP circuit breaker is open so failing sends don't pile up.

import (
	"context"
	"time"

	"github.com/Fpidal/recetas-tero-sub001/internal/infra"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 60 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	OrdenRepo  repository.OrdenCompraRepository
	Dispatcher *Dispatcher
	CB         *infra.CircuitBreaker
}

// StartRetryCron launches a background goroutine that ticks every minute and
// re-enqueues documents for sent orders that still lack one. It respects the
// context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	ordenes, err := cfg.OrdenRepo.ListEnviadasSinPDF(ctx, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query orders without document")
		return
	}
	if len(ordenes) == 0 {
		return
	}

	log.Info().Int("count", len(ordenes)).Msg("retry_cron: re-enqueueing document jobs")
	for i := range ordenes {
		orden := &ordenes[i]
		if err := cfg.Dispatcher.EncolarDocumento(ctx, orden.ID); err != nil {
			log.Warn().Err(err).Str("numero", orden.Numero).Msg("retry_cron: enqueue failed")
			return
		}
	}
}
