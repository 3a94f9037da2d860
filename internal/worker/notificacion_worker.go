package worker

// notificacion_worker.go
// Processes member-notification jobs from QueueNotificacion. Today the only
// event is RECLAMO_RESUELTO, sent when a work order is completed.

import (
	"context"
	"encoding/json"
	"fmt"

	"coopelec/internal/infra"
	"coopelec/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NotificacionJobPayload is the job envelope sent to QueueNotificacion.
type NotificacionJobPayload struct {
	ReclamoID string `json:"reclamo_id"`
	Evento    string `json:"evento"`
}

type NotificacionWorker struct {
	reclamoRepo repository.ReclamoRepository
	socioRepo   repository.SocioRepository
	mailer      *infra.Mailer
	cb          *infra.CircuitBreaker
	rdb         *redis.Client
}

func NewNotificacionWorker(
	reclamoRepo repository.ReclamoRepository,
	socioRepo repository.SocioRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
) *NotificacionWorker {
	return &NotificacionWorker{reclamoRepo: reclamoRepo, socioRepo: socioRepo, mailer: mailer, cb: cb, rdb: rdb}
}

// Process resolves the member behind the complaint's account and emails them.
// Members without an email on file are skipped silently.
func (w *NotificacionWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notificacion_worker: invalid payload")
		return
	}

	reclamoID, err := uuid.Parse(payload.ReclamoID)
	if err != nil {
		log.Error().Str("reclamo_id", payload.ReclamoID).Msg("notificacion_worker: invalid reclamo_id")
		return
	}

	reclamo, err := w.reclamoRepo.FindByID(ctx, reclamoID)
	if err != nil {
		log.Error().Err(err).Str("reclamo_id", payload.ReclamoID).Msg("notificacion_worker: reclamo not found")
		return
	}
	if reclamo.Cuenta == nil {
		log.Warn().Str("reclamo_id", payload.ReclamoID).Msg("notificacion_worker: reclamo without cuenta")
		return
	}

	socio, err := w.socioRepo.FindByID(ctx, reclamo.Cuenta.SocioID)
	if err != nil || socio.Email == nil || *socio.Email == "" {
		return // nothing to deliver to
	}
	to := *socio.Email

	subject := fmt.Sprintf("Reclamo resuelto — Cuenta %s", reclamo.Cuenta.NumeroCuenta)
	body := fmt.Sprintf(
		"Su reclamo sobre la cuenta %s fue resuelto.\n\nDescripcion original:\n%s",
		reclamo.Cuenta.NumeroCuenta, reclamo.Descripcion)

	const maxAttempts = 3
	sendErr := withRetry(ctx, maxAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.mailer.Send(to, subject, body, "")
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", to).Str("reclamo_id", payload.ReclamoID).
			Msg("notificacion_worker: email failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueNotificacion, "notificacion", raw,
			fmt.Sprintf("email failed after %d attempts: %v", maxAttempts, sendErr), maxAttempts)
		return
	}
	log.Info().Str("to", to).Str("reclamo_id", payload.ReclamoID).Msg("notificacion_worker: member notified")
}
