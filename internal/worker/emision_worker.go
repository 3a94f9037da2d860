package worker

// emision_worker.go
// Processes invoice-emission jobs from QueueEmision: renders the PDF, stores
// its path on the invoice, and emails it to the member when an address is on
// file. The SMTP send goes through the circuit breaker with exponential
// backoff; exhausted retries land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coopelec/internal/infra"
	"coopelec/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmisionJobPayload is the job envelope sent to QueueEmision.
type EmisionJobPayload struct {
	FacturaID string `json:"factura_id"`
}

// EmisionWorker renders and delivers emitted invoices.
type EmisionWorker struct {
	facturaRepo    repository.FacturaRepository
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	rdb            *redis.Client
	pdfStoragePath string
}

func NewEmisionWorker(
	facturaRepo repository.FacturaRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
	pdfStoragePath string,
) *EmisionWorker {
	return &EmisionWorker{
		facturaRepo:    facturaRepo,
		mailer:         mailer,
		cb:             cb,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single emission job:
//  1. Parse EmisionJobPayload from the job envelope
//  2. Fetch the Factura (with cuenta+socio) from DB
//  3. Generate the PDF and persist its path
//  4. Email the PDF to the member (circuit breaker + backoff)
func (w *EmisionWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmisionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("emision_worker: invalid payload")
		return
	}

	facturaID, err := uuid.Parse(payload.FacturaID)
	if err != nil {
		log.Error().Str("factura_id", payload.FacturaID).Msg("emision_worker: invalid factura_id")
		return
	}

	factura, err := w.facturaRepo.FindByID(ctx, facturaID)
	if err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("emision_worker: factura not found")
		return
	}

	pdfPath, err := infra.GenerateFacturaPDF(factura, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("emision_worker: PDF generation failed")
		return
	}
	if err := w.facturaRepo.UpdatePDFPath(ctx, facturaID, pdfPath); err != nil {
		log.Warn().Err(err).Str("factura_id", payload.FacturaID).Msg("emision_worker: failed to store pdf path")
	}
	log.Info().Str("pdf", pdfPath).Str("factura_id", payload.FacturaID).Msg("emision_worker: PDF generated")

	if factura.Cuenta == nil || factura.Cuenta.Socio == nil || factura.Cuenta.Socio.Email == nil {
		return // no address on file — PDF stays available for download
	}
	to := *factura.Cuenta.Socio.Email

	subject := fmt.Sprintf("Factura %s — Cuenta %s", factura.Periodo, factura.Cuenta.NumeroCuenta)
	body := fmt.Sprintf(
		"Adjuntamos su factura del periodo %s.\nImporte: $%s\nVencimiento: %s",
		factura.Periodo, factura.Importe.StringFixed(2), factura.FechaVencimiento.Format("02/01/2006"))

	const maxAttempts = 3
	sendErr := withRetry(ctx, maxAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.mailer.Send(to, subject, body, pdfPath)
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", to).Str("factura_id", payload.FacturaID).
			Msg("emision_worker: email failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueEmision, "emision", raw,
			fmt.Sprintf("email failed after %d attempts: %v", maxAttempts, sendErr), maxAttempts)
		return
	}
	log.Info().Str("to", to).Str("factura_id", payload.FacturaID).Msg("emision_worker: factura emailed")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
