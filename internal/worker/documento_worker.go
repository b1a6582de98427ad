package worker

// documento_worker.go
// Processes document jobs from QueueDocumentos: renders the purchase order
// PDF and, when the supplier has an email address, enqueues the send.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Fpidal/recetas-tero-sub001/internal/infra"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DocumentoJobPayload is the job envelope sent to QueueDocumentos.
type DocumentoJobPayload struct {
	OrdenID string `json:"orden_id"`
}

// DocumentoWorker renders the order PDF, persists its path, and hands the
// delivery off to the email queue.
type DocumentoWorker struct {
	ordenRepo      repository.OrdenCompraRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	nombreLocal    string
}

func NewDocumentoWorker(ordenRepo repository.OrdenCompraRepository, dispatcher *Dispatcher, pdfStoragePath, nombreLocal string) *DocumentoWorker {
	return &DocumentoWorker{
		ordenRepo:      ordenRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		nombreLocal:    nombreLocal,
	}
}

func (w *DocumentoWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload DocumentoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("documento_worker: invalid payload")
		return nil // malformed payloads never succeed, skip the retries
	}
	ordenID, err := uuid.Parse(payload.OrdenID)
	if err != nil {
		log.Error().Str("orden_id", payload.OrdenID).Msg("documento_worker: invalid orden_id")
		return nil
	}

	orden, err := w.ordenRepo.FindByID(ctx, ordenID)
	if err != nil {
		return fmt.Errorf("documento_worker: fetch orden %s: %w", payload.OrdenID, err)
	}

	pdfPath, err := infra.GenerateOrdenPDF(orden, w.nombreLocal, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("documento_worker: generate PDF for %s: %w", orden.Numero, err)
	}
	if err := w.ordenRepo.SetPDFPath(ctx, ordenID, pdfPath); err != nil {
		return fmt.Errorf("documento_worker: persist pdf path for %s: %w", orden.Numero, err)
	}
	log.Info().Str("pdf", pdfPath).Str("numero", orden.Numero).Msg("documento_worker: PDF generated")

	if orden.Proveedor.Email == nil || *orden.Proveedor.Email == "" {
		log.Warn().Str("numero", orden.Numero).Msg("documento_worker: supplier has no email, document not sent")
		return nil
	}
	emailJob := EmailJobPayload{
		ToEmail: *orden.Proveedor.Email,
		Subject: fmt.Sprintf("Orden de compra %s — %s", orden.Numero, w.nombreLocal),
		Body:    fmt.Sprintf("Adjuntamos la orden de compra %s.\nTotal: $%s", orden.Numero, orden.Total.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EncolarEmail(ctx, emailJob); err != nil {
		return fmt.Errorf("documento_worker: enqueue email for %s: %w", orden.Numero, err)
	}
	log.Info().Str("to", *orden.Proveedor.Email).Str("numero", orden.Numero).Msg("documento_worker: email job enqueued")
	return nil
}
