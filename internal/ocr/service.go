// Package ocr imports supplier receipts into a business's scan history.
package ocr

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Simplici0/bizness/internal/metrics"
	"github.com/Simplici0/bizness/internal/store"
	"github.com/Simplici0/bizness/internal/validation"
)

// History persists scans.
type History interface {
	SaveScan(ctx context.Context, businessID string, doc validation.OCRDocument, accepted bool) (store.Scan, error)
	ListScans(ctx context.Context, businessID string) ([]store.Scan, error)
}

// Service runs a Scanner and records every result. An unusable extraction
// never blocks the import: it is replaced by the default document.
type Service struct {
	scanner Scanner
	history History
	now     func() time.Time
}

// NewService returns a Service.
func NewService(scanner Scanner, history History) *Service {
	return &Service{scanner: scanner, history: history, now: time.Now}
}

// Scan extracts upload and appends the normalized document to the history
// of businessID.
func (s *Service) Scan(ctx context.Context, businessID string, upload Upload) (store.Scan, error) {
	logger := zerolog.Ctx(ctx)

	raw, err := s.scanner.Extract(ctx, upload)
	if err != nil {
		if ctx.Err() != nil {
			return store.Scan{}, ctx.Err()
		}
		logger.Warn().Err(err).Str("file", upload.Filename).Msg("receipt extraction failed")
		raw = nil
	}

	doc, accepted := validation.ParseOCRDocument(raw, s.now())
	if accepted {
		metrics.OCRScans.WithLabelValues(metrics.OutcomeAccepted).Inc()
	} else {
		metrics.OCRScans.WithLabelValues(metrics.OutcomeDefaulted).Inc()
		logger.Info().Str("file", upload.Filename).Msg("receipt replaced by default document")
	}

	return s.history.SaveScan(ctx, businessID, doc, accepted)
}

// History lists the scans of businessID, newest first.
func (s *Service) History(ctx context.Context, businessID string) ([]store.Scan, error) {
	return s.history.ListScans(ctx, businessID)
}
