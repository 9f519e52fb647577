package services

import (
	"context"
	"io"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/importer"
	"github.com/Kola-Kola/personal-finance/internal/store"
)

// importService loads legacy exports into the record store.
type importService struct {
	store    store.Store
	reporter ErrorReporter
}

// NewImportService creates a new ImportServicer. reporter may be nil.
func NewImportService(s store.Store, reporter ErrorReporter) ImportServicer {
	return &importService{store: s, reporter: reporter}
}

// ImportLegacy decodes an export and creates every convertible record.
// Unconvertible records are listed in the result, not treated as errors.
func (s *importService) ImportLegacy(ctx context.Context, r io.Reader) (*importer.Result, error) {
	records, err := importer.Decode(r)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	result, err := importer.Import(ctx, s.store, records)
	if err != nil {
		if s.reporter != nil {
			s.reporter.ReportError(err)
		}
		return result, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}
