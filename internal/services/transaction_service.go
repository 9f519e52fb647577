package services

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/ledger"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/money"
	"github.com/Kola-Kola/personal-finance/internal/pagination"
	"github.com/Kola-Kola/personal-finance/internal/store"
)

// ErrorReporter receives mutation failures so readers can display them.
type ErrorReporter interface {
	ReportError(err error)
}

// transactionService handles transaction-related business logic.
type transactionService struct {
	store    store.Store
	reporter ErrorReporter
	now      func() time.Time
}

// NewTransactionService creates a new TransactionServicer. reporter may be nil.
func NewTransactionService(s store.Store, reporter ErrorReporter) TransactionServicer {
	return &transactionService{store: s, reporter: reporter, now: time.Now}
}

// CreateTransaction validates and stores a new transaction. Amounts are
// stored as magnitudes; a zero amount is rejected.
func (s *transactionService) CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	amount := in.Amount.Abs()
	if amount.IsZero() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !in.Category.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category")
	}

	// Default date to now if not provided
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	tx := &models.Transaction{
		Amount:      money.New(amount),
		Date:        date,
		Category:    in.Category,
		Description: strings.TrimSpace(in.Description),
		IsRecurring: in.IsRecurring,
	}
	if in.IsRecurring {
		if in.ChargeDay == nil || !models.ValidChargeDay(*in.ChargeDay) {
			return nil, apperrors.ErrInvalidChargeDay
		}
		day := *in.ChargeDay
		tx.ChargeDay = &day
	}
	if err := tx.Validate(); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	if _, err := s.store.Create(ctx, tx); err != nil {
		return nil, s.fail(err)
	}
	return tx, nil
}

// GetTransactionByID retrieves a transaction by ID
func (s *transactionService) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return tx, nil
}

// ListTransactions returns a page of transactions matching filter, newest
// date first.
func (s *transactionService) ListTransactions(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, translateStoreError(err)
	}

	result := pagination.Slice(applyTransactionFilters(all, filter), page)
	return &result, nil
}

func applyTransactionFilters(txs []models.Transaction, f TransactionFilter) []models.Transaction {
	switch {
	case f.Month != nil && f.Recurring != nil:
		txs = ledger.FilterByMonth(txs, *f.Month, *f.Recurring)
	case f.Month != nil:
		m := *f.Month
		txs = keep(txs, func(t *models.Transaction) bool {
			return t.IsRecurring || m.Contains(t.Date)
		})
	case f.Recurring != nil:
		want := *f.Recurring
		txs = keep(txs, func(t *models.Transaction) bool { return t.IsRecurring == want })
	}
	if f.Category != nil {
		cat := *f.Category
		txs = keep(txs, func(t *models.Transaction) bool { return t.Category == cat })
	}
	return txs
}

func keep(txs []models.Transaction, fn func(*models.Transaction) bool) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if fn(&txs[i]) {
			out = append(out, txs[i])
		}
	}
	return out
}

// UpdateTransaction applies patch through the override writer. Changing the
// amount of a recurring transaction appends an override instead of
// overwriting the base amount.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, patch ledger.Patch) (*models.Transaction, error) {
	if patch.Amount != nil && patch.Amount.IsZero() {
		return nil, apperrors.ErrInvalidAmount
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category")
	}
	if patch.ChargeDay != nil && !models.ValidChargeDay(*patch.ChargeDay) {
		return nil, apperrors.ErrInvalidChargeDay
	}

	now := s.now()
	tx, err := s.store.Update(ctx, id, func(cur *models.Transaction) error {
		next := ledger.ApplyEdit(*cur, patch, now)
		if next.IsRecurring && next.ChargeDay == nil {
			return apperrors.ErrInvalidChargeDay
		}
		if err := next.Validate(); err != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		*cur = next
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, s.fail(err)
	}
	return tx, nil
}

// DeleteTransaction removes a transaction together with its overrides.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail(err)
	}
	return nil
}

// fail records a store failure for readers and translates it.
func (s *transactionService) fail(err error) error {
	if s.reporter != nil {
		s.reporter.ReportError(err)
	}
	return translateStoreError(err)
}

func translateStoreError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.ErrTransactionNotFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
