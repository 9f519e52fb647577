package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kola-Kola/personal-finance/internal/importer"
	"github.com/Kola-Kola/personal-finance/internal/ledger"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/pagination"
)

// AuthServicer defines the contract for the single-owner login.
type AuthServicer interface {
	Enabled() bool
	AttemptLogin(password string) error
}

// CategoryServicer defines the contract for reading the static category table.
type CategoryServicer interface {
	ListCategories(class *models.CategoryClass) []models.Category
	GetCategory(id models.CategoryID) (*models.Category, error)
}

// TransactionInput carries the fields of a new transaction.
type TransactionInput struct {
	Amount      decimal.Decimal
	Date        time.Time
	Category    models.CategoryID
	Description string
	IsRecurring bool
	ChargeDay   *int
}

// TransactionFilter holds optional filter parameters for listing transactions.
// With Month set and Recurring unset, the result is what counts toward that
// month: its one-time transactions plus every recurring one.
type TransactionFilter struct {
	Month     *ledger.Month
	Recurring *bool
	Category  *models.CategoryID
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(ctx context.Context, id string, patch ledger.Patch) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// MonthlyReport is the summary of one month, with the total of a single
// category when one was requested.
type MonthlyReport struct {
	ledger.Summary
	Category      *models.Category `json:"category,omitempty"`
	CategoryTotal *decimal.Decimal `json:"category_total,omitempty"`
}

// RecurringRow is one recurring transaction projected over a window.
type RecurringRow struct {
	Transaction models.Transaction   `json:"transaction"`
	Amounts     []ledger.MonthAmount `json:"amounts"`
}

// RecurringGrid is the recurring table for a window of months.
type RecurringGrid struct {
	Months      []ledger.Month       `json:"months"`
	Rows        []RecurringRow       `json:"rows"`
	Totals      []ledger.MonthAmount `json:"totals"`
	CanPrevious bool                 `json:"can_previous"`
	CanNext     bool                 `json:"can_next"`

	// Start of the previous and next page, when navigation allows one.
	PreviousStart *ledger.Month `json:"previous_start,omitempty"`
	NextStart     *ledger.Month `json:"next_start,omitempty"`
}

// ReportServicer defines the contract for monthly reports. Reports are
// computed from the latest snapshot on every call.
type ReportServicer interface {
	MonthlyReport(month ledger.Month, category *models.CategoryID) (*MonthlyReport, error)
	CategoryBreakdown(month ledger.Month, class *models.CategoryClass) ([]ledger.CategoryTotal, error)
	RecurringProjection(start ledger.Month, months int) (*RecurringGrid, error)
	MonthOptions() []ledger.Month
}

// ImportServicer defines the contract for loading a legacy export.
type ImportServicer interface {
	ImportLegacy(ctx context.Context, r io.Reader) (*importer.Result, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
