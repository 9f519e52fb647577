package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/ledger"
	"github.com/Kola-Kola/personal-finance/internal/models"
)

// MaxProjectionMonths caps the width of a recurring grid.
const MaxProjectionMonths = 36

// Snapshotter supplies the transaction list reports are computed over.
type Snapshotter interface {
	Snapshot() []models.Transaction
}

// reportService computes monthly reports from a snapshot.
type reportService struct {
	source Snapshotter
	now    func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(source Snapshotter) ReportServicer {
	return &reportService{source: source, now: time.Now}
}

func (s *reportService) currentMonth() ledger.Month {
	return ledger.MonthOf(s.now())
}

// MonthlyReport summarizes month, adding the total of one category when
// category is set.
func (s *reportService) MonthlyReport(month ledger.Month, category *models.CategoryID) (*MonthlyReport, error) {
	if month.IsZero() {
		month = s.currentMonth()
	}
	txs := s.source.Snapshot()

	report := &MonthlyReport{Summary: ledger.Summarize(txs, month)}
	if category != nil {
		c, ok := models.LookupCategory(*category)
		if !ok {
			return nil, apperrors.ErrCategoryNotFound
		}
		total := ledger.Aggregate(txs, month, category)
		report.Category = &c
		report.CategoryTotal = &total
	}
	return report, nil
}

// CategoryBreakdown returns per-category totals, optionally limited to one
// sign class.
func (s *reportService) CategoryBreakdown(month ledger.Month, class *models.CategoryClass) ([]ledger.CategoryTotal, error) {
	if month.IsZero() {
		month = s.currentMonth()
	}
	txs := s.source.Snapshot()

	if class == nil {
		return ledger.Breakdown(txs, month), nil
	}
	switch *class {
	case models.CategoryClassIncome, models.CategoryClassExpense:
		return ledger.BreakdownByClass(txs, month, *class), nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "class must be income or expense")
	}
}

// RecurringProjection projects every recurring transaction over a window
// of months beginning at start, with per-month totals and the navigation
// flags of the default window policy.
func (s *reportService) RecurringProjection(start ledger.Month, months int) (*RecurringGrid, error) {
	now := s.currentMonth()
	if start.IsZero() {
		start = now
	}
	if months == 0 {
		months = ledger.DefaultWindowSize
	}
	if months < 1 || months > MaxProjectionMonths {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 36")
	}

	window := ledger.Window(start, months)
	recurring := ledger.FilterByMonth(s.source.Snapshot(), start, true)

	totals := make([]decimal.Decimal, months)
	rows := make([]RecurringRow, 0, len(recurring))
	for i := range recurring {
		t := &recurring[i]
		amounts := ledger.Projection(t, window)
		for j, cell := range amounts {
			if t.Category.IsIncome() {
				totals[j] = totals[j].Add(cell.Amount)
			} else {
				totals[j] = totals[j].Sub(cell.Amount)
			}
		}
		rows = append(rows, RecurringRow{Transaction: *t, Amounts: amounts})
	}

	grid := &RecurringGrid{
		Months: window,
		Rows:   rows,
		Totals: make([]ledger.MonthAmount, months),
	}
	for i, m := range window {
		grid.Totals[i] = ledger.MonthAmount{Month: m, Amount: totals[i]}
	}

	nav := ledger.DefaultNavigator(now)
	nav.Size = months
	if grid.CanPrevious = nav.CanPrevious(start); grid.CanPrevious {
		prev := nav.Previous(start)
		grid.PreviousStart = &prev
	}
	if grid.CanNext = nav.CanNext(start); grid.CanNext {
		next := nav.Next(start)
		grid.NextStart = &next
	}
	return grid, nil
}

// MonthOptions lists the months offered by the month selector.
func (s *reportService) MonthOptions() []ledger.Month {
	return ledger.MonthOptions(s.currentMonth(), ledger.MonthOptionsCount)
}
