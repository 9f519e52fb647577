package services

import (
	"testing"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/ledger"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/testutil"
)

type staticSnapshot []models.Transaction

func (s staticSnapshot) Snapshot() []models.Transaction { return s }

func newTestReportService(txs ...models.Transaction) *reportService {
	svc := NewReportService(staticSnapshot(txs)).(*reportService)
	svc.now = func() time.Time { return time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestMonthlyReport(t *testing.T) {
	march := ledger.NewMonth(2024, time.March)

	t.Run("income_expense_net", func(t *testing.T) {
		svc := newTestReportService(
			testutil.Recurring(1000, models.CategoryIncome),
			testutil.OneTime(100, models.CategoryLeisure, testutil.Date(2024, time.March, 10)),
		)
		r, err := svc.MonthlyReport(march, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "1000", r.Income)
		testutil.AssertDecimal(t, "100", r.Expense)
		testutil.AssertDecimal(t, "900", r.Net)
		if r.Category != nil || r.CategoryTotal != nil {
			t.Error("no category total was requested")
		}
	})

	t.Run("category_total", func(t *testing.T) {
		svc := newTestReportService(
			testutil.OneTime(100, models.CategoryLeisure, testutil.Date(2024, time.March, 10)),
			testutil.OneTime(25, models.CategoryLeisure, testutil.Date(2024, time.March, 12)),
			testutil.OneTime(60, models.CategoryFuel, testutil.Date(2024, time.March, 12)),
		)
		leisure := models.CategoryLeisure
		r, err := svc.MonthlyReport(march, &leisure)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "125", *r.CategoryTotal)
		if r.Category.ID != models.CategoryLeisure {
			t.Errorf("expected leisure, got %s", r.Category.ID)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		svc := newTestReportService()
		bad := models.CategoryID("groceries")
		_, err := svc.MonthlyReport(march, &bad)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("defaults_to_current_month", func(t *testing.T) {
		svc := newTestReportService(testutil.OneTime(30, models.CategoryFuel, testutil.Date(2024, time.June, 2)))
		r, err := svc.MonthlyReport(ledger.Month{}, nil)
		testutil.AssertNoError(t, err)
		if r.Month != ledger.NewMonth(2024, time.June) {
			t.Errorf("expected 2024-06, got %s", r.Month)
		}
		testutil.AssertDecimal(t, "30", r.Expense)
	})
}

func TestCategoryBreakdown(t *testing.T) {
	svc := newTestReportService(
		testutil.Recurring(1000, models.CategoryIncome),
		testutil.OneTime(100, models.CategoryLeisure, testutil.Date(2024, time.March, 10)),
		testutil.OneTime(40, models.CategoryFuel, testutil.Date(2024, time.April, 1)),
	)
	march := ledger.NewMonth(2024, time.March)

	t.Run("all", func(t *testing.T) {
		got, err := svc.CategoryBreakdown(march, nil)
		testutil.AssertNoError(t, err)
		if len(got) != 2 {
			t.Fatalf("expected 2 segments, got %d", len(got))
		}
	})

	t.Run("expense_only", func(t *testing.T) {
		class := models.CategoryClassExpense
		got, err := svc.CategoryBreakdown(march, &class)
		testutil.AssertNoError(t, err)
		if len(got) != 1 || got[0].Category.ID != models.CategoryLeisure {
			t.Fatalf("expected only leisure, got %+v", got)
		}
		testutil.AssertDecimal(t, "100", got[0].Total)
	})

	t.Run("bad_class", func(t *testing.T) {
		class := models.CategoryClass("transfer")
		_, err := svc.CategoryBreakdown(march, &class)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestRecurringProjection(t *testing.T) {
	svc := newTestReportService(
		testutil.Recurring(500, models.CategoryMortgage, testutil.Override(550, testutil.Date(2024, time.June, 1))),
		testutil.Recurring(1000, models.CategoryIncome),
		testutil.OneTime(100, models.CategoryLeisure, testutil.Date(2024, time.May, 10)),
	)

	t.Run("window", func(t *testing.T) {
		grid, err := svc.RecurringProjection(ledger.NewMonth(2024, time.April), 4)
		testutil.AssertNoError(t, err)

		if len(grid.Months) != 4 || len(grid.Rows) != 2 || len(grid.Totals) != 4 {
			t.Fatalf("unexpected grid shape: %d months, %d rows, %d totals", len(grid.Months), len(grid.Rows), len(grid.Totals))
		}
		for _, row := range grid.Rows {
			if row.Transaction.Category != models.CategoryMortgage {
				continue
			}
			testutil.AssertDecimal(t, "500", row.Amounts[1].Amount)
			testutil.AssertDecimal(t, "550", row.Amounts[2].Amount)
		}
		testutil.AssertDecimal(t, "500", grid.Totals[0].Amount)
		testutil.AssertDecimal(t, "450", grid.Totals[3].Amount)
		if !grid.CanPrevious || !grid.CanNext {
			t.Error("expected navigation both ways")
		}
		if grid.PreviousStart == nil || *grid.PreviousStart != ledger.NewMonth(2023, time.December) {
			t.Errorf("expected previous page to start 2023-12, got %v", grid.PreviousStart)
		}
		if grid.NextStart == nil || *grid.NextStart != ledger.NewMonth(2024, time.August) {
			t.Errorf("expected next page to start 2024-08, got %v", grid.NextStart)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		grid, err := svc.RecurringProjection(ledger.Month{}, 0)
		testutil.AssertNoError(t, err)
		if len(grid.Months) != ledger.DefaultWindowSize || grid.Months[0] != ledger.NewMonth(2024, time.June) {
			t.Errorf("expected six months from now, got %v", grid.Months)
		}
	})

	t.Run("bounds", func(t *testing.T) {
		grid, err := svc.RecurringProjection(ledger.NewMonth(2023, time.June), 6)
		testutil.AssertNoError(t, err)
		if grid.CanPrevious || grid.PreviousStart != nil {
			t.Error("should not page before 12 months back")
		}
		if grid.NextStart == nil || *grid.NextStart != ledger.NewMonth(2023, time.December) {
			t.Errorf("expected next page to start 2023-12, got %v", grid.NextStart)
		}

		grid, err = svc.RecurringProjection(ledger.NewMonth(2026, time.January), 6)
		testutil.AssertNoError(t, err)
		if grid.CanNext || grid.NextStart != nil {
			t.Error("should not page past 24 months ahead")
		}
	})

	t.Run("invalid_width", func(t *testing.T) {
		_, err := svc.RecurringProjection(ledger.NewMonth(2024, time.April), 37)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.RecurringProjection(ledger.NewMonth(2024, time.April), -1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestMonthOptions(t *testing.T) {
	svc := newTestReportService()
	opts := svc.MonthOptions()
	if len(opts) != 25 {
		t.Fatalf("expected 25 options, got %d", len(opts))
	}
	if opts[12] != ledger.NewMonth(2024, time.June) {
		t.Errorf("expected current month in the middle, got %s", opts[12])
	}
}
