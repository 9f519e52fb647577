package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/ledger"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/services"
)

// --- mock report service ---

type mockReportService struct {
	monthlyReportFn       func(month ledger.Month, category *models.CategoryID) (*services.MonthlyReport, error)
	categoryBreakdownFn   func(month ledger.Month, class *models.CategoryClass) ([]ledger.CategoryTotal, error)
	recurringProjectionFn func(start ledger.Month, months int) (*services.RecurringGrid, error)
	monthOptionsFn        func() []ledger.Month
}

func (m *mockReportService) MonthlyReport(month ledger.Month, category *models.CategoryID) (*services.MonthlyReport, error) {
	if m.monthlyReportFn != nil {
		return m.monthlyReportFn(month, category)
	}
	return &services.MonthlyReport{Summary: ledger.Summary{Month: month}}, nil
}

func (m *mockReportService) CategoryBreakdown(month ledger.Month, class *models.CategoryClass) ([]ledger.CategoryTotal, error) {
	if m.categoryBreakdownFn != nil {
		return m.categoryBreakdownFn(month, class)
	}
	return []ledger.CategoryTotal{}, nil
}

func (m *mockReportService) RecurringProjection(start ledger.Month, months int) (*services.RecurringGrid, error) {
	if m.recurringProjectionFn != nil {
		return m.recurringProjectionFn(start, months)
	}
	return &services.RecurringGrid{}, nil
}

func (m *mockReportService) MonthOptions() []ledger.Month {
	if m.monthOptionsFn != nil {
		return m.monthOptionsFn()
	}
	return nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	r.GET("/reports/monthly", handler.MonthlyReport)
	r.GET("/reports/breakdown", handler.CategoryBreakdown)
	r.GET("/reports/recurring", handler.RecurringProjection)
	r.GET("/reports/months", handler.MonthOptions)
	return r
}

func TestReportHandler_MonthlyReport(t *testing.T) {
	t.Run("returns the summary", func(t *testing.T) {
		var gotMonth ledger.Month
		var gotCategory *models.CategoryID
		svc := &mockReportService{
			monthlyReportFn: func(month ledger.Month, category *models.CategoryID) (*services.MonthlyReport, error) {
				gotMonth, gotCategory = month, category
				total := decimal.NewFromInt(100)
				c, _ := models.LookupCategory(*category)
				return &services.MonthlyReport{
					Summary: ledger.Summary{
						Month:   month,
						Income:  decimal.NewFromInt(1000),
						Expense: decimal.NewFromInt(100),
						Net:     decimal.NewFromInt(900),
					},
					Category:      &c,
					CategoryTotal: &total,
				}, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/monthly?month=2024-03&category=leisure", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMonth != ledger.NewMonth(2024, time.March) {
			t.Errorf("unexpected month: %v", gotMonth)
		}
		if gotCategory == nil || *gotCategory != models.CategoryLeisure {
			t.Errorf("unexpected category: %v", gotCategory)
		}

		report := parseJSON(t, rec)["report"].(map[string]interface{})
		if report["month"] != "2024-03" || report["net"] != "900" || report["category_total"] != "100" {
			t.Errorf("unexpected report: %v", report)
		}
	})

	t.Run("defaults the month to zero for the service", func(t *testing.T) {
		var gotMonth ledger.Month
		svc := &mockReportService{
			monthlyReportFn: func(month ledger.Month, _ *models.CategoryID) (*services.MonthlyReport, error) {
				gotMonth = month
				return &services.MonthlyReport{}, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/monthly", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !gotMonth.IsZero() {
			t.Errorf("expected zero month, got %v", gotMonth)
		}
	})

	t.Run("returns 400 on invalid month", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/monthly?month=March", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestReportHandler_CategoryBreakdown(t *testing.T) {
	t.Run("passes the class", func(t *testing.T) {
		var gotClass *models.CategoryClass
		svc := &mockReportService{
			categoryBreakdownFn: func(_ ledger.Month, class *models.CategoryClass) ([]ledger.CategoryTotal, error) {
				gotClass = class
				c, _ := models.LookupCategory(models.CategoryFuel)
				return []ledger.CategoryTotal{{Category: c, Total: decimal.NewFromInt(60)}}, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/breakdown?month=2024-03&class=expense", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotClass == nil || *gotClass != models.CategoryClassExpense {
			t.Errorf("expected expense class, got %v", gotClass)
		}
		categories := parseJSON(t, rec)["categories"].([]interface{})
		if len(categories) != 1 || categories[0].(map[string]interface{})["total"] != "60" {
			t.Errorf("unexpected categories: %v", categories)
		}
	})

	t.Run("returns 400 on unknown class", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/breakdown?class=savings", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReportHandler_RecurringProjection(t *testing.T) {
	t.Run("passes start and width", func(t *testing.T) {
		var gotStart ledger.Month
		var gotMonths int
		svc := &mockReportService{
			recurringProjectionFn: func(start ledger.Month, months int) (*services.RecurringGrid, error) {
				gotStart, gotMonths = start, months
				prev := start.AddMonths(-months)
				return &services.RecurringGrid{Months: ledger.Window(start, months), CanPrevious: true, PreviousStart: &prev}, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/recurring?start=2024-06&months=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotStart != ledger.NewMonth(2024, time.June) || gotMonths != 3 {
			t.Errorf("unexpected arguments: %v %d", gotStart, gotMonths)
		}
		grid := parseJSON(t, rec)["recurring"].(map[string]interface{})
		months := grid["months"].([]interface{})
		if len(months) != 3 || months[2] != "2024-08" || grid["can_previous"] != true || grid["previous_start"] != "2024-03" {
			t.Errorf("unexpected grid: %v", grid)
		}
		if _, ok := grid["next_start"]; ok {
			t.Errorf("next_start should be omitted when navigation stops: %v", grid)
		}
	})

	t.Run("returns 400 on too wide a window", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/recurring?months=48", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("passes service errors through", func(t *testing.T) {
		svc := &mockReportService{
			recurringProjectionFn: func(ledger.Month, int) (*services.RecurringGrid, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 36")
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/recurring", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReportHandler_MonthOptions(t *testing.T) {
	svc := &mockReportService{
		monthOptionsFn: func() []ledger.Month {
			return ledger.MonthOptions(ledger.NewMonth(2024, time.June), ledger.MonthOptionsCount)
		},
	}
	r := setupReportRouter(NewReportHandler(svc))

	rec := doRequest(r, "GET", "/reports/months", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	months := parseJSON(t, rec)["months"].([]interface{})
	if len(months) != ledger.MonthOptionsCount {
		t.Fatalf("expected %d months, got %d", ledger.MonthOptionsCount, len(months))
	}
	if months[0] != "2023-06" || months[len(months)-1] != "2025-06" {
		t.Errorf("unexpected range: %v .. %v", months[0], months[len(months)-1])
	}
}
