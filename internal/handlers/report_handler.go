package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/services"
)

// ReportHandler serves the monthly reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlyReportQuery selects the month and an optional category.
type MonthlyReportQuery struct {
	Month    string `form:"month" binding:"omitempty,month"`
	Category string `form:"category" binding:"omitempty,category"`
}

// BreakdownQuery selects the month and an optional sign class.
type BreakdownQuery struct {
	Month string `form:"month" binding:"omitempty,month"`
	Class string `form:"class" binding:"omitempty,category_class"`
}

// RecurringQuery selects the first month and width of the recurring grid.
type RecurringQuery struct {
	Start  string `form:"start" binding:"omitempty,month"`
	Months int    `form:"months" binding:"omitempty,min=1,max=36"`
}

// MonthlyReport handles the monthly summary
// @Summary     Monthly summary
// @Description Income, expense and net of a month, with expenses split into one-time and recurring. With category set, the total of that category is added.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       month    query string false "Month (YYYY-MM, default current month)"
// @Param       category query string false "Category ID"
// @Success     200 {object} services.MonthlyReport "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/monthly [get]
func (h *ReportHandler) MonthlyReport(c *gin.Context) {
	var q MonthlyReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid query: use month=YYYY-MM and a known category"))
		return
	}

	month, err := parseMonthParam(q.Month, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var category *models.CategoryID
	if q.Category != "" {
		id := models.CategoryID(q.Category)
		category = &id
	}

	report, err := h.reportService.MonthlyReport(month, category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// CategoryBreakdown handles the per-category totals of a month
// @Summary     Category breakdown
// @Description Per-category totals of a month in table order. Categories with no positive total are left out.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month (YYYY-MM, default current month)"
// @Param       class query string false "Sign class (income/expense)"
// @Success     200 {array} ledger.CategoryTotal "Category totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/breakdown [get]
func (h *ReportHandler) CategoryBreakdown(c *gin.Context) {
	var q BreakdownQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid query: use month=YYYY-MM and class=income|expense"))
		return
	}

	month, err := parseMonthParam(q.Month, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var class *models.CategoryClass
	if q.Class != "" {
		cc := models.CategoryClass(q.Class)
		class = &cc
	}

	totals, err := h.reportService.CategoryBreakdown(month, class)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// RecurringProjection handles the recurring grid
// @Summary     Recurring grid
// @Description Amount of every recurring transaction in each month of a window, with signed monthly totals and whether the window may move back or forward.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start  query string false "First month (YYYY-MM, default current month)"
// @Param       months query int    false "Window width (default 6, max 36)"
// @Success     200 {object} services.RecurringGrid "Recurring grid"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/recurring [get]
func (h *ReportHandler) RecurringProjection(c *gin.Context) {
	var q RecurringQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid query: use start=YYYY-MM and months between 1 and 36"))
		return
	}

	start, err := parseMonthParam(q.Start, "start")
	if err != nil {
		respondWithError(c, err)
		return
	}

	grid, err := h.reportService.RecurringProjection(start, q.Months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring": grid})
}

// MonthOptions handles the month selector
// @Summary     Month options
// @Description Months offered by the month selector, centred on the current month
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} string "Months (YYYY-MM)"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/months [get]
func (h *ReportHandler) MonthOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"months": h.reportService.MonthOptions()})
}
