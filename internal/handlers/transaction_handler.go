package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/ledger"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/pagination"
	"github.com/Kola-Kola/personal-finance/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Amount      *decimal.Decimal  `json:"amount" binding:"required" swaggertype:"number"`
	Date        string            `json:"date"`
	Category    models.CategoryID `json:"category" binding:"required,category"`
	Description string            `json:"description" binding:"max=500"`
	IsRecurring bool              `json:"is_recurring"`
	ChargeDay   *int              `json:"charge_day" binding:"omitempty,charge_day"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Absent fields are left untouched. EffectiveFrom dates an
// amount change of a recurring transaction and defaults to now.
type UpdateTransactionRequest struct {
	Amount        *decimal.Decimal   `json:"amount" swaggertype:"number"`
	Date          *string            `json:"date"`
	Category      *models.CategoryID `json:"category" binding:"omitempty,category"`
	Description   *string            `json:"description" binding:"omitempty,max=500"`
	IsRecurring   *bool              `json:"is_recurring"`
	ChargeDay     *int               `json:"charge_day" binding:"omitempty,charge_day"`
	EffectiveFrom *string            `json:"effective_from"`
}

// TransactionQuery holds the list filters.
type TransactionQuery struct {
	Month     string `form:"month" binding:"omitempty,month"`
	Recurring *bool  `form:"recurring"`
	Category  string `form:"category" binding:"omitempty,category"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a one-time or recurring income or expense. Amounts are stored unsigned.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := parseFlexibleTime(req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		date = parsed
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), services.TransactionInput{
		Amount:      *req.Amount,
		Date:        date,
		Category:    req.Category,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
		ChargeDay:   req.ChargeDay,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"amount": transaction.Amount.String(), "category": transaction.Category, "is_recurring": transaction.IsRecurring})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions handles the retrieval of transactions
// @Summary     List transactions
// @Description Get a paginated list of transactions, newest date first. With month set and recurring unset, the list holds what counts toward that month: its one-time transactions plus every recurring one.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       month     query string false "Month (YYYY-MM)"
// @Param       recurring query bool   false "Only recurring (true) or one-time (false) transactions"
// @Param       category  query string false "Filter by category ID"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	var q TransactionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid filter: use month=YYYY-MM, recurring=true|false and a known category")
	}

	if q.Month != "" {
		m, err := parseMonthParam(q.Month, "month")
		if err != nil {
			return filter, err
		}
		filter.Month = &m
	}
	filter.Recurring = q.Recurring
	if q.Category != "" {
		cat := models.CategoryID(q.Category)
		filter.Category = &cat
	}
	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID, overrides included
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating an existing transaction
// @Summary     Update transaction
// @Description Update a transaction. Changing the amount of a recurring transaction records an override effective from effective_from (default now) and keeps earlier months unchanged; every other change overwrites the stored value.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch, changes, err := req.toPatch()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(), changes)

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// toPatch converts the request and lists the fields it sets for the audit
// log.
func (req UpdateTransactionRequest) toPatch() (ledger.Patch, map[string]any, error) {
	patch := ledger.Patch{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
		ChargeDay:   req.ChargeDay,
	}
	changes := map[string]any{}

	if req.Amount != nil {
		changes["amount"] = req.Amount.String()
	}
	if req.Category != nil {
		changes["category"] = *req.Category
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.IsRecurring != nil {
		changes["is_recurring"] = *req.IsRecurring
	}
	if req.ChargeDay != nil {
		changes["charge_day"] = *req.ChargeDay
	}
	if req.Date != nil && *req.Date != "" {
		d, err := parseFlexibleTime(*req.Date)
		if err != nil {
			return patch, nil, err
		}
		patch.Date = &d
		changes["date"] = d
	}
	if req.EffectiveFrom != nil && *req.EffectiveFrom != "" {
		from, err := parseFlexibleTime(*req.EffectiveFrom)
		if err != nil {
			return patch, nil, err
		}
		patch.EffectiveFrom = &from
		changes["effective_from"] = from
	}
	return patch, changes, nil
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Description Delete a transaction together with its amount history
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}
