package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/services"
)

// CategoryHandler serves the static category table.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryQuery holds the optional class filter.
type CategoryQuery struct {
	Class string `form:"class" binding:"omitempty,category_class"`
}

// ListCategories handles the retrieval of the category table
// @Summary     List categories
// @Description Get the category table in display order
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       class query string false "Filter by sign class (income/expense)"
// @Success     200 {array} models.Category "List of categories"
// @Failure     400 {object} ErrorResponse "Invalid class"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var q CategoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid class, must be income or expense"))
		return
	}

	var class *models.CategoryClass
	if q.Class != "" {
		cc := models.CategoryClass(q.Class)
		class = &cc
	}

	c.JSON(http.StatusOK, gin.H{"categories": h.categoryService.ListCategories(class)})
}

// GetCategory handles the retrieval of a single category
// @Summary     Get category
// @Description Get one entry of the category table
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} models.Category "Category details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(models.CategoryID(id))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}
