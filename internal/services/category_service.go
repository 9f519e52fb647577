package services

import (
	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/models"
)

// categoryService serves the static category table.
type categoryService struct{}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService() CategoryServicer {
	return &categoryService{}
}

// ListCategories returns the table in display order, optionally limited to
// one sign class.
func (s *categoryService) ListCategories(class *models.CategoryClass) []models.Category {
	all := models.Categories()
	if class == nil {
		return all
	}
	out := all[:0]
	for _, c := range all {
		if c.Class == *class {
			out = append(out, c)
		}
	}
	return out
}

// GetCategory returns one table entry.
func (s *categoryService) GetCategory(id models.CategoryID) (*models.Category, error) {
	c, ok := models.LookupCategory(id)
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &c, nil
}
