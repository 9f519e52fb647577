// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Kola-Kola/personal-finance/internal/ledger"
	"github.com/Kola-Kola/personal-finance/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the custom tags to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("category", validateCategory)
	_ = v.RegisterValidation("category_class", validateCategoryClass)
	_ = v.RegisterValidation("month", validateMonth)
	_ = v.RegisterValidation("charge_day", validateChargeDay)
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.CategoryID(fl.Field().String()).Valid()
}

func validateCategoryClass(fl validator.FieldLevel) bool {
	switch models.CategoryClass(fl.Field().String()) {
	case models.CategoryClassIncome, models.CategoryClassExpense:
		return true
	}
	return false
}

func validateMonth(fl validator.FieldLevel) bool {
	_, err := ledger.ParseMonth(fl.Field().String())
	return err == nil
}

func validateChargeDay(fl validator.FieldLevel) bool {
	return models.ValidChargeDay(int(fl.Field().Int()))
}
