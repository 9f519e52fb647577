package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/money"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TransactionCreator is the part of a store fixtures need.
type TransactionCreator interface {
	Create(ctx context.Context, t *models.Transaction) (string, error)
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// OneTime builds an unsaved one-time transaction.
func OneTime(amount int64, category models.CategoryID, date time.Time) models.Transaction {
	return models.Transaction{
		Amount:      money.FromInt(amount),
		Date:        date,
		Category:    category,
		Description: fmt.Sprintf("one-time %d", nextID()),
	}
}

// Recurring builds an unsaved recurring transaction charged on the 5th,
// with an origin date of January 2024.
func Recurring(amount int64, category models.CategoryID, overrides ...models.AmountOverride) models.Transaction {
	chargeDay := 5
	return models.Transaction{
		Amount:      money.FromInt(amount),
		Date:        Date(2024, time.January, 5),
		Category:    category,
		Description: fmt.Sprintf("recurring %d", nextID()),
		IsRecurring: true,
		ChargeDay:   &chargeDay,
		Overrides:   overrides,
	}
}

// Override builds an amount override.
func Override(amount int64, from time.Time) models.AmountOverride {
	return models.AmountOverride{Amount: money.FromInt(amount), EffectiveFrom: from}
}

// CreateTestTransaction persists tx through c and returns it with its id set.
func CreateTestTransaction(t *testing.T, c TransactionCreator, tx models.Transaction) *models.Transaction {
	t.Helper()

	if _, err := c.Create(context.Background(), &tx); err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return &tx
}
