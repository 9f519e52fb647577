package ledger

import (
	"testing"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/money"
	"github.com/shopspring/decimal"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func oneTime(amount int64, cat models.CategoryID, date time.Time) models.Transaction {
	return models.Transaction{
		Base:     models.Base{ID: "one-" + date.Format(time.DateOnly)},
		Amount:   money.FromInt(amount),
		Date:     date,
		Category: cat,
	}
}

func recurring(amount int64, cat models.CategoryID, overrides ...models.AmountOverride) models.Transaction {
	chargeDay := 5
	return models.Transaction{
		Base:        models.Base{ID: "rec-" + string(cat)},
		Amount:      money.FromInt(amount),
		Date:        day(2024, time.January, 5),
		Category:    cat,
		IsRecurring: true,
		ChargeDay:   &chargeDay,
		Overrides:   overrides,
	}
}

func override(amount int64, from time.Time) models.AmountOverride {
	return models.AmountOverride{Amount: money.FromInt(amount), EffectiveFrom: from}
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("expected %d, got %s", want, got)
	}
}
