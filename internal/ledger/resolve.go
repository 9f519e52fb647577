package ledger

import (
	"slices"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/shopspring/decimal"
)

// Resolve returns the amount of t in effect at the given instant: the amount
// of the latest override whose EffectiveFrom is not after at, or the base
// amount when no override qualifies. Among overrides sharing an
// EffectiveFrom the one appended last wins.
//
// The override list is sorted on a private copy first, so a corrupted order
// in storage still resolves correctly.
func Resolve(t *models.Transaction, at time.Time) decimal.Decimal {
	if t == nil {
		return decimal.Zero
	}
	if len(t.Overrides) == 0 {
		return t.Amount.Decimal
	}

	sorted := sortedOverrides(t.Overrides)
	amount := t.Amount.Decimal
	for _, o := range sorted {
		if o.EffectiveFrom.After(at) {
			break
		}
		amount = o.Amount.Decimal
	}
	return amount
}

// ResolveMonth resolves t at the first instant of m.
func ResolveMonth(t *models.Transaction, m Month) decimal.Decimal {
	return Resolve(t, m.Start())
}

// sortedOverrides returns a copy of overrides ordered by EffectiveFrom. The
// sort is stable, so list order breaks ties.
func sortedOverrides(overrides []models.AmountOverride) []models.AmountOverride {
	out := slices.Clone(overrides)
	slices.SortStableFunc(out, func(a, b models.AmountOverride) int {
		return a.EffectiveFrom.Compare(b.EffectiveFrom)
	})
	return out
}
