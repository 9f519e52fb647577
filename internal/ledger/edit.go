package ledger

import (
	"slices"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/money"
	"github.com/shopspring/decimal"
)

// Patch is a partial update. Nil fields are left untouched. EffectiveFrom is
// only read when the amount of a recurring transaction changes.
type Patch struct {
	Amount        *decimal.Decimal
	Date          *time.Time
	Category      *models.CategoryID
	Description   *string
	IsRecurring   *bool
	ChargeDay     *int
	EffectiveFrom *time.Time
}

// ChangesAmount reports whether applying p to t would change the amount in
// effect at the patch's effective date.
func (p Patch) ChangesAmount(t *models.Transaction, now time.Time) bool {
	if p.Amount == nil {
		return false
	}
	return !p.Amount.Abs().Equal(Resolve(t, p.effective(now)))
}

func (p Patch) effective(now time.Time) time.Time {
	if p.EffectiveFrom != nil {
		return *p.EffectiveFrom
	}
	return now
}

// ApplyEdit returns t with p applied. t itself is not modified.
//
// When t is recurring, stays recurring and the patch changes its amount,
// the base amount is kept and a new override is appended at the patch's
// effective date (now when unset). Every other amount change overwrites
// the base amount. A transaction that ends up one-time loses its overrides
// and charge day.
func ApplyEdit(t models.Transaction, p Patch, now time.Time) models.Transaction {
	out := t.Clone()

	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.IsRecurring != nil {
		out.IsRecurring = *p.IsRecurring
	}
	if p.ChargeDay != nil {
		day := *p.ChargeDay
		out.ChargeDay = &day
	}

	if p.Amount != nil {
		amount := money.New(p.Amount.Abs())
		switch {
		case t.IsRecurring && out.IsRecurring:
			if p.ChangesAmount(&t, now) {
				out.Overrides = appendOverride(out.Overrides, models.AmountOverride{
					TransactionID: t.ID,
					Amount:        amount,
					EffectiveFrom: p.effective(now),
				})
			}
		default:
			out.Amount = amount
		}
	}

	if !out.IsRecurring {
		out.Overrides = nil
		out.ChargeDay = nil
	}
	return out
}

// appendOverride adds o after every existing entry, re-sorts by
// EffectiveFrom and renumbers positions to the new order.
func appendOverride(list []models.AmountOverride, o models.AmountOverride) []models.AmountOverride {
	return NormalizeOverrides(append(slices.Clone(list), o))
}

// NormalizeOverrides returns a copy of list stable-sorted by EffectiveFrom
// with positions renumbered to the sorted order.
func NormalizeOverrides(list []models.AmountOverride) []models.AmountOverride {
	out := sortedOverrides(list)
	for i := range out {
		out[i].Position = i
	}
	return out
}
