package ledger

import (
	"testing"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/shopspring/decimal"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func timePtr(t time.Time) *time.Time { return &t }

func TestApplyEdit(t *testing.T) {
	now := day(2024, time.October, 15)

	t.Run("recurring amount change appends one override", func(t *testing.T) {
		tx := recurring(500, models.CategoryMortgage)
		got := ApplyEdit(tx, Patch{Amount: decPtr(550), EffectiveFrom: timePtr(day(2024, time.June, 1))}, now)

		if len(got.Overrides) != len(tx.Overrides)+1 {
			t.Fatalf("expected one new override, got %d", len(got.Overrides))
		}
		assertDecimal(t, 500, got.Amount.Decimal)
		assertDecimal(t, 550, got.Overrides[0].Amount.Decimal)
		if got.Overrides[0].TransactionID != tx.ID {
			t.Errorf("override not linked to transaction: %q", got.Overrides[0].TransactionID)
		}
		assertDecimal(t, 500, ResolveMonth(&got, NewMonth(2024, time.March)))
		assertDecimal(t, 550, ResolveMonth(&got, NewMonth(2024, time.June)))
	})

	t.Run("effective date defaults to now", func(t *testing.T) {
		tx := recurring(500, models.CategoryMortgage)
		got := ApplyEdit(tx, Patch{Amount: decPtr(600)}, now)
		if !got.Overrides[0].EffectiveFrom.Equal(now) {
			t.Errorf("expected effective date %s, got %s", now, got.Overrides[0].EffectiveFrom)
		}
	})

	t.Run("overrides stay sorted after a back-dated edit", func(t *testing.T) {
		tx := recurring(500, models.CategoryMortgage, override(700, day(2024, time.September, 1)))
		got := ApplyEdit(tx, Patch{Amount: decPtr(600), EffectiveFrom: timePtr(day(2024, time.May, 1))}, now)

		if len(got.Overrides) != 2 {
			t.Fatalf("expected 2 overrides, got %d", len(got.Overrides))
		}
		if !got.Overrides[0].EffectiveFrom.Before(got.Overrides[1].EffectiveFrom) {
			t.Error("overrides not sorted")
		}
		for i, o := range got.Overrides {
			if o.Position != i {
				t.Errorf("override %d has position %d", i, o.Position)
			}
		}
		assertDecimal(t, 600, ResolveMonth(&got, NewMonth(2024, time.July)))
		assertDecimal(t, 700, ResolveMonth(&got, NewMonth(2024, time.October)))
	})

	t.Run("same amount at the effective date adds nothing", func(t *testing.T) {
		tx := recurring(500, models.CategoryMortgage, override(550, day(2024, time.June, 1)))
		got := ApplyEdit(tx, Patch{Amount: decPtr(550), EffectiveFrom: timePtr(day(2024, time.August, 1))}, now)
		if len(got.Overrides) != 1 {
			t.Errorf("expected no new override, got %d", len(got.Overrides))
		}
	})

	t.Run("one-time amount is overwritten", func(t *testing.T) {
		tx := oneTime(100, models.CategoryLeisure, day(2024, time.March, 10))
		got := ApplyEdit(tx, Patch{Amount: decPtr(120)}, now)
		assertDecimal(t, 120, got.Amount.Decimal)
		if len(got.Overrides) != 0 {
			t.Error("one-time edit must not create overrides")
		}
	})

	t.Run("negative amount is stored as magnitude", func(t *testing.T) {
		tx := oneTime(100, models.CategoryLeisure, day(2024, time.March, 10))
		got := ApplyEdit(tx, Patch{Amount: decPtr(-75)}, now)
		assertDecimal(t, 75, got.Amount.Decimal)
	})

	t.Run("non-amount fields overwrite", func(t *testing.T) {
		tx := recurring(500, models.CategoryMortgage)
		desc := "rent"
		cat := models.CategoryBills
		chargeDay := 12
		got := ApplyEdit(tx, Patch{Description: &desc, Category: &cat, ChargeDay: &chargeDay}, now)
		if got.Description != "rent" || got.Category != models.CategoryBills || *got.ChargeDay != 12 {
			t.Errorf("fields not applied: %+v", got)
		}
		if *tx.ChargeDay != 5 {
			t.Error("input transaction was mutated")
		}
	})

	t.Run("leaving recurring clears history", func(t *testing.T) {
		tx := recurring(500, models.CategoryMortgage, override(550, day(2024, time.June, 1)))
		off := false
		got := ApplyEdit(tx, Patch{IsRecurring: &off, Amount: decPtr(300)}, now)
		if got.IsRecurring || got.ChargeDay != nil || got.Overrides != nil {
			t.Errorf("expected a plain one-time record, got %+v", got)
		}
		assertDecimal(t, 300, got.Amount.Decimal)
		if len(tx.Overrides) != 1 {
			t.Error("input overrides were mutated")
		}
	})

	t.Run("becoming recurring overwrites base amount", func(t *testing.T) {
		tx := oneTime(100, models.CategoryBills, day(2024, time.March, 10))
		on := true
		chargeDay := 3
		got := ApplyEdit(tx, Patch{IsRecurring: &on, ChargeDay: &chargeDay, Amount: decPtr(90)}, now)
		if !got.IsRecurring || len(got.Overrides) != 0 {
			t.Errorf("unexpected result %+v", got)
		}
		assertDecimal(t, 90, got.Amount.Decimal)
	})
}

func TestPatchChangesAmount(t *testing.T) {
	tx := recurring(500, models.CategoryMortgage, override(550, day(2024, time.June, 1)))
	now := day(2024, time.October, 1)

	if (Patch{}).ChangesAmount(&tx, now) {
		t.Error("empty patch should not change amount")
	}
	if (Patch{Amount: decPtr(550)}).ChangesAmount(&tx, now) {
		t.Error("550 is already in effect now")
	}
	if !(Patch{Amount: decPtr(550), EffectiveFrom: timePtr(day(2024, time.January, 1))}).ChangesAmount(&tx, now) {
		t.Error("550 differs from the January amount")
	}
}
