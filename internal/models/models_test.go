package models

import (
	"errors"
	"testing"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/money"
)

func intPtr(v int) *int { return &v }

func TestCategoryTable(t *testing.T) {
	incomeCount := 0
	for _, c := range Categories() {
		if c.Class == CategoryClassIncome {
			incomeCount++
		}
		if !c.ID.Valid() {
			t.Errorf("category %q should be valid", c.ID)
		}
	}
	if incomeCount != 1 {
		t.Fatalf("expected exactly one income category, got %d", incomeCount)
	}

	if !CategoryIncome.IsIncome() {
		t.Error("income should be income class")
	}
	if CategoryLeisure.IsIncome() {
		t.Error("leisure should be expense class")
	}

	unknown := CategoryID("groceries")
	if unknown.Valid() {
		t.Error("unknown id should not be valid")
	}
	if unknown.Class() != CategoryClassExpense {
		t.Errorf("unknown id should be expense class, got %s", unknown.Class())
	}
	if got := CategoryFor(unknown); got.Name != "groceries" {
		t.Errorf("expected synthesized name, got %q", got.Name)
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	list := Categories()
	list[0].Class = CategoryClassExpense
	if c, _ := LookupCategory(CategoryIncome); c.Class != CategoryClassIncome {
		t.Fatal("mutating the returned slice must not change the table")
	}
}

func TestSortCategoryIDs(t *testing.T) {
	ids := []CategoryID{"zzz", CategoryInsurance, "aaa", CategoryIncome, CategoryLeisure}
	SortCategoryIDs(ids)
	want := []CategoryID{CategoryIncome, CategoryLeisure, CategoryInsurance, "aaa", "zzz"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	good := []Transaction{
		{Amount: money.FromInt(100), Date: date, Category: CategoryLeisure},
		{Amount: money.FromInt(500), Date: date, Category: CategoryBills, IsRecurring: true, ChargeDay: intPtr(5),
			Overrides: []AmountOverride{{Amount: money.FromInt(550), EffectiveFrom: date}}},
	}
	for i, tx := range good {
		if err := tx.Validate(); err != nil {
			t.Errorf("case %d: expected ok, got %v", i, err)
		}
	}

	bad := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Amount: money.FromInt(1), Category: CategoryLeisure}, ErrZeroDate},
		{Transaction{Amount: money.FromInt(1), Date: date, Category: "food"}, ErrUnknownCategory},
		{Transaction{Amount: money.FromInt(-1), Date: date, Category: CategoryLeisure}, ErrNegativeAmount},
		{Transaction{Amount: money.FromInt(1), Date: date, Category: CategoryLeisure, ChargeDay: intPtr(3)}, ErrChargeDayNotApplied},
		{Transaction{Amount: money.FromInt(1), Date: date, Category: CategoryLeisure,
			Overrides: []AmountOverride{{Amount: money.FromInt(2), EffectiveFrom: date}}}, ErrOverridesNotRecurring},
		{Transaction{Amount: money.FromInt(1), Date: date, Category: CategoryBills, IsRecurring: true}, ErrChargeDayRequired},
		{Transaction{Amount: money.FromInt(1), Date: date, Category: CategoryBills, IsRecurring: true, ChargeDay: intPtr(29)}, ErrChargeDayRange},
		{Transaction{Amount: money.FromInt(1), Date: date, Category: CategoryBills, IsRecurring: true, ChargeDay: intPtr(0)}, ErrChargeDayRange},
	}
	for i, tc := range bad {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("case %d: expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestTransactionClone(t *testing.T) {
	orig := Transaction{
		Amount:      money.FromInt(500),
		IsRecurring: true,
		ChargeDay:   intPtr(10),
		Overrides:   []AmountOverride{{Amount: money.FromInt(550)}},
	}
	cp := orig.Clone()
	*cp.ChargeDay = 20
	cp.Overrides[0].Amount = money.FromInt(600)

	if *orig.ChargeDay != 10 {
		t.Error("clone shares charge day pointer")
	}
	if !orig.Overrides[0].Amount.Equal(money.FromInt(550).Decimal) {
		t.Error("clone shares overrides backing array")
	}
}
