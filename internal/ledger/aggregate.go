package ledger

import (
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/money"
	"github.com/shopspring/decimal"
)

// Summary holds the totals of one month. Income and Expense are magnitudes;
// Net is Income minus Expense.
type Summary struct {
	Month            Month           `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Net              decimal.Decimal `json:"net"`
	OneTimeExpense   decimal.Decimal `json:"one_time_expense"`
	RecurringExpense decimal.Decimal `json:"recurring_expense"`
}

// CategoryTotal is one segment of a per-category breakdown.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Contribution is what t adds to m's totals before sign classing: the
// resolved amount for a recurring transaction, the base amount for a
// one-time transaction dated in m, zero otherwise.
func Contribution(t *models.Transaction, m Month) decimal.Decimal {
	if t.IsRecurring {
		return ResolveMonth(t, m)
	}
	if m.Contains(t.Date) {
		return t.Amount.Decimal
	}
	return decimal.Zero
}

// Aggregate sums the contributions of txs to m, optionally restricted to a
// single category. An empty input sums to zero.
func Aggregate(txs []models.Transaction, m Month, category *models.CategoryID) decimal.Decimal {
	contributions := make([]decimal.Decimal, 0, len(txs))
	for i := range txs {
		if category != nil && txs[i].Category != *category {
			continue
		}
		contributions = append(contributions, Contribution(&txs[i], m))
	}
	return money.Sum(contributions...)
}

// Summarize splits m's totals by category sign class.
func Summarize(txs []models.Transaction, m Month) Summary {
	s := Summary{
		Month:            m,
		Income:           decimal.Zero,
		Expense:          decimal.Zero,
		OneTimeExpense:   decimal.Zero,
		RecurringExpense: decimal.Zero,
	}
	for i := range txs {
		t := &txs[i]
		c := Contribution(t, m)
		if c.IsZero() {
			continue
		}
		if t.Category.IsIncome() {
			s.Income = s.Income.Add(c)
			continue
		}
		s.Expense = s.Expense.Add(c)
		if t.IsRecurring {
			s.RecurringExpense = s.RecurringExpense.Add(c)
		} else {
			s.OneTimeExpense = s.OneTimeExpense.Add(c)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// Breakdown groups m's contributions by category in table order, unknown
// categories last. Categories whose total is exactly zero are dropped.
func Breakdown(txs []models.Transaction, m Month) []CategoryTotal {
	totals := make(map[models.CategoryID]decimal.Decimal)
	for i := range txs {
		t := &txs[i]
		totals[t.Category] = totals[t.Category].Add(Contribution(t, m))
	}

	ids := make([]models.CategoryID, 0, len(totals))
	for id, total := range totals {
		if total.IsZero() {
			continue
		}
		ids = append(ids, id)
	}
	models.SortCategoryIDs(ids)

	out := make([]CategoryTotal, 0, len(ids))
	for _, id := range ids {
		out = append(out, CategoryTotal{Category: models.CategoryFor(id), Total: totals[id]})
	}
	return out
}

// BreakdownByClass is Breakdown restricted to one sign class.
func BreakdownByClass(txs []models.Transaction, m Month, class models.CategoryClass) []CategoryTotal {
	all := Breakdown(txs, m)
	out := all[:0]
	for _, ct := range all {
		if ct.Category.Class == class {
			out = append(out, ct)
		}
	}
	return out
}
