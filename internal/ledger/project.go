package ledger

import (
	"iter"
	"slices"

	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/shopspring/decimal"
)

// Default window policy for the recurring grid.
const (
	DefaultWindowSize  = 6
	DefaultMonthsBack  = 12
	DefaultMonthsAhead = 24
	MonthOptionsCount  = 25
)

// MonthAmount is one cell of a projection.
type MonthAmount struct {
	Month  Month           `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// Project yields the resolved amount of t for each month in order. The
// transaction and the month list are copied up front, so the sequence can be
// ranged over any number of times with identical results.
func Project(t *models.Transaction, months []Month) iter.Seq2[Month, decimal.Decimal] {
	var snap *models.Transaction
	if t != nil {
		c := t.Clone()
		snap = &c
	}
	ms := slices.Clone(months)

	return func(yield func(Month, decimal.Decimal) bool) {
		for _, m := range ms {
			if !yield(m, ResolveMonth(snap, m)) {
				return
			}
		}
	}
}

// Projection collects Project into a slice.
func Projection(t *models.Transaction, months []Month) []MonthAmount {
	out := make([]MonthAmount, 0, len(months))
	for m, amount := range Project(t, months) {
		out = append(out, MonthAmount{Month: m, Amount: amount})
	}
	return out
}

// Window returns n contiguous months starting at start.
func Window(start Month, n int) []Month {
	if n <= 0 {
		return nil
	}
	out := make([]Month, n)
	for i := range out {
		out[i] = start.AddMonths(i)
	}
	return out
}

// MonthOptions lists the months offered by a month picker: n months centered
// on now.
func MonthOptions(now Month, n int) []Month {
	return Window(now.AddMonths(-(n / 2)), n)
}

// Navigator bounds how far a projection window may be paged from Now.
type Navigator struct {
	Now   Month
	Size  int
	Back  int
	Ahead int
}

// DefaultNavigator returns the six month window policy.
func DefaultNavigator(now Month) Navigator {
	return Navigator{Now: now, Size: DefaultWindowSize, Back: DefaultMonthsBack, Ahead: DefaultMonthsAhead}
}

// first and last are the earliest and latest window starts the bounds allow.
func (n Navigator) first() Month { return n.Now.AddMonths(-n.Back) }
func (n Navigator) last() Month  { return n.Now.AddMonths(n.Ahead - (n.Size - 1)) }

// CanPrevious reports whether the window starting at start may move back.
func (n Navigator) CanPrevious(start Month) bool {
	return n.first().Before(start)
}

// CanNext reports whether the window starting at start may move forward.
func (n Navigator) CanNext(start Month) bool {
	return start.Before(n.last())
}

// Previous moves start back one page, stopping at the earliest allowed
// start. At the bound start is returned unchanged.
func (n Navigator) Previous(start Month) Month {
	if !n.CanPrevious(start) {
		return start
	}
	prev := start.AddMonths(-n.Size)
	if prev.Before(n.first()) {
		return n.first()
	}
	return prev
}

// Next moves start forward one page, stopping at the latest allowed start.
func (n Navigator) Next(start Month) Month {
	if !n.CanNext(start) {
		return start
	}
	next := start.AddMonths(n.Size)
	if n.last().Before(next) {
		return n.last()
	}
	return next
}
