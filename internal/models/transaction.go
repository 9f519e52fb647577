package models

import (
	"errors"
	"strings"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/money"
)

// Charge days are capped at 28 so every month has the day.
const (
	MinChargeDay = 1
	MaxChargeDay = 28
)

// MaxDescriptionLength bounds the free-text label.
const MaxDescriptionLength = 500

var (
	ErrZeroDate              = errors.New("date cannot be zero")
	ErrUnknownCategory       = errors.New("unknown category")
	ErrNegativeAmount        = errors.New("amount cannot be negative")
	ErrDescriptionTooLong    = errors.New("description too long (max 500 characters)")
	ErrChargeDayRange        = errors.New("charge day must be between 1 and 28")
	ErrChargeDayRequired     = errors.New("recurring transactions need a charge day")
	ErrChargeDayNotApplied   = errors.New("one-time transactions cannot have a charge day")
	ErrOverridesNotRecurring = errors.New("one-time transactions cannot have amount overrides")
)

// Transaction is an income or expense record. A one-time transaction counts
// in the month of its Date. A recurring transaction counts in every month,
// with the amount resolved from Overrides; its Date is only the origin.
type Transaction struct {
	Base
	Amount      money.Amount `gorm:"type:numeric;not null" json:"amount"`
	Date        time.Time    `gorm:"not null;index" json:"date"`
	Category    CategoryID   `gorm:"size:32;not null;index" json:"category"`
	Description string       `gorm:"size:500" json:"description"`
	IsRecurring bool         `gorm:"not null;default:false" json:"is_recurring"`
	ChargeDay   *int         `json:"charge_day,omitempty"`

	// Overrides are kept sorted by EffectiveFrom. Amount stays the value in
	// effect before the earliest override.
	Overrides []AmountOverride `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"overrides,omitempty"`
}

// AmountOverride records that a recurring transaction's amount changed to
// Amount starting at EffectiveFrom. Position is the append order, used to
// break ties between overrides sharing an EffectiveFrom.
type AmountOverride struct {
	ID            uint         `gorm:"primaryKey" json:"-"`
	TransactionID string       `gorm:"size:36;not null;index" json:"-"`
	Amount        money.Amount `gorm:"type:numeric;not null" json:"amount"`
	EffectiveFrom time.Time    `gorm:"not null" json:"effective_from"`
	Position      int          `gorm:"not null;default:0" json:"-"`
}

// Validate checks the record invariants.
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if !t.Category.Valid() {
		return ErrUnknownCategory
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if len(strings.TrimSpace(t.Description)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	if !t.IsRecurring {
		if t.ChargeDay != nil {
			return ErrChargeDayNotApplied
		}
		if len(t.Overrides) > 0 {
			return ErrOverridesNotRecurring
		}
		return nil
	}

	if t.ChargeDay == nil {
		return ErrChargeDayRequired
	}
	if !ValidChargeDay(*t.ChargeDay) {
		return ErrChargeDayRange
	}
	for _, o := range t.Overrides {
		if o.Amount.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}

// ValidChargeDay reports whether day is an allowed charge day.
func ValidChargeDay(day int) bool {
	return day >= MinChargeDay && day <= MaxChargeDay
}

// Clone returns a deep copy of t.
func (t *Transaction) Clone() Transaction {
	out := *t
	if t.ChargeDay != nil {
		day := *t.ChargeDay
		out.ChargeDay = &day
	}
	if t.Overrides != nil {
		out.Overrides = make([]AmountOverride, len(t.Overrides))
		copy(out.Overrides, t.Overrides)
	}
	return out
}
