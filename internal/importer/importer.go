// Package importer loads the JSON export of the legacy browser app into a
// record store.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kola-Kola/personal-finance/internal/ledger"
	"github.com/Kola-Kola/personal-finance/internal/logger"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/money"
	"github.com/Kola-Kola/personal-finance/internal/store"
)

// legacyCategories maps the export's category ids onto the category table.
var legacyCategories = map[string]models.CategoryID{
	"revenu":    models.CategoryIncome,
	"factures":  models.CategoryBills,
	"impots":    models.CategoryTaxes,
	"loisirs":   models.CategoryLeisure,
	"transport": models.CategoryTransport,
	"essence":   models.CategoryFuel,
	"credit":    models.CategoryMortgage,
	"assurance": models.CategoryInsurance,
}

// Errors reported for records that cannot be converted.
var (
	ErrMissingDate     = errors.New("missing date")
	ErrUnknownCategory = errors.New("unknown category")
)

// Amount is a leniently decoded amount. null, non-numeric text and
// non-finite values all decode as zero.
type Amount struct {
	money.Amount
}

// UnmarshalJSON never fails.
func (a *Amount) UnmarshalJSON(b []byte) error {
	a.Amount = money.Zero

	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return nil
		}
		if parsed, err := money.Parse(s); err == nil {
			a.Amount = parsed
		}
		return nil
	}
	if d, err := decimal.NewFromString(string(raw)); err == nil {
		a.Amount = money.New(d)
	}
	return nil
}

// Modification is a legacy amount change.
type Modification struct {
	Montant   Amount `json:"montant"`
	DateEffet string `json:"dateEffet"`
}

// Record is one exported transaction.
type Record struct {
	Montant         Amount         `json:"montant"`
	Date            string         `json:"date"`
	Categorie       string         `json:"categorie"`
	Description     string         `json:"description"`
	IsRecurrent     bool           `json:"isRecurrent"`
	JourPrelevement *int           `json:"jourPrelevement"`
	Modifications   []Modification `json:"modifications"`
}

// Decode reads an export. Both a bare array and an object with a
// "transactions" array are accepted.
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	data = bytes.TrimSpace(data)

	var records []Record
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Transactions []Record `json:"transactions"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode export: %w", err)
		}
		return wrapped.Transactions, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return records, nil
}

// Convert maps a legacy record onto a transaction ready for the store.
// Amounts are stored as magnitudes. A recurring record without a usable
// charge day takes the day of its date, capped to the allowed range.
func Convert(rec Record) (*models.Transaction, error) {
	if strings.TrimSpace(rec.Date) == "" {
		return nil, ErrMissingDate
	}
	date, err := ledger.ParseDate(rec.Date)
	if err != nil {
		return nil, err
	}

	category, ok := legacyCategories[strings.ToLower(strings.TrimSpace(rec.Categorie))]
	if !ok {
		category = models.CategoryID(rec.Categorie)
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, rec.Categorie)
		}
	}

	tx := &models.Transaction{
		Amount:      rec.Montant.Magnitude(),
		Date:        date,
		Category:    category,
		Description: strings.TrimSpace(rec.Description),
		IsRecurring: rec.IsRecurrent,
	}

	if rec.IsRecurrent {
		day := chargeDay(rec.JourPrelevement, date)
		tx.ChargeDay = &day

		for _, m := range rec.Modifications {
			from, err := ledger.ParseDate(m.DateEffet)
			if err != nil {
				return nil, fmt.Errorf("modification: %w", err)
			}
			tx.Overrides = append(tx.Overrides, models.AmountOverride{
				Amount:        m.Montant.Magnitude(),
				EffectiveFrom: from,
			})
		}
		tx.Overrides = ledger.NormalizeOverrides(tx.Overrides)
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

func chargeDay(day *int, date time.Time) int {
	if day != nil && models.ValidChargeDay(*day) {
		return *day
	}
	d := date.Day()
	if d > models.MaxChargeDay {
		d = models.MaxChargeDay
	}
	return d
}

// Skipped is a record left out of an import.
type Skipped struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result summarizes an import.
type Result struct {
	Imported int       `json:"imported"`
	IDs      []string  `json:"ids"`
	Skipped  []Skipped `json:"skipped"`
}

// Import converts every record and creates it in s. Records that cannot be
// converted are skipped; a store failure stops the import and is returned
// with the partial result.
func Import(ctx context.Context, s store.Store, records []Record) (*Result, error) {
	log := logger.Named("import")
	result := &Result{IDs: []string{}, Skipped: []Skipped{}}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		tx, err := Convert(rec)
		if err != nil {
			log.Warnw("skipping record", "index", i, "error", err)
			result.Skipped = append(result.Skipped, Skipped{Index: i, Reason: err.Error()})
			continue
		}

		id, err := s.Create(ctx, tx)
		if err != nil {
			return result, fmt.Errorf("create record %d: %w", i, err)
		}
		result.Imported++
		result.IDs = append(result.IDs, id)
	}

	log.Infow("import finished", "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}
