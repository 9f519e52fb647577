package ledger

import "github.com/Kola-Kola/personal-finance/internal/models"

// FilterByMonth selects the transactions relevant to m. With wantRecurring
// unset it returns the one-time transactions dated in m; with it set it
// returns every recurring transaction, since a recurring record is active in
// all months. Input order is preserved.
func FilterByMonth(txs []models.Transaction, m Month, wantRecurring bool) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if wantRecurring {
			if t.IsRecurring {
				out = append(out, t)
			}
			continue
		}
		if !t.IsRecurring && m.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}
