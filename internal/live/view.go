// Package live keeps a materialized snapshot of every transaction, refreshed
// on each store mutation, together with the loading and error state that
// readers display.
package live

import (
	"context"
	"slices"
	"sync"

	"github.com/Kola-Kola/personal-finance/internal/logger"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/store"
)

// State is what readers see: the latest snapshot, whether the first load
// is still pending, and the last recoverable error.
type State struct {
	Transactions []models.Transaction `json:"transactions"`
	IsLoading    bool                 `json:"is_loading"`
	Error        string               `json:"error,omitempty"`
}

// View mirrors a store. Reads never touch the store; they copy the last
// snapshot taken.
type View struct {
	store store.Store

	mu          sync.RWMutex
	txs         []models.Transaction
	loading     bool
	err         error
	ctx         context.Context

	// issued numbers refreshes as they start; applied is the newest one
	// whose result was stored.
	issued  uint64
	applied uint64

	unsubscribe func()
}

// NewView returns a view over s. It holds no data until Start.
func NewView(s store.Store) *View {
	return &View{store: s, loading: true, ctx: context.Background()}
}

// Start subscribes to the store and takes the first snapshot. ctx bounds
// every later refresh.
func (v *View) Start(ctx context.Context) error {
	v.mu.Lock()
	v.ctx = ctx
	if v.unsubscribe == nil {
		v.unsubscribe = v.store.Subscribe(func(ev store.Event) {
			if err := v.Refresh(v.context()); err != nil {
				logger.Named("live").Warnw("refresh after store event failed", "event", ev.Type, "id", ev.ID, "error", err)
			}
		})
	}
	v.mu.Unlock()

	return v.Refresh(ctx)
}

func (v *View) context() context.Context {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.ctx
}

// Refresh reloads the snapshot. On failure the previous snapshot is kept
// and the error is recorded; the next successful refresh clears it.
//
// Refreshes may overlap. A result is dropped when a refresh that started
// later has already been stored, so the snapshot never goes back in time.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.issued++
	seq := v.issued
	v.mu.Unlock()

	txs, err := v.store.ListAll(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if seq < v.applied {
		return err
	}
	if err != nil {
		v.err = err
		return err
	}
	v.applied = seq
	v.txs = txs
	v.err = nil
	return nil
}

// ReportError records a failed mutation so readers can show it. The
// snapshot is left untouched.
func (v *View) ReportError(err error) {
	if err == nil {
		return
	}
	v.mu.Lock()
	v.err = err
	v.mu.Unlock()
}

// Snapshot returns a deep copy of the current transactions.
func (v *View) Snapshot() []models.Transaction {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return cloneAll(v.txs)
}

// State returns the reader-facing state.
func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := State{Transactions: cloneAll(v.txs), IsLoading: v.loading}
	if s.Transactions == nil {
		s.Transactions = []models.Transaction{}
	}
	if v.err != nil {
		s.Error = v.err.Error()
	}
	return s
}

// Close stops following the store.
func (v *View) Close() {
	v.mu.Lock()
	un := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	if un != nil {
		un()
	}
}

func cloneAll(txs []models.Transaction) []models.Transaction {
	if txs == nil {
		return nil
	}
	out := slices.Clone(txs)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}
