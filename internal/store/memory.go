package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/uuid"
)

// MemoryStore keeps transactions in process memory. Every read and write
// copies records, so callers never share state with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]models.Transaction
	feed *Feed
	now  func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]models.Transaction),
		feed: NewFeed(),
		now:  time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, t *models.Transaction) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	if t.ID == "" {
		t.ID = uuid.New()
	}
	now := s.now()
	t.CreatedAt, t.UpdatedAt = now, now
	for i := range t.Overrides {
		t.Overrides[i].TransactionID = t.ID
		t.Overrides[i].Position = i
	}
	s.data[t.ID] = t.Clone()
	s.mu.Unlock()

	s.feed.Publish(EventCreated, t.ID)
	return t.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := t.Clone()
	return &c, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, mutate func(*models.Transaction) error) (*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	cur, ok := s.data[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	t := cur.Clone()
	if err := mutate(&t); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	t.ID = id
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = s.now()
	for i := range t.Overrides {
		t.Overrides[i].TransactionID = id
		t.Overrides[i].Position = i
	}
	s.data[id] = t.Clone()
	s.mu.Unlock()

	s.feed.Publish(EventUpdated, id)
	return &t, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.data[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.data, id)
	s.mu.Unlock()

	s.feed.Publish(EventDeleted, id)
	return nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]models.Transaction, 0, len(s.data))
	for _, t := range s.data {
		out = append(out, t.Clone())
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *MemoryStore) Subscribe(fn func(Event)) func() {
	return s.feed.Subscribe(fn)
}
