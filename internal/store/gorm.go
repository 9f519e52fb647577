package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kola-Kola/personal-finance/internal/logger"
	"github.com/Kola-Kola/personal-finance/internal/models"
)

// GormStore keeps transactions in a SQL database through gorm.
type GormStore struct {
	db   *gorm.DB
	mu   sync.Mutex // serializes writes
	feed *Feed
}

// NewGormStore returns a store over db. The schema must already exist.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, feed: NewFeed()}
}

func preloadOverrides(db *gorm.DB) *gorm.DB {
	return db.Order("effective_from ASC, position ASC")
}

func (s *GormStore) Create(ctx context.Context, t *models.Transaction) (string, error) {
	s.mu.Lock()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		overrides := t.Overrides
		t.Overrides = nil
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return err
		}
		t.Overrides = overrides
		return insertOverrides(tx, t)
	})
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}

	s.feed.Publish(EventCreated, t.ID)
	return t.ID, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	return s.get(s.db.WithContext(ctx), id)
}

func (s *GormStore) get(db *gorm.DB, id string) (*models.Transaction, error) {
	var t models.Transaction
	err := db.Preload("Overrides", preloadOverrides).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return &t, nil
}

func (s *GormStore) Update(ctx context.Context, id string, mutate func(*models.Transaction) error) (*models.Transaction, error) {
	var updated *models.Transaction

	s.mu.Lock()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.get(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(t); err != nil {
			return err
		}
		t.ID = id

		if err := tx.Where("transaction_id = ?", id).Delete(&models.AmountOverride{}).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(t).Error; err != nil {
			return err
		}
		if err := insertOverrides(tx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.feed.Publish(EventUpdated, id)
	return updated, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&models.AmountOverride{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Transaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.feed.Publish(EventDeleted, id)
	return nil
}

func (s *GormStore) ListAll(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.WithContext(ctx).
		Preload("Overrides", preloadOverrides).
		Order("date DESC, created_at DESC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *GormStore) Subscribe(fn func(Event)) func() {
	return s.feed.Subscribe(fn)
}

// insertOverrides writes t.Overrides as fresh rows, numbering positions in
// list order.
func insertOverrides(tx *gorm.DB, t *models.Transaction) error {
	if len(t.Overrides) == 0 {
		return nil
	}
	for i := range t.Overrides {
		t.Overrides[i].ID = 0
		t.Overrides[i].TransactionID = t.ID
		t.Overrides[i].Position = i
	}
	if err := tx.Create(&t.Overrides).Error; err != nil {
		logger.Named("store").Errorw("failed to write amount overrides", "transaction_id", t.ID, "error", err)
		return err
	}
	return nil
}
