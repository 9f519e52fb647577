// Package store persists transactions and announces every committed
// mutation to its subscribers.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/models"
)

// ErrNotFound is returned when no transaction has the requested id.
var ErrNotFound = errors.New("transaction not found")

// EventType names a store mutation.
type EventType string

const (
	EventCreated EventType = "transaction.created"
	EventUpdated EventType = "transaction.updated"
	EventDeleted EventType = "transaction.deleted"
)

// Event describes a committed mutation.
type Event struct {
	Type EventType `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

// Store is a keyed transaction store. Mutations are serialized; an event is
// delivered to subscribers only after the mutation it describes is visible
// to reads.
type Store interface {
	// Create persists t, assigns its id and returns it.
	Create(ctx context.Context, t *models.Transaction) (string, error)
	Get(ctx context.Context, id string) (*models.Transaction, error)
	// Update loads the record, hands it to mutate and persists the result,
	// overrides included, as one atomic step. A mutate error aborts the
	// update and is returned as is.
	Update(ctx context.Context, id string, mutate func(*models.Transaction) error) (*models.Transaction, error)
	// Delete removes the record together with its overrides.
	Delete(ctx context.Context, id string) error
	// ListAll returns every record, newest date first.
	ListAll(ctx context.Context) ([]models.Transaction, error)
	// Subscribe registers fn for every later event. The returned function
	// removes the registration.
	Subscribe(fn func(Event)) (unsubscribe func())
}
