package repository

import (
	"context"

	"github.com/windoze95/recipefinder-api/internal/models"
)

// KVStore is the interface for whole-value key-value storage. Values are
// read and written in full; concurrent writers race and the last write wins.
type KVStore interface {
	// Get returns the value stored under key, or a NotFoundError.
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, namespace, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, namespace, key string) error
	// Subscribe registers fn to be called after every successful write and
	// returns a function that removes it.
	Subscribe(fn func(models.Change)) (unsubscribe func())
}
