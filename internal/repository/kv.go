package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/resumind/internal/model"
)

var ErrNotFound = errors.New("not found")

// KVStore is a string key/value store. List patterns use glob syntax,
// typically a prefix followed by "*".
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context, pattern string, withValues bool) ([]model.KVEntry, error)
	Delete(ctx context.Context, key string) error
}
