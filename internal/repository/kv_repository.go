package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/resumind/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository stores key/value pairs in the kv_entries table.
type KVRepository struct {
	db *gorm.DB
}

func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{db}
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	var entry model.KVEntry
	err := r.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	entry := model.KVEntry{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *KVRepository) List(ctx context.Context, pattern string, withValues bool) ([]model.KVEntry, error) {
	var entries []model.KVEntry
	q := r.db.WithContext(ctx).Model(&model.KVEntry{})
	if !withValues {
		q = q.Select("key")
	}
	err := q.Where("key LIKE ?", likePattern(pattern)).Order("key").Find(&entries).Error
	return entries, err
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&model.KVEntry{}, "key = ?", key).Error
}

// likePattern turns a glob into a LIKE pattern with the backslash escape.
func likePattern(glob string) string {
	var b strings.Builder
	for _, r := range glob {
		switch r {
		case '%', '_', '\\':
			b.WriteRune('\\')
			b.WriteRune(r)
		case '*':
			b.WriteRune('%')
		case '?':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var _ KVStore = (*KVRepository)(nil)
