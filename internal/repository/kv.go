package repository

import (
	"context"
	"errors"

	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository is a KVStore backed by the kv_entries table.
type KVRepository struct {
	DB *gorm.DB
	changeNotifier
}

// NewKVRepository creates a new KVRepository.
func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{DB: db}
}

// Get retrieves the value stored under namespace/key.
func (r *KVRepository) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var entry models.KVEntry
	err := r.DB.WithContext(ctx).
		Where("namespace = ? AND key = ?", namespace, key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newKeyNotFoundError(namespace, key)
		}
		logger.Get().Error("failed to read kv entry", zap.String("namespace", namespace), zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Put upserts the value stored under namespace/key.
func (r *KVRepository) Put(ctx context.Context, namespace, key string, value []byte) error {
	entry := models.KVEntry{Namespace: namespace, Key: key, Value: string(value)}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		logger.Get().Error("failed to write kv entry", zap.String("namespace", namespace), zap.String("key", key), zap.Error(err))
		return err
	}
	r.publish(models.Change{Namespace: namespace, Key: key})
	return nil
}

// Delete removes namespace/key.
func (r *KVRepository) Delete(ctx context.Context, namespace, key string) error {
	result := r.DB.WithContext(ctx).
		Where("namespace = ? AND key = ?", namespace, key).
		Delete(&models.KVEntry{})
	if result.Error != nil {
		logger.Get().Error("failed to delete kv entry", zap.String("namespace", namespace), zap.String("key", key), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected > 0 {
		r.publish(models.Change{Namespace: namespace, Key: key, Deleted: true})
	}
	return nil
}
