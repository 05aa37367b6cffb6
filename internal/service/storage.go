package service

import (
	"context"
	"fmt"

	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/repository"
	"github.com/windoze95/recipefinder-api/internal/util"
	"go.uber.org/zap"
)

// GlobalNamespace holds data shared by every client, such as admin recipes.
const GlobalNamespace = "global"

// loadValue reads a JSON value from the store into v. A missing key leaves
// v untouched, and so does an unreadable value, which is logged and then
// overwritten by the next write.
func loadValue(ctx context.Context, store repository.KVStore, namespace, key string, v interface{}) error {
	data, err := store.Get(ctx, namespace, key)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := util.DeserializeFromJSONBytes(data, v); err != nil {
		logger.Get().Warn("ignoring unreadable stored value", zap.String("namespace", namespace), zap.String("key", key), zap.Error(err))
	}
	return nil
}

// saveValue writes v to the store as JSON, replacing the previous value.
func saveValue(ctx context.Context, store repository.KVStore, namespace, key string, v interface{}) error {
	data, err := util.SerializeToJSONBytes(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Put(ctx, namespace, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
