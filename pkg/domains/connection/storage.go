package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/armii/platform-admin/pkg/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage is the durable key-value store behind the tracker. Set overwrites,
// so the last write for a key wins.
type Storage interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

var _ Storage = (*repository)(nil)

func NewRepo(db *gorm.DB) Storage {
	return &repository{
		db: db,
	}
}

// Get decodes the value stored under key into dst. It reports false when the
// key is absent.
func (r *repository) Get(ctx context.Context, key string, dst any) (bool, error) {
	var record entities.StatusRecord
	err := r.db.WithContext(ctx).Where("record_key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(record.Value), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *repository) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	record := entities.StatusRecord{
		Key:   key,
		Value: string(data),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("record_key = ?", key).Delete(&entities.StatusRecord{}).Error
}

// Keys lists the stored keys starting with prefix, sorted.
func (r *repository) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&entities.StatusRecord{}).
		Order("record_key").
		Pluck("record_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	// "_" is a LIKE wildcard and every prefix here contains one, so filter here
	matched := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			matched = append(matched, k)
		}
	}
	return matched, nil
}
