package devicegorm

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/greenapi-notifier/internal/db"
	"github.com/oggyb/greenapi-notifier/internal/settings"
)

// Storage is a GORM-backed settings.Storage.
type Storage struct {
	db *gorm.DB
}

func NewStorage(d db.DB) *Storage {
	return &Storage{
		db: d.Conn().(*gorm.DB),
	}
}

func (s *Storage) GetItem(ctx context.Context, nativeID, key string) (string, bool, error) {
	var models []SettingModel
	err := s.db.WithContext(ctx).
		Where("native_id = ? AND setting_key = ?", nativeID, key).
		Limit(1).
		Find(&models).Error
	if err != nil {
		return "", false, err
	}
	if len(models) == 0 {
		return "", false, nil
	}
	return models[0].Value, true, nil
}

func (s *Storage) SetItem(ctx context.Context, nativeID, key, value string) error {
	model := SettingModel{
		NativeID:  nativeID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "native_id"}, {Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model).Error
}

func (s *Storage) RemoveItems(ctx context.Context, nativeID string) error {
	return s.db.WithContext(ctx).
		Where("native_id = ?", nativeID).
		Delete(&SettingModel{}).Error
}

var _ settings.Storage = (*Storage)(nil)
