package devicegorm

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/greenapi-notifier/internal/db"
	"github.com/oggyb/greenapi-notifier/internal/domain/device"
)

// Registry is a GORM-backed implementation of device.Registry.
type Registry struct {
	db *gorm.DB
}

// NewRegistry constructs a device registry using the given DB adapter.
func NewRegistry(d db.DB) *Registry {
	return &Registry{
		db: d.Conn().(*gorm.DB),
	}
}

// OnDeviceDiscovered inserts the device or updates an existing registration.
func (r *Registry) OnDeviceDiscovered(ctx context.Context, m device.Manifest) error {
	now := time.Now()
	model := DeviceModel{
		NativeID:   m.NativeID,
		Name:       m.Name,
		Interfaces: m.Interfaces,
		Type:       m.Type,
		Info:       m.Info,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "native_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "interfaces", "type", "info", "updated_at"}),
		}).
		Create(&model).Error
}

// NativeIDs lists registered native ids in ascending order.
func (r *Registry) NativeIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&DeviceModel{}).
		Order("native_id ASC").
		Pluck("native_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeviceState returns the stored manifest or device.ErrNotRegistered.
func (r *Registry) DeviceState(ctx context.Context, nativeID string) (*device.Manifest, error) {
	var models []DeviceModel
	err := r.db.WithContext(ctx).
		Where("native_id = ?", nativeID).
		Limit(1).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, device.ErrNotRegistered
	}

	m := models[0]
	return &device.Manifest{
		NativeID:   m.NativeID,
		Name:       m.Name,
		Interfaces: m.Interfaces,
		Type:       m.Type,
		Info:       m.Info,
	}, nil
}

// RemoveDevice deletes a registration.
func (r *Registry) RemoveDevice(ctx context.Context, nativeID string) error {
	return r.db.WithContext(ctx).
		Where("native_id = ?", nativeID).
		Delete(&DeviceModel{}).Error
}

// compile-time interface check
var _ device.Registry = (*Registry)(nil)
