// Package gormrepo groups the GORM repositories and their schema migration.
package gormrepo

import (
	"gorm.io/gorm"

	"github.com/oggyb/greenapi-notifier/internal/db"
	devicegorm "github.com/oggyb/greenapi-notifier/internal/repository/gorm/device"
	notificationgorm "github.com/oggyb/greenapi-notifier/internal/repository/gorm/notification"
)

// Models lists every persistence model.
func Models() []any {
	return []any{
		&devicegorm.DeviceModel{},
		&devicegorm.SettingModel{},
		&notificationgorm.NotificationModel{},
	}
}

// AutoMigrate creates or updates the tables of all models.
func AutoMigrate(d db.DB) error {
	return d.Conn().(*gorm.DB).AutoMigrate(Models()...)
}
