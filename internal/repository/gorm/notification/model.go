package notificationgorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationModel is the GORM persistence model for notifications.
// It maps directly to the "notifications" table.
type NotificationModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	NativeID    string     `gorm:"size:64;not null;index"`
	ChatID      string     `gorm:"size:100;not null"`
	Kind        string     `gorm:"size:10;not null"`
	Message     string     `gorm:"type:text"`
	FileURL     string     `gorm:"type:text"`
	Status      string     `gorm:"size:20;not null"`
	RawResponse string     `gorm:"type:text"`
	Error       string     `gorm:"type:text"`
	MessageID   string     `gorm:"size:100;index"`
	SentAt      *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	UpdatedAt   time.Time
}

// TableName overrides the default table name used by GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}

// BeforeCreate ensures a UUID is set before inserting a new record.
func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
