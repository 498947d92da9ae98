package devicegorm

import "time"

// DeviceModel is a registered notifier device. Maps to the "devices" table.
type DeviceModel struct {
	NativeID   string            `gorm:"primaryKey;size:64"`
	Name       string            `gorm:"size:255;not null"`
	Interfaces []string          `gorm:"type:text;serializer:json"`
	Type       string            `gorm:"size:50;not null"`
	Info       map[string]string `gorm:"type:text;serializer:json"`
	CreatedAt  time.Time         `gorm:"not null"`
	UpdatedAt  time.Time
}

func (DeviceModel) TableName() string {
	return "devices"
}

// SettingModel is one stored setting value. The provider itself uses an
// empty native id. Maps to the "device_settings" table.
type SettingModel struct {
	NativeID  string `gorm:"primaryKey;size:64"`
	Key       string `gorm:"column:setting_key;primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (SettingModel) TableName() string {
	return "device_settings"
}
