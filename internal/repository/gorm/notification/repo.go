package notificationgorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/greenapi-notifier/internal/db"
	"github.com/oggyb/greenapi-notifier/internal/domain/notification"
)

// Repository is a GORM-backed implementation of notification.Repository.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a notification repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// Save inserts a new notification record.
func (r *Repository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(fromDomain(n)).Error
}

// UpdateStatus persists the current status and delivery metadata.
func (r *Repository) UpdateStatus(ctx context.Context, n *notification.Notification) error {
	updates := map[string]any{
		"status":       string(n.Status),
		"kind":         string(n.Kind),
		"file_url":     n.FileURL,
		"message_id":   n.MessageID,
		"raw_response": n.RawResponse,
		"error":        n.Error,
		"sent_at":      n.SentAt,
	}

	return r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("id = ?", n.ID).
		Updates(updates).Error
}

// ListByDevice returns a page of a device's notifications, newest first,
// and the total count.
func (r *Repository) ListByDevice(ctx context.Context, nativeID string, page, limit int) ([]*notification.Notification, int64, error) {
	var models []NotificationModel
	var total int64

	query := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("native_id = ?", nativeID).
		Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, err
	}

	return toDomainMany(models), total, nil
}

// DeleteByDevice removes every notification of a device.
func (r *Repository) DeleteByDevice(ctx context.Context, nativeID string) error {
	return r.db.WithContext(ctx).
		Where("native_id = ?", nativeID).
		Delete(&NotificationModel{}).Error
}

// FailStale marks PENDING notifications created before cutoff as FAILED.
func (r *Repository) FailStale(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("status = ? AND created_at < ?", string(notification.StatusPending), cutoff).
		Updates(map[string]any{
			"status": string(notification.StatusFailed),
			"error":  reason,
		})
	return res.RowsAffected, res.Error
}

// DeleteBefore removes notifications created before cutoff.
func (r *Repository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&NotificationModel{})
	return res.RowsAffected, res.Error
}

// compile-time interface check
var _ notification.Repository = (*Repository)(nil)
