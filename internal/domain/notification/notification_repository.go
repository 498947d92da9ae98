package notification

import (
	"context"
	"time"
)

// Repository defines the persistence operations for notifications.
type Repository interface {
	// Save persists a new notification.
	Save(ctx context.Context, n *Notification) error

	// UpdateStatus updates status and delivery metadata of a notification.
	UpdateStatus(ctx context.Context, n *Notification) error

	// ListByDevice returns a page of a device's notifications, newest first,
	// along with the total count.
	ListByDevice(ctx context.Context, nativeID string, page, limit int) ([]*Notification, int64, error)

	// DeleteByDevice removes the history of a device.
	DeleteByDevice(ctx context.Context, nativeID string) error

	// FailStale marks notifications still PENDING since before cutoff as
	// FAILED with reason and returns how many were changed.
	FailStale(ctx context.Context, cutoff time.Time, reason string) (int64, error)

	// DeleteBefore removes notifications created before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
