package notificationgorm

import (
	"github.com/oggyb/greenapi-notifier/internal/domain/notification"
)

// toDomain maps a NotificationModel to a domain-level Notification.
func toDomain(m *NotificationModel) *notification.Notification {
	return &notification.Notification{
		ID:          m.ID,
		NativeID:    m.NativeID,
		ChatID:      m.ChatID,
		Kind:        notification.Kind(m.Kind),
		Message:     m.Message,
		FileURL:     m.FileURL,
		Status:      notification.Status(m.Status),
		MessageID:   m.MessageID,
		RawResponse: m.RawResponse,
		Error:       m.Error,
		SentAt:      m.SentAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainMany(models []NotificationModel) []*notification.Notification {
	out := make([]*notification.Notification, len(models))
	for i := range models {
		out[i] = toDomain(&models[i])
	}
	return out
}

// fromDomain maps a domain-level Notification to a NotificationModel.
func fromDomain(d *notification.Notification) *NotificationModel {
	return &NotificationModel{
		ID:          d.ID,
		NativeID:    d.NativeID,
		ChatID:      d.ChatID,
		Kind:        string(d.Kind),
		Message:     d.Message,
		FileURL:     d.FileURL,
		Status:      string(d.Status),
		MessageID:   d.MessageID,
		RawResponse: d.RawResponse,
		Error:       d.Error,
		SentAt:      d.SentAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
