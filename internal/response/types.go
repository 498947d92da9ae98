package response

import (
	"time"

	"github.com/oggyb/greenapi-notifier/internal/domain/device"
	domain "github.com/oggyb/greenapi-notifier/internal/domain/notification"
	"github.com/oggyb/greenapi-notifier/internal/settings"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type SettingsResponse struct {
	Success   bool               `json:"success"`
	Data      []settings.Setting `json:"data"`
	Timestamp string             `json:"timestamp"`
}

// DeviceDTO is the public representation of a registered notifier device.
type DeviceDTO struct {
	NativeID   string            `json:"nativeId"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Interfaces []string          `json:"interfaces"`
	Info       map[string]string `json:"info,omitempty"`
}

type DevicesResponse struct {
	Success   bool        `json:"success"`
	Data      []DeviceDTO `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type CreatedDevicePayload struct {
	NativeID string `json:"nativeId"`
}

type CreatedDeviceResponse struct {
	Success   bool                 `json:"success"`
	Data      CreatedDevicePayload `json:"data"`
	Timestamp string               `json:"timestamp"`
}

// NotificationDTO is the public representation of one send attempt.
type NotificationDTO struct {
	ID          string     `json:"id"`
	NativeID    string     `json:"nativeId"`
	ChatID      string     `json:"chatId"`
	Kind        string     `json:"kind"`
	Message     string     `json:"message"`
	FileURL     string     `json:"fileUrl,omitempty"`
	Status      string     `json:"status"`
	MessageID   string     `json:"messageId,omitempty"`
	RawResponse string     `json:"rawResponse,omitempty"`
	Error       string     `json:"error,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type NotificationResponse struct {
	Success   bool            `json:"success"`
	Data      NotificationDTO `json:"data"`
	Timestamp string          `json:"timestamp"`
}

type NotificationsPayload struct {
	Items []NotificationDTO `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type NotificationsResponse struct {
	Success   bool                 `json:"success"`
	Data      NotificationsPayload `json:"data"`
	Timestamp string               `json:"timestamp"`
}

type MessagePayload struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Success   bool           `json:"success"`
	Data      MessagePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

// FromManifests converts registry manifests into DTOs.
func FromManifests(ms []device.Manifest) []DeviceDTO {
	out := make([]DeviceDTO, len(ms))
	for i, m := range ms {
		out[i] = DeviceDTO{
			NativeID:   m.NativeID,
			Name:       m.Name,
			Type:       m.Type,
			Interfaces: m.Interfaces,
			Info:       m.Info,
		}
	}
	return out
}

// FromNotification converts a domain record into its DTO.
func FromNotification(n *domain.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID.String(),
		NativeID:    n.NativeID,
		ChatID:      n.ChatID,
		Kind:        string(n.Kind),
		Message:     n.Message,
		FileURL:     n.FileURL,
		Status:      string(n.Status),
		MessageID:   n.MessageID,
		RawResponse: n.RawResponse,
		Error:       n.Error,
		SentAt:      n.SentAt,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// FromNotifications converts domain records into DTOs.
func FromNotifications(ns []*domain.Notification) []NotificationDTO {
	out := make([]NotificationDTO, len(ns))
	for i, n := range ns {
		out[i] = FromNotification(n)
	}
	return out
}

type SchedulerStatusPayload struct {
	Running bool   `json:"running"`
	Message string `json:"message,omitempty"`
}

type SchedulerStatusResponse struct {
	Success   bool                   `json:"success"`
	Data      SchedulerStatusPayload `json:"data"`
	Timestamp string                 `json:"timestamp"`
}
