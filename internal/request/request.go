package request

import (
	domain "github.com/oggyb/greenapi-notifier/internal/domain/notification"
	"github.com/oggyb/greenapi-notifier/internal/media"
)

// PutSettingRequest represents the JSON body for a single setting change.
// Button settings ignore Value.
type PutSettingRequest struct {
	Value string `json:"value"`
}

// CreateDeviceRequest represents the JSON body for device creation.
type CreateDeviceRequest struct {
	// Settings holds the creation form values; "target" is required and
	// must look like "name:id".
	Settings map[string]string `json:"settings"`
	// NativeID is optional. An empty id gets a fresh random one.
	NativeID string `json:"nativeId,omitempty"`
}

// MediaObject is an inline media payload. Data is base64 in JSON.
type MediaObject struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     []byte `json:"data"`
}

type NotificationRequest struct {
	Title            string `json:"title"`
	Body             string `json:"body,omitempty"`
	BodyWithSubtitle string `json:"bodyWithSubtitle,omitempty"`

	// Media is a public URL. It wins over MediaObject.
	Media       string       `json:"media,omitempty"`
	MediaObject *MediaObject `json:"mediaObject,omitempty"`

	// Icon is accepted and not sent.
	Icon string `json:"icon,omitempty"`
}

// Options returns the body options, or nil when no body was given.
func (r NotificationRequest) Options() *domain.Options {
	if r.Body == "" && r.BodyWithSubtitle == "" {
		return nil
	}
	return &domain.Options{Body: r.Body, BodyWithSubtitle: r.BodyWithSubtitle}
}

// Attachment returns the media to send, or nil.
func (r NotificationRequest) Attachment() *media.Media {
	switch {
	case r.Media != "":
		return &media.Media{URL: r.Media}
	case r.MediaObject != nil:
		return &media.Media{MimeType: r.MediaObject.MimeType, Data: r.MediaObject.Data}
	default:
		return nil
	}
}

// IconMedia returns the icon as URL media, or nil.
func (r NotificationRequest) IconMedia() *media.Media {
	if r.Icon == "" {
		return nil
	}
	return &media.Media{URL: r.Icon}
}

// SchedulerRequest represents the JSON body for maintenance control.
type SchedulerRequest struct {
	// Action controls the history maintenance job. Allowed values:
	// - "start": run maintenance on its interval
	// - "stop":  pause maintenance
	Action string `json:"action"`
}
