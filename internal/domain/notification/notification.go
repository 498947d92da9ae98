// Package notification holds the domain model for notifications relayed by
// a notifier device.
package notification

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

type Kind string

const (
	KindText Kind = "text"
	KindFile Kind = "file"
)

// FileName is the file name sent with every image notification.
const FileName = "image.jpeg"

var (
	// ErrEmptyDevice is returned when no native id is provided.
	ErrEmptyDevice = errors.New("device native id is required")
	// ErrEmptyChat is returned when no chat id is provided.
	ErrEmptyChat = errors.New("chat id is required")
)

// Notification is one send attempt through the remote messaging API.
type Notification struct {
	ID          uuid.UUID
	NativeID    string
	ChatID      string
	Kind        Kind
	Message     string
	FileURL     string
	Status      Status
	MessageID   string
	RawResponse string
	Error       string
	SentAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Options carries the optional notification texts. Body wins over
// BodyWithSubtitle when both are set.
type Options struct {
	Body             string
	BodyWithSubtitle string
}

// ComposeMessage builds the outbound text: the title, followed by
// "\n " and the body when there is one.
func ComposeMessage(title string, opts *Options) string {
	if opts == nil {
		return title
	}
	body := opts.Body
	if body == "" {
		body = opts.BodyWithSubtitle
	}
	if body == "" {
		return title
	}
	return title + "\n " + body
}

// New constructs a pending notification.
func New(nativeID, chatID, message string) (*Notification, error) {
	nativeID = strings.TrimSpace(nativeID)
	if nativeID == "" {
		return nil, ErrEmptyDevice
	}
	if chatID == "" {
		return nil, ErrEmptyChat
	}

	return &Notification{
		ID:        uuid.New(),
		NativeID:  nativeID,
		ChatID:    chatID,
		Kind:      KindText,
		Message:   message,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}, nil
}

// AttachFile turns the notification into a file notification; the message
// becomes the caption.
func (n *Notification) AttachFile(url string) {
	n.Kind = KindFile
	n.FileURL = url
}

// MarkSent records a successful delivery.
func (n *Notification) MarkSent(msgID, raw string) {
	now := time.Now()
	n.SentAt = &now
	n.Status = StatusSuccess
	n.MessageID = msgID
	n.RawResponse = raw
}

// MarkFailed records a failed delivery.
func (n *Notification) MarkFailed(raw string, err error) {
	n.Status = StatusFailed
	n.RawResponse = raw
	if err != nil {
		n.Error = err.Error()
	}
}
