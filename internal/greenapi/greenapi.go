// Package greenapi is a client for the Green API WhatsApp gateway: contact
// listing and message/file sending for one account instance.
package greenapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/oggyb/greenapi-notifier/internal/domain/device"
)

// DefaultBaseURL is the API host used when none is configured.
const DefaultBaseURL = "https://7103.api.greenapi.com"

// ErrMissingCredentials is returned before any request when the instance id
// or the API token is empty.
var ErrMissingCredentials = errors.New("greenapi: instance id and api token are required")

// ErrRequest wraps transport and decoding failures of a remote call.
var ErrRequest = errors.New("greenapi: request failed")

// Client is the contract for the remote messaging API.
type Client interface {
	// GetContacts lists the contacts of the account.
	GetContacts(ctx context.Context, creds device.Credentials) ([]Contact, error)

	// SendMessage sends a text message to a chat.
	SendMessage(ctx context.Context, creds device.Credentials, req SendMessageRequest) (*SendResponse, error)

	// SendFileByURL sends a file the remote API downloads from a URL.
	SendFileByURL(ctx context.Context, creds device.Credentials, req SendFileByURLRequest) (*SendResponse, error)
}

// Contact is a record returned by getContacts. Only Name and ID are used.
type Contact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contactName,omitempty"`
	Type        string `json:"type,omitempty"`
}

type SendMessageRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

type SendFileByURLRequest struct {
	ChatID   string `json:"chatId"`
	Caption  string `json:"caption"`
	URLFile  string `json:"urlFile"`
	FileName string `json:"fileName"`
}

// SendResponse holds the remote message id and the raw response body.
type SendResponse struct {
	IDMessage string `json:"idMessage"`
	Raw       string `json:"-"`
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("greenapi: %s returned non-2xx status: %d", e.Method, e.StatusCode)
}

// RawBody returns the response body carried by an APIError, or "".
func RawBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}

// IsRemote reports whether err came from the remote API or the way to it.
func IsRemote(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) || errors.Is(err, ErrRequest)
}
