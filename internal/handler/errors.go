package handler

import (
	"errors"
	"net/http"

	"github.com/oggyb/greenapi-notifier/internal/domain/device"
	"github.com/oggyb/greenapi-notifier/internal/greenapi"
	"github.com/oggyb/greenapi-notifier/internal/media"
	"github.com/oggyb/greenapi-notifier/internal/service"
	"github.com/oggyb/greenapi-notifier/internal/settings"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrDeviceNotFound),
		errors.Is(err, media.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, device.ErrInvalidTarget),
		errors.Is(err, settings.ErrUnknownKey),
		errors.Is(err, media.ErrEmptyMedia),
		errors.Is(err, media.ErrUnsupportedMedia),
		errors.Is(err, media.ErrTooLarge),
		errors.Is(err, greenapi.ErrMissingCredentials):
		return http.StatusBadRequest
	case greenapi.IsRemote(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
