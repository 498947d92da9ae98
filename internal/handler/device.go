package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/oggyb/greenapi-notifier/internal/logging"
	"github.com/oggyb/greenapi-notifier/internal/request"
	"github.com/oggyb/greenapi-notifier/internal/response"
	"github.com/oggyb/greenapi-notifier/internal/service"
)

// DeviceHandler exposes the settings and notifications of one device.
type DeviceHandler struct {
	provider *service.Provider
	log      zerolog.Logger
}

// NewDeviceHandler constructs a DeviceHandler.
func NewDeviceHandler(provider *service.Provider) *DeviceHandler {
	return &DeviceHandler{provider: provider, log: logging.Component("http.device")}
}

func (h *DeviceHandler) notifier(w http.ResponseWriter, r *http.Request) (*service.Notifier, bool) {
	n, err := h.provider.Device(r.Context(), r.PathValue("nativeId"))
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return nil, false
	}
	return n, true
}

// GetSettings godoc
// @Summary     Device settings
// @Description Returns the settings form of one device.
// @Tags        devices
// @Produce     json
// @Param       nativeId path string true "Device native id"
// @Success     200 {object} response.SettingsResponse
// @Failure     404 {object} response.ErrorResponse
// @Router      /devices/{nativeId}/settings [get]
func (h *DeviceHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	n, ok := h.notifier(w, r)
	if !ok {
		return
	}

	form, err := n.GetSettings(r.Context())
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, form)
}

// PutSetting godoc
// @Summary     Change a device setting
// @Description Stores one device setting. "loadContacts" reloads the target choices.
// @Tags        devices
// @Accept      json
// @Produce     json
// @Param       nativeId path string                    true  "Device native id"
// @Param       key      path string                    true  "Setting key"
// @Param       request  body request.PutSettingRequest false "Setting value"
// @Success     200 {object} response.SettingsResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     404 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /devices/{nativeId}/settings/{key} [put]
func (h *DeviceHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	n, ok := h.notifier(w, r)
	if !ok {
		return
	}
	req, ok := decodeSetting(w, r)
	if !ok {
		return
	}

	if err := n.PutSetting(r.Context(), r.PathValue("key"), req.Value); err != nil {
		h.log.Warn().Err(err).Str("native_id", n.NativeID()).Str("key", r.PathValue("key")).Msg("put setting failed")
		respondWithForm(w, r, err, n.GetSettings)
		return
	}

	form, err := n.GetSettings(r.Context())
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, form)
}

// SendNotification godoc
// @Summary     Send a notification
// @Description Sends a text message, or a file by URL when media is given, to the device target.
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       nativeId path string                      true "Device native id"
// @Param       request  body request.NotificationRequest true "Notification"
// @Success     200 {object} response.NotificationResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     404 {object} response.ErrorResponse
// @Failure     502 {object} response.NotificationResponse
// @Router      /devices/{nativeId}/notifications [post]
func (h *DeviceHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	n, ok := h.notifier(w, r)
	if !ok {
		return
	}

	var req request.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := n.SendNotification(r.Context(), req.Title, req.Options(), req.Attachment(), req.IconMedia())
	if err != nil {
		if rec != nil {
			response.RespondErrorWithData(w, statusFor(err), err.Error(), response.FromNotification(rec))
			return
		}
		response.RespondError(w, statusFor(err), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.FromNotification(rec))
}

// ListNotifications godoc
// @Summary     List notifications
// @Description Returns a paginated send history of one device, newest first.
// @Tags        notifications
// @Produce     json
// @Param       nativeId path  string true  "Device native id"
// @Param       page     query int    false "Page number"         default(1)
// @Param       limit    query int    false "Page size (max 100)" default(20)
// @Success     200 {object} response.NotificationsResponse
// @Failure     404 {object} response.ErrorResponse
// @Router      /devices/{nativeId}/notifications [get]
func (h *DeviceHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	n, ok := h.notifier(w, r)
	if !ok {
		return
	}

	page := 1
	limit := 20

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	items, total, err := n.Notifications(r.Context(), page, limit)
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.NotificationsPayload{
		Items: response.FromNotifications(items),
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
