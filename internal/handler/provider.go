package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/oggyb/greenapi-notifier/internal/logging"
	"github.com/oggyb/greenapi-notifier/internal/request"
	"github.com/oggyb/greenapi-notifier/internal/response"
	"github.com/oggyb/greenapi-notifier/internal/service"
)

// ProviderHandler exposes the plugin settings and device provisioning.
type ProviderHandler struct {
	provider *service.Provider
	log      zerolog.Logger
}

// NewProviderHandler constructs a ProviderHandler.
func NewProviderHandler(provider *service.Provider) *ProviderHandler {
	return &ProviderHandler{provider: provider, log: logging.Component("http.provider")}
}

// GetSettings godoc
// @Summary     Plugin settings
// @Description Returns the plugin-level settings form.
// @Tags        provider
// @Produce     json
// @Success     200 {object} response.SettingsResponse
// @Failure     500 {object} response.ErrorResponse
// @Router      /provider/settings [get]
func (h *ProviderHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	form, err := h.provider.GetSettings(r.Context())
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, form)
}

// PutSetting godoc
// @Summary     Change a plugin setting
// @Description Stores one plugin setting. "loadContacts" fetches the contact list.
// @Tags        provider
// @Accept      json
// @Produce     json
// @Param       key     path string                    true  "Setting key"
// @Param       request body request.PutSettingRequest false "Setting value"
// @Success     200 {object} response.SettingsResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /provider/settings/{key} [put]
func (h *ProviderHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSetting(w, r)
	if !ok {
		return
	}

	if err := h.provider.PutSetting(r.Context(), r.PathValue("key"), req.Value); err != nil {
		h.log.Warn().Err(err).Str("key", r.PathValue("key")).Msg("put setting failed")
		respondWithForm(w, r, err, h.provider.GetSettings)
		return
	}

	form, err := h.provider.GetSettings(r.Context())
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, form)
}

// GetCreateDeviceSettings godoc
// @Summary     Device creation form
// @Description Returns the device creation form with the target choices loaded live.
// @Tags        provider
// @Produce     json
// @Success     200 {object} response.SettingsResponse
// @Failure     500 {object} response.ErrorResponse
// @Router      /provider/create-settings [get]
func (h *ProviderHandler) GetCreateDeviceSettings(w http.ResponseWriter, r *http.Request) {
	form, err := h.provider.GetCreateDeviceSettings(r.Context())
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, form)
}

// CreateDevice godoc
// @Summary     Create a notifier device
// @Description Registers a notifier for the chosen target and copies the plugin credentials into it.
// @Tags        devices
// @Accept      json
// @Produce     json
// @Param       request body request.CreateDeviceRequest true "Creation form values"
// @Success     201 {object} response.CreatedDeviceResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     500 {object} response.ErrorResponse
// @Router      /devices [post]
func (h *ProviderHandler) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	nativeID, err := h.provider.CreateDevice(r.Context(), req.Settings, req.NativeID)
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, response.CreatedDevicePayload{NativeID: nativeID})
}

// ListDevices godoc
// @Summary     List devices
// @Description Returns the registered notifier devices.
// @Tags        devices
// @Produce     json
// @Success     200 {object} response.DevicesResponse
// @Failure     500 {object} response.ErrorResponse
// @Router      /devices [get]
func (h *ProviderHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.provider.Devices(r.Context())
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, response.FromManifests(devices))
}

// ReleaseDevice godoc
// @Summary     Remove a device
// @Description Removes the device registration, its settings and its send history.
// @Tags        devices
// @Produce     json
// @Param       nativeId path string true "Device native id"
// @Success     200 {object} response.MessageResponse
// @Failure     404 {object} response.ErrorResponse
// @Router      /devices/{nativeId} [delete]
func (h *ProviderHandler) ReleaseDevice(w http.ResponseWriter, r *http.Request) {
	nativeID := r.PathValue("nativeId")
	if err := h.provider.ReleaseDevice(r.Context(), nativeID); err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, response.MessagePayload{Message: "device " + nativeID + " removed"})
}
