package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/oggyb/greenapi-notifier/internal/request"
	"github.com/oggyb/greenapi-notifier/internal/response"
	"github.com/oggyb/greenapi-notifier/internal/settings"
)

// decodeSetting reads an optional PutSettingRequest body.
func decodeSetting(w http.ResponseWriter, r *http.Request) (request.PutSettingRequest, bool) {
	var req request.PutSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	return req, true
}

// respondWithForm reports a failed setting change together with the
// refreshed form, so the error field reaches the client.
func respondWithForm(w http.ResponseWriter, r *http.Request, err error, form func(context.Context) ([]settings.Setting, error)) {
	current, ferr := form(r.Context())
	if ferr != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}
	response.RespondErrorWithData(w, statusFor(err), err.Error(), current)
}
