package handler

import (
	"context"
	"net/http"

	"github.com/oggyb/greenapi-notifier/internal/media"
	"github.com/oggyb/greenapi-notifier/internal/response"
)

// MediaStore loads media objects stored by the resolver.
type MediaStore interface {
	Load(ctx context.Context, id string) (*media.Media, error)
}

// MediaHandler serves media objects under their public URL.
type MediaHandler struct {
	store MediaStore
}

// NewMediaHandler constructs a MediaHandler.
func NewMediaHandler(store MediaStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Get godoc
// @Summary     Fetch a media object
// @Description Serves a media object uploaded with a notification until it expires.
// @Tags        media
// @Produce     octet-stream
// @Param       id path string true "Media id"
// @Success     200 {file} binary
// @Failure     404 {object} response.ErrorResponse
// @Router      /media/{id} [get]
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		response.RespondError(w, statusFor(err), err.Error())
		return
	}
	response.RespondBytes(w, m.MimeType, m.Data)
}
