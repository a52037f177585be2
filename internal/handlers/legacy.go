package handlers

import (
	"net/http"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type SealLegacyRequest struct {
	Text  string `json:"text"`
	Years int    `json:"years"`
}

// LegacyListResponse tells the client whether text is encrypted at rest.
// The unlock date is enforced only when reading through this API.
type LegacyListResponse struct {
	Messages        []models.LegacyMessageView `json:"messages"`
	EncryptedAtRest bool                       `json:"encrypted_at_rest"`
}

func (a *API) GetLegacyMessages(w http.ResponseWriter, r *http.Request) {
	resp := LegacyListResponse{EncryptedAtRest: a.repos.Legacy.EncryptsAtRest()}
	views, err := a.repos.Legacy.Views(r.Context())
	if err != nil {
		resp.Messages = []models.LegacyMessageView{}
		readFallback(w, models.FeatureLegacy, err, resp)
		return
	}
	resp.Messages = views
	sendOK(w, resp)
}

func (a *API) GetLegacyMessage(w http.ResponseWriter, r *http.Request) {
	v, err := a.repos.Legacy.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	sendOK(w, v)
}

func (a *API) SealLegacyMessage(w http.ResponseWriter, r *http.Request) {
	var req SealLegacyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	msg, err := a.repos.Legacy.Seal(r.Context(), req.Text, req.Years)
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventCreated, models.FeatureLegacy, msg.ID)
	v, err := a.repos.Legacy.View(r.Context(), msg.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	sendCreated(w, "Message sealed", v)
}

func (a *API) DeleteLegacyMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.repos.Legacy.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventDeleted, models.FeatureLegacy, id)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Message deleted"})
}
