package handlers

import (
	"net/http"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type CreateCapsuleRequest struct {
	Content  string    `json:"content"`
	UnlockAt time.Time `json:"unlock_at"`
}

// GetCapsules lists every capsule in creation order; locked ones without content.
func (a *API) GetCapsules(w http.ResponseWriter, r *http.Request) {
	views, err := a.repos.Capsules.Views(r.Context())
	if err != nil {
		readFallback(w, models.FeatureCapsules, err, []models.CapsuleView{})
		return
	}
	sendOK(w, views)
}

func (a *API) CreateCapsule(w http.ResponseWriter, r *http.Request) {
	var req CreateCapsuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := a.repos.Capsules.Create(r.Context(), req.Content, req.UnlockAt)
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventCreated, models.FeatureCapsules, c.ID)
	v, err := a.repos.Capsules.View(r.Context(), c.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	sendCreated(w, "Capsule sealed", v)
}

func (a *API) DeleteCapsule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.repos.Capsules.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventDeleted, models.FeatureCapsules, id)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Capsule deleted"})
}
