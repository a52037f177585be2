package handlers

import (
	"net/http"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type CreateMilestoneRequest struct {
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

func (a *API) GetJourney(w http.ResponseWriter, r *http.Request) {
	items, err := a.repos.Journey.List(r.Context())
	if err != nil {
		readFallback(w, models.FeatureJourney, err, []models.JourneyMilestone{})
		return
	}
	sendOK(w, items)
}

func (a *API) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	var req CreateMilestoneRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := a.repos.Journey.Create(r.Context(), req.Description, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventCreated, models.FeatureJourney, m.ID)
	sendCreated(w, "Milestone added", m)
}

func (a *API) UpdateMilestone(w http.ResponseWriter, r *http.Request) {
	var patch models.JourneyPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	m, err := a.repos.Journey.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventUpdated, models.FeatureJourney, m.ID)
	sendOK(w, m)
}

func (a *API) DeleteMilestone(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.repos.Journey.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventDeleted, models.FeatureJourney, id)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Milestone deleted"})
}
