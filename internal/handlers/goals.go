package handlers

import (
	"net/http"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type CreateGoalRequest struct {
	Title string `json:"title"`
}

func (a *API) GetGoals(w http.ResponseWriter, r *http.Request) {
	items, err := a.repos.Goals.List(r.Context())
	if err != nil {
		readFallback(w, models.FeatureGoals, err, []models.Goal{})
		return
	}
	sendOK(w, items)
}

func (a *API) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req CreateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	g, err := a.repos.Goals.Create(r.Context(), req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventCreated, models.FeatureGoals, g.ID)
	sendCreated(w, "Goal added", g)
}

// UpdateGoal applies a partial update; omitted fields are left alone.
func (a *API) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var patch models.GoalPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	g, err := a.repos.Goals.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventUpdated, models.FeatureGoals, g.ID)
	sendOK(w, g)
}

func (a *API) ToggleGoal(w http.ResponseWriter, r *http.Request) {
	g, err := a.repos.Goals.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventUpdated, models.FeatureGoals, g.ID)
	sendOK(w, g)
}

func (a *API) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.repos.Goals.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventDeleted, models.FeatureGoals, id)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Goal deleted"})
}
