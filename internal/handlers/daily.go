package handlers

import (
	"net/http"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type RecordAnswerRequest struct {
	Date   string `json:"date,omitempty"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
	Mood   string `json:"mood,omitempty"`
}

type DailyListResponse struct {
	Answers []models.DailyAnswer `json:"answers"`
	Streak  int                  `json:"streak"`
}

// GetDailyAnswers lists check-ins newest first together with the current streak.
func (a *API) GetDailyAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := a.repos.DailyAnswers.List(r.Context())
	if err != nil {
		readFallback(w, models.FeatureDaily, err, DailyListResponse{Answers: []models.DailyAnswer{}})
		return
	}
	dates := make([]string, 0, len(answers))
	for _, ans := range answers {
		dates = append(dates, ans.Date)
	}
	sendOK(w, DailyListResponse{
		Answers: answers,
		Streak:  services.Streak(a.repos.DailyAnswers.Today(), dates),
	})
}

func (a *API) GetDailyAnswer(w http.ResponseWriter, r *http.Request) {
	ans, err := a.repos.DailyAnswers.Get(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	sendOK(w, ans)
}

func (a *API) RecordDailyAnswer(w http.ResponseWriter, r *http.Request) {
	var req RecordAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ans, err := a.repos.DailyAnswers.Record(r.Context(), req.Date, req.Prompt, req.Answer, req.Mood)
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventUpdated, models.FeatureDaily, ans.Date)
	sendCreated(w, "Answer saved", ans)
}

func (a *API) DeleteDailyAnswer(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := a.repos.DailyAnswers.Delete(r.Context(), date); err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventDeleted, models.FeatureDaily, date)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Answer deleted"})
}
