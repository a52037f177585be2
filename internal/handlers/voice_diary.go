package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

func (a *API) GetVoiceEntries(w http.ResponseWriter, r *http.Request) {
	items, err := a.repos.VoiceDiary.List(r.Context())
	if err != nil {
		readFallback(w, models.FeatureVoiceDiary, err, []models.VoiceDiaryEntry{})
		return
	}
	sendOK(w, items)
}

func (a *API) GetVoiceEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := a.repos.VoiceDiary.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	sendOK(w, entry)
}

// RecordVoiceEntry accepts a multipart form with an "audio" file plus
// optional "title" and "duration_seconds" fields.
func (a *API) RecordVoiceEntry(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := readUpload(r, "audio", services.MaxAudioBytes)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	duration := 0
	if s := strings.TrimSpace(r.FormValue("duration_seconds")); s != "" {
		duration, err = strconv.Atoi(s)
		if err != nil {
			fail(w, http.StatusBadRequest, "duration_seconds must be a whole number")
			return
		}
	}
	entry, err := a.repos.VoiceDiary.Record(r.Context(), contentType, data, r.FormValue("title"), duration)
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventCreated, models.FeatureVoiceDiary, entry.ID)
	sendCreated(w, "Recording saved", entry)
}

func (a *API) GetVoiceAudio(w http.ResponseWriter, r *http.Request) {
	rec, data, err := a.repos.VoiceDiary.OpenAudio(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	serveBlob(w, rec, data)
}

func (a *API) DeleteVoiceEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.repos.VoiceDiary.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventDeleted, models.FeatureVoiceDiary, id)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Recording deleted"})
}
