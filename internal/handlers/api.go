package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/gorilla/websocket"
)

// API holds the dependencies every handler needs. One instance serves the
// whole router.
type API struct {
	repos    *services.Repositories
	stats    *services.StatsService
	hub      *services.EventHub
	origins  []string
	upgrader websocket.Upgrader
}

func NewAPI(repos *services.Repositories, stats *services.StatsService, hub *services.EventHub, allowedOrigins []string) *API {
	a := &API{repos: repos, stats: stats, hub: hub, origins: allowedOrigins}
	a.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     a.checkOrigin,
	}
	return a
}

// Response is the envelope for every JSON reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	// Warning is set when a read fell back to an empty result.
	Warning string `json:"warning,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[HTTP] failed to encode response: %v", err)
	}
}

func sendOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func sendCreated(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		fail(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrValidation):
		fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		fail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrStorageUnavailable):
		log.Printf("[HTTP] storage unavailable: %v", err)
		fail(w, http.StatusServiceUnavailable, "Storage is unavailable, please try again")
	default:
		log.Printf("[HTTP] unexpected error: %v", err)
		fail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// readFallback answers a failed list read with an empty payload and a
// warning. Other errors go through writeError.
func readFallback(w http.ResponseWriter, feature string, err error, empty any) {
	if !errors.Is(err, services.ErrStorageUnavailable) {
		writeError(w, err)
		return
	}
	log.Printf("[HTTP] %s unavailable, returning empty list: %v", feature, err)
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Warning: feature + " could not be loaded",
		Data:    empty,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (a *API) publish(eventType, feature, id string) {
	if a.hub == nil {
		return
	}
	a.hub.Publish(services.ChangeEvent{Type: eventType, Feature: feature, ID: id, Timestamp: time.Now().UTC()})
}

// checkOrigin admits WebSocket upgrades from the configured frontend
// origins. Requests without an Origin header are not from a browser.
func (a *API) checkOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	for _, o := range a.origins {
		if o == "*" || strings.EqualFold(strings.TrimSpace(o), origin) {
			return true
		}
	}
	log.Printf("[WS] rejected origin %q", origin)
	return false
}

// Health reports liveness.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	sendOK(w, map[string]string{"status": "ok"})
}
