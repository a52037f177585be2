package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
)

// GetStats returns the dashboard snapshot. It always answers 200; features
// that could not be read are listed in the snapshot's warnings.
func (a *API) GetStats(w http.ResponseWriter, r *http.Request) {
	sendOK(w, a.stats.Snapshot(r.Context()))
}

// GetRecap returns the recap for ?year=YYYY, defaulting to the current year.
func (a *API) GetRecap(w http.ResponseWriter, r *http.Request) {
	year := a.repos.DailyAnswers.Today().Year()
	if s := strings.TrimSpace(r.URL.Query().Get("year")); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1970 || y > 9999 {
			fail(w, http.StatusBadRequest, "year must be a four-digit year")
			return
		}
		year = y
	}
	sendOK(w, a.stats.Recap(r.Context(), year))
}

func (a *API) GetStorage(w http.ResponseWriter, r *http.Request) {
	info, err := a.repos.Store.StorageInfo(r.Context())
	if err != nil {
		log.Printf("[HTTP] storage info unavailable: %v", err)
		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Warning: models.FeatureStorage + " could not be measured",
			Data:    storage.StorageInfo{},
		})
		return
	}
	sendOK(w, info)
}
