package handlers

import (
	"net/http"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
	"github.com/go-chi/chi/v5"
)

func (a *API) GetPhotos(w http.ResponseWriter, r *http.Request) {
	recs, err := a.repos.Photos.List(r.Context())
	if err != nil {
		readFallback(w, models.FeaturePhotos, err, []storage.BlobRecord{})
		return
	}
	sendOK(w, recs)
}

// UploadPhoto accepts a multipart form with a "photo" file field.
func (a *API) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := readUpload(r, "photo", services.MaxPhotoBytes)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := a.repos.Photos.Upload(r.Context(), contentType, data)
	if err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventCreated, models.FeaturePhotos, rec.ID)
	sendCreated(w, "Photo uploaded", rec)
}

func (a *API) GetPhoto(w http.ResponseWriter, r *http.Request) {
	rec, data, err := a.repos.Photos.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	serveBlob(w, rec, data)
}

func (a *API) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.repos.Photos.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	a.publish(services.EventDeleted, models.FeaturePhotos, id)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Photo deleted"})
}
