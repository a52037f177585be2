package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/AnshRaj112/keepsake-backend/internal/storage"
)

// readUpload pulls one file field out of a multipart form, capped at limit
// bytes. The content type falls back to sniffing when the client omits it.
func readUpload(r *http.Request, field string, limit int64) ([]byte, string, error) {
	if err := r.ParseMultipartForm(limit); err != nil {
		return nil, "", fmt.Errorf("failed to parse form: %w", err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("no %s provided", field)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", field, err)
	}
	return data, uploadContentType(header, data), nil
}

func uploadContentType(header *multipart.FileHeader, data []byte) string {
	ct := strings.TrimSpace(header.Header.Get("Content-Type"))
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func serveBlob(w http.ResponseWriter, rec storage.BlobRecord, data []byte) {
	ct := rec.ContentType
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
