package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AnshRaj112/keepsake-backend/internal/storage"
	"github.com/google/uuid"
)

// MaxPhotoBytes bounds a single photo upload.
const MaxPhotoBytes = 10 << 20

// PhotoLibrary is a thin layer over the photo blob store; photos have no
// metadata beyond the blob record, so there is no list in the key-value store.
type PhotoLibrary struct {
	blobs storage.BlobStore
}

func NewPhotoLibrary(blobs storage.BlobStore) *PhotoLibrary {
	return &PhotoLibrary{blobs: blobs}
}

func (p *PhotoLibrary) List(ctx context.Context) ([]storage.BlobRecord, error) {
	recs, err := p.blobs.ListAll(ctx)
	if err != nil {
		return nil, unavailable("read", "photos", err)
	}
	return recs, nil
}

func (p *PhotoLibrary) Upload(ctx context.Context, contentType string, data []byte) (storage.BlobRecord, error) {
	if len(data) == 0 {
		return storage.BlobRecord{}, invalid("photo", "is required")
	}
	if len(data) > MaxPhotoBytes {
		return storage.BlobRecord{}, invalid("photo", "is too large")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return storage.BlobRecord{}, invalid("photo", "must be an image")
	}
	rec, err := p.blobs.Put(ctx, uuid.NewString(), contentType, data)
	if err != nil {
		return storage.BlobRecord{}, unavailable("write", "photos", err)
	}
	return rec, nil
}

func (p *PhotoLibrary) Open(ctx context.Context, id string) (storage.BlobRecord, []byte, error) {
	rec, data, err := p.blobs.Open(ctx, id)
	if errors.Is(err, storage.ErrBlobNotFound) {
		return storage.BlobRecord{}, nil, ErrNotFound
	}
	if err != nil {
		return storage.BlobRecord{}, nil, unavailable("read", "photos", err)
	}
	return rec, data, nil
}

func (p *PhotoLibrary) Delete(ctx context.Context, id string) error {
	if err := p.blobs.Delete(ctx, id); err != nil {
		return unavailable("write", "photos", err)
	}
	return nil
}

func (p *PhotoLibrary) Count(ctx context.Context) (int, error) {
	recs, err := p.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}
