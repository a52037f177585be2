package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresBlobStore keeps media in the blobs table, one namespace per store.
type PostgresBlobStore struct {
	db        *sql.DB
	namespace string
}

func NewPostgresBlobStore(db *sql.DB, namespace string) *PostgresBlobStore {
	return &PostgresBlobStore{db: db, namespace: namespace}
}

func (s *PostgresBlobStore) Put(ctx context.Context, id, contentType string, data []byte) (BlobRecord, error) {
	rec := BlobRecord{
		ID:          id,
		Namespace:   s.namespace,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (namespace, id, content_type, size, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (namespace, id) DO UPDATE
		SET content_type = EXCLUDED.content_type, size = EXCLUDED.size, data = EXCLUDED.data
	`, rec.Namespace, rec.ID, rec.ContentType, rec.Size, data, rec.CreatedAt)
	if err != nil {
		return BlobRecord{}, fmt.Errorf("postgres put blob %s: %w", id, err)
	}
	return rec, nil
}

func (s *PostgresBlobStore) Open(ctx context.Context, id string) (BlobRecord, []byte, error) {
	rec := BlobRecord{ID: id, Namespace: s.namespace}
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT content_type, size, data, created_at FROM blobs
		WHERE namespace = $1 AND id = $2
	`, s.namespace, id).Scan(&rec.ContentType, &rec.Size, &data, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return BlobRecord{}, nil, ErrBlobNotFound
	}
	if err != nil {
		return BlobRecord{}, nil, fmt.Errorf("postgres open blob %s: %w", id, err)
	}
	return rec, data, nil
}

func (s *PostgresBlobStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE namespace = $1 AND id = $2`, s.namespace, id)
	if err != nil {
		return fmt.Errorf("postgres delete blob %s: %w", id, err)
	}
	return nil
}

func (s *PostgresBlobStore) ListAll(ctx context.Context) ([]BlobRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content_type, size, created_at FROM blobs
		WHERE namespace = $1
		ORDER BY created_at, id
	`, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("postgres list blobs: %w", err)
	}
	defer rows.Close()

	out := make([]BlobRecord, 0)
	for rows.Next() {
		rec := BlobRecord{Namespace: s.namespace}
		if err := rows.Scan(&rec.ID, &rec.ContentType, &rec.Size, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres scan blob: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
