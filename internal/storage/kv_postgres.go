package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PostgresStore keeps values in the kv_records JSONB table created by
// database.ConnectPostgres.
type PostgresStore struct {
	db     *sql.DB
	prefix string
	quota  int64
}

func NewPostgresStore(db *sql.DB, prefix string, quota int64) *PostgresStore {
	return &PostgresStore{db: db, prefix: prefix, quota: quota}
}

func (s *PostgresStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_records WHERE key = $1`, s.prefix+key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("postgres get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv_records (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, s.prefix+key, string(data))
	if err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) StorageInfo(ctx context.Context) (StorageInfo, error) {
	var used int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(octet_length(key) + octet_length(value::text)), 0)
		FROM kv_records
		WHERE key LIKE $1
	`, likePrefix(s.prefix)).Scan(&used)
	if err != nil {
		return StorageInfo{}, fmt.Errorf("postgres usage: %w", err)
	}
	return NewStorageInfo(used, s.quota), nil
}

func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
