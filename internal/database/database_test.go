package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoDatabaseName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/keepsake", "keepsake"},
		{"mongodb://localhost:27017/couple?retryWrites=true", "couple"},
		{"mongodb+srv://user:pw@cluster.example.net/?retryWrites=true", "keepsake"},
		{"mongodb://localhost:27017", "keepsake"},
		{"", "keepsake"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mongoDatabaseName(tt.uri), tt.uri)
	}
}

type recordingExec struct {
	queries []string
	failAt  int
}

func (r *recordingExec) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	r.queries = append(r.queries, query)
	if r.failAt > 0 && len(r.queries) == r.failAt {
		return nil, errors.New("permission denied")
	}
	return nil, nil
}

func TestInitPostgresTablesRunsSchemaOnce(t *testing.T) {
	rec := &recordingExec{}
	require.NoError(t, initPostgresTables(context.Background(), rec))
	assert.Equal(t, postgresSchema, rec.queries)

	for _, q := range postgresSchema {
		assert.Contains(t, strings.ToUpper(q), "IF NOT EXISTS", q)
	}
}

func TestInitPostgresTablesStopsOnError(t *testing.T) {
	rec := &recordingExec{failAt: 1}
	err := initPostgresTables(context.Background(), rec)
	require.Error(t, err)
	assert.Len(t, rec.queries, 1)
}
