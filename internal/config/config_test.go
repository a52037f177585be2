package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, BackendMemory, cfg.BlobBackend)
	assert.Equal(t, int64(5242880), cfg.StorageQuotaBytes)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.NotNil(t, cfg.Location())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOriginsDeduplicated(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://A.example ,,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "indexeddb")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
}

func TestLoadCloudinaryNeedsCredentials(t *testing.T) {
	t.Setenv("BLOB_BACKEND", "cloudinary")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBothEncryptionSettings(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "a2V5")
	t.Setenv("ENCRYPTION_PASSPHRASE", "hunter2")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadTimeZone(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("ENV", " Production ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Location().String())
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.UsesMongo())
}

func TestLoadRejectsOverlappingRateLimitPrefix(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("KEY_PREFIX", "keepsake:")
	t.Setenv("RATE_LIMIT_PREFIX", "keepsake:ratelimit:")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_PREFIX")

	t.Setenv("RATE_LIMIT_PREFIX", "ratelimit:")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ratelimit:", cfg.RateLimitPrefix)
}
