package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("COMMENTS_REQUIRE_DOCUMENT", "1")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, StorageDriverS3, cfg.Storage.Driver)
	assert.True(t, cfg.CommentsRequireDocument)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "MAX_UPLOAD_BYTES", "STORAGE_BUCKET", "STORAGE_DRIVER", "FETCH_TIMEOUT_SEC"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 16*1024*1024, cfg.MaxUploadBytes)
	assert.Equal(t, "documents", cfg.Storage.Bucket)
	assert.Equal(t, StorageDriverMinIO, cfg.Storage.Driver)
	assert.Equal(t, 30, cfg.FetchTimeoutSec)
	assert.False(t, cfg.CommentsRequireDocument)
}

func TestLoad_MemoryPublicBaseURL(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("STORAGE_PUBLIC_BASE_URL", "")
	t.Setenv("PORT", "9090")

	cfg := Load()

	assert.Equal(t, "http://localhost:9090/blobs", cfg.Storage.PublicBaseURL)
}

func validConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Host: "db", Port: "5432", User: "app", Name: "docs"},
		Storage: StorageConfig{
			Driver:    StorageDriverMinIO,
			Endpoint:  "localhost:9000",
			AccessKey: "ak",
			SecretKey: "sk",
			Bucket:    "documents",
		},
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.SecretKey = ""

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORAGE_SECRET_KEY")
	})

	t.Run("memory driver needs no credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.Driver = StorageDriverMemory
		cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Endpoint = "", "", ""

		assert.NoError(t, cfg.Validate())
	})

	t.Run("collects every problem", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Host = ""
		cfg.Storage.Driver = "ftp"
		cfg.MaxUploadBytes = 0

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_HOST")
		assert.Contains(t, err.Error(), `unknown STORAGE_DRIVER "ftp"`)
		assert.Contains(t, err.Error(), "MAX_UPLOAD_BYTES")
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
