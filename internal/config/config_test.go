package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("SHOP_TEST_PORT", "9090")
	assert.Equal(t, 9090, EnvIntDefault("SHOP_TEST_PORT", 1))

	t.Setenv("SHOP_TEST_PORT", "nope")
	assert.Equal(t, 1, EnvIntDefault("SHOP_TEST_PORT", 1))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PUBLIC_URL", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("IMAGE_STORE", "")

	cfg := Load()
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "disk", cfg.ImageStore)
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestValidate(t *testing.T) {
	cfg := Config{DBDriver: "postgres", ImageStore: "disk"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.DatabaseURL = "postgres://localhost/shop"
	cfg.JWTSecret = []byte("secret")
	require.NoError(t, cfg.Validate())

	cfg.ImageStore = "s3"
	require.ErrorContains(t, cfg.Validate(), "S3_BUCKET")

	cfg.ImageStore = "ftp"
	require.ErrorContains(t, cfg.Validate(), "IMAGE_STORE")
}
