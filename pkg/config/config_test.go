package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"SERVER_PORT", "ENVIRONMENT", "LOG_LEVEL", "FIREBASE_PROJECT_ID",
	"STORE_BACKEND", "SINGLE_WISHLIST_PER_USER", "DEEP_LINK_SCHEME",
	"QR_CODE_SIZE", "QR_CODE_MARGIN", "QR_STORAGE_BUCKET", "CONTRIBUTE_RATE_LIMIT",
	"TRUSTED_PROXIES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "firestore", cfg.StoreBackend)
	assert.False(t, cfg.SingleWishlistPerUser)
	assert.Equal(t, "wishlist", cfg.DeepLinkScheme)
	assert.Equal(t, 256, cfg.QRCodeSize)
	assert.Equal(t, 2, cfg.QRCodeMargin)
	assert.Equal(t, "", cfg.QRStorageBucket)
	assert.Equal(t, 30, cfg.ContributeRateLimit)
	assert.Empty(t, cfg.TrustedProxies)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("SINGLE_WISHLIST_PER_USER", "true")
	t.Setenv("QR_CODE_SIZE", "512")
	t.Setenv("CONTRIBUTE_RATE_LIMIT", "not-a-number")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,130.211.0.0/22")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.True(t, cfg.SingleWishlistPerUser)
	assert.Equal(t, 512, cfg.QRCodeSize)
	assert.Equal(t, 30, cfg.ContributeRateLimit)
	assert.Equal(t, []string{"10.0.0.0/8", "130.211.0.0/22"}, cfg.TrustedProxies)
}
