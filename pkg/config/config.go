package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	// StoreBackend selects the document store: "firestore" or "memory".
	StoreBackend string
	// SingleWishlistPerUser links each user to at most one active wishlist.
	SingleWishlistPerUser bool

	DeepLinkScheme  string
	QRCodeSize      int
	QRCodeMargin    int
	QRStorageBucket string

	ContributeRateLimit int
	// TrustedProxies lists CIDRs whose X-Forwarded-For is believed. Empty
	// means the peer address is the client.
	TrustedProxies []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		StoreBackend:          strings.ToLower(getEnv("STORE_BACKEND", "firestore")),
		SingleWishlistPerUser: getEnvAsBool("SINGLE_WISHLIST_PER_USER", false),

		DeepLinkScheme:  getEnv("DEEP_LINK_SCHEME", "wishlist"),
		QRCodeSize:      getEnvAsInt("QR_CODE_SIZE", 256),
		QRCodeMargin:    getEnvAsInt("QR_CODE_MARGIN", 2),
		QRStorageBucket: getEnv("QR_STORAGE_BUCKET", ""),

		ContributeRateLimit: getEnvAsInt("CONTRIBUTE_RATE_LIMIT", 30),
		TrustedProxies:      getEnvAsList("TRUSTED_PROXIES"),
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var values []string
	for _, value := range strings.Split(os.Getenv(key), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}
