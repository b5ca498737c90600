package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL = "https://api.pcexpress.ca"
	defaultDBPath  = "orders.sqlite"
	defaultStoreID = 1560
)

// Config holds everything the downloader needs from the environment.
type Config struct {
	AuthToken string
	APIKey    string
	BaseURL   string
	DBPath    string
	StoreID   int
	HTTPAddr  string
}

// Load reads configuration from a .env file (if present) and the process
// environment. AUTH_TOKEN and API_KEY are required; everything else has a
// default. A missing secret is reported before any network or storage
// activity happens.
func Load() (*Config, error) {
	// .env is optional; real environment variables always win.
	_ = godotenv.Load()

	authToken, err := requireEnv("AUTH_TOKEN")
	if err != nil {
		return nil, err
	}
	apiKey, err := requireEnv("API_KEY")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AuthToken: authToken,
		APIKey:    apiKey,
		BaseURL:   defaultBaseURL,
		DBPath:    defaultDBPath,
		StoreID:   defaultStoreID,
		HTTPAddr:  os.Getenv("HTTP_ADDR"),
	}

	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if storeID := os.Getenv("STORE_ID"); storeID != "" {
		id, err := strconv.Atoi(storeID)
		if err != nil {
			return nil, fmt.Errorf("STORE_ID must be an integer, got %q", storeID)
		}
		cfg.StoreID = id
	}

	return cfg, nil
}

func requireEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("environment variable %s is missing", name)
	}
	return value, nil
}
