// Package config loads and validates application configuration from
// environment variables. Missing or malformed values are collected and
// reported together so a misconfigured deployment fails fast with one
// complete message.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabasePools holds configuration for the two connection pools: the main
// application pool and a smaller pool reserved for the catalog sync worker.
type DatabasePools struct {
	AppPool  *PoolConfig
	SyncPool *PoolConfig
}

// PoolConfig represents configuration for a single database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration. JWTSecret is read
// once at startup and passed explicitly to the token codec and middleware;
// it is never exposed as package-level state.
type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
	BcryptCost    int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// CatalogConfig holds settings for the external game catalog (RAWG) API and
// the background sync worker.
type CatalogConfig struct {
	BaseURL      string
	APIKey       string
	SyncEnabled  bool
	SyncInterval time.Duration
	SyncPageSize int
}

// AppConfig is the top-level configuration structure.
type AppConfig struct {
	DBPools *DatabasePools
	Auth    *AuthConfig
	Server  *ServerConfig
	Catalog *CatalogConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvBool(key string, defaultValue bool, errs *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// parseAndValidatePoolSize converts a pool size string to an int clamped to
// [2, 100]. Errors are collected rather than returned.
func parseAndValidatePoolSize(valueStr string, varName string, errs *[]string) int {
	if valueStr == "" {
		return 2
	}
	size, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid pool size for %s: expected integer, got '%s': %v", varName, valueStr, err))
		return 2
	}
	if size < 2 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 2, clamping to 2", varName, size))
		size = 2
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		size = 100
	}
	return size
}

// LoadConfig reads all configuration from the environment. It returns a
// single aggregated error listing every problem found.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)

	appPoolSize := parseAndValidatePoolSize(getOptionalEnv("DB_APP_POOL_SIZE", "10"), "DB_APP_POOL_SIZE", &errs)
	syncPoolSize := parseAndValidatePoolSize(getOptionalEnv("DB_SYNC_POOL_SIZE", "2"), "DB_SYNC_POOL_SIZE", &errs)

	dbPools := &DatabasePools{
		AppPool: &PoolConfig{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			MaxSize:  appPoolSize,
		},
		SyncPool: &PoolConfig{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			MaxSize:  syncPoolSize,
		},
	}

	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	// Tokens issued by the credential service are valid for at least one hour.
	tokenDuration := getOptionalEnvDuration("JWT_TOKEN_DURATION", time.Hour, &errs)
	if tokenDuration < time.Hour {
		errs = append(errs, fmt.Sprintf("JWT_TOKEN_DURATION (%s) is below the minimum of 1h", tokenDuration))
	}
	bcryptCost := getOptionalEnvInt("BCRYPT_COST", 10, &errs)

	authConfig := &AuthConfig{
		JWTSecret:     jwtSecret,
		TokenDuration: tokenDuration,
		BcryptCost:    bcryptCost,
	}

	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "10000"),
	}

	catalogConfig := &CatalogConfig{
		BaseURL:      getOptionalEnv("RAWG_BASE_URL", "https://api.rawg.io/api"),
		APIKey:       getRequiredEnv("RAWG_API_KEY", &errs),
		SyncEnabled:  getOptionalEnvBool("CATALOG_SYNC_ENABLED", true, &errs),
		SyncInterval: getOptionalEnvDuration("CATALOG_SYNC_INTERVAL", 6*time.Hour, &errs),
		SyncPageSize: getOptionalEnvInt("CATALOG_SYNC_PAGE_SIZE", 15, &errs),
	}
	// The sync ticker panics on a non-positive interval.
	if catalogConfig.SyncInterval <= 0 {
		errs = append(errs, fmt.Sprintf("CATALOG_SYNC_INTERVAL (%s) must be positive", catalogConfig.SyncInterval))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DBPools: dbPools,
		Auth:    authConfig,
		Server:  serverConfig,
		Catalog: catalogConfig,
	}, nil
}
