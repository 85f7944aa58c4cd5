// ABOUTME: Configuration loader for the SDK demo backend
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// App identity constants extracted from the published farmer app. These are
// not secrets; the verification secret and per-backend tokens must come from
// the environment.
const (
	DefaultAPIVersion = "1.0.1"
	DefaultAppVersion = "3.0.4"
	DefaultAppType    = "3"
	DefaultPlatform   = "3"
	DefaultCultureID  = "1"
)

type Config struct {
	// Server
	Port           string
	HTTPTimeout    int // seconds, applied to every upstream call
	CacheTTL       int // seconds, default cache TTL
	LookupCacheTTL int // seconds, for PashuGPT lookup responses
	LogLevel       string
	LogFormat      string

	// AMCS (primary backend)
	AMCSAPIUrl    string // discovery base, e.g. https://farmer.amulamcs.com/farmer/
	AMCSAppKey    string
	AMCSAppSecret string // app verification secret, required for login flows
	APIVersion    string
	AppVersion    string
	AppType       string
	AppPlatform   string
	CultureID     string

	// Pashudhan (secondary backend)
	PashudhanAPIUrl   string
	PashudhanUsersUrl string

	// PashuGPT (preauthorized lookup backend)
	PashuGPTAPIUrl string
	PashuGPTToken  string

	// CVCC (cattle registry)
	CVCCAPIUrl   string
	CVCCToken    string
	CVCCVendorNo string

	// Token issuance
	JWTPrivateKey string // PEM, \n-escaped newlines accepted
}

// PashuGPTConfigured returns true if the lookup backend token is set
func (c *Config) PashuGPTConfigured() bool {
	return c.PashuGPTToken != ""
}

// SigningConfigured returns true if a token signing key is set
func (c *Config) SigningConfigured() bool {
	return c.JWTPrivateKey != ""
}

// LoginConfigured returns true if the AMCS app credentials are set
func (c *Config) LoginConfigured() bool {
	return c.AMCSAppKey != "" && c.AMCSAppSecret != ""
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "3001"),
		HTTPTimeout:    getEnvInt("HTTP_TIMEOUT", 30),
		CacheTTL:       getEnvInt("CACHE_TTL", 300),
		LookupCacheTTL: getEnvInt("LOOKUP_CACHE_TTL", 60),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),

		AMCSAPIUrl:    ensureScheme(getEnv("AMCS_API_URL", "https://farmer.amulamcs.com/farmer/")),
		AMCSAppKey:    os.Getenv("AMCS_APP_KEY"),
		AMCSAppSecret: os.Getenv("AMCS_APP_SECRET"),
		APIVersion:    getEnv("AMCS_API_VERSION", DefaultAPIVersion),
		AppVersion:    getEnv("AMCS_APP_VERSION", DefaultAppVersion),
		AppType:       getEnv("AMCS_APP_TYPE", DefaultAppType),
		AppPlatform:   getEnv("AMCS_APP_PLATFORM", DefaultPlatform),
		CultureID:     getEnv("AMCS_CULTURE_ID", DefaultCultureID),

		PashudhanAPIUrl:   ensureScheme(getEnv("PASHUDHAN_API_URL", "https://pashudhanapi.amulamcs.com/v1/api/")),
		PashudhanUsersUrl: ensureScheme(getEnv("PASHUDHAN_USERS_URL", "https://pashudhanapi.amulamcs.com/v1/Users/")),

		PashuGPTAPIUrl: ensureScheme(getEnv("PASHUGPT_API_URL", "https://api.amulpashudhan.com/configman/v1/PashuGPT")),
		PashuGPTToken:  os.Getenv("PASHUGPT_TOKEN"),

		CVCCAPIUrl:   ensureScheme(getEnv("CVCC_API_URL", "https://api.amuldairy.com/ai_cattle_dtl.php")),
		CVCCToken:    os.Getenv("CVCC_TOKEN"),
		CVCCVendorNo: getEnv("CVCC_VENDOR_NO", "9999999"),

		JWTPrivateKey: os.Getenv("JWT_PRIVATE_KEY"),
	}

	if cfg.HTTPTimeout < 1 || cfg.HTTPTimeout > 300 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.HTTPTimeout)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}
	if cfg.LookupCacheTTL < 0 {
		return nil, fmt.Errorf("LOOKUP_CACHE_TTL must not be negative, got %d", cfg.LookupCacheTTL)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
