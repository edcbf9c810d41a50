package config

import (
	"fmt"
	"os"
	"strconv"

	"go_redirect/internal/redirect"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Config holds all configuration
type Config struct {
	MySQL       MySQLConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Redirect    RedirectConfig
	Log         LogConfig
	Migrate     bool
	HTTPAddr    string
	UpstreamURL string
}

// MySQLConfig holds MySQL configuration
type MySQLConfig struct {
	DSN string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	ExpireMinutes int
	Issuer        string
}

// RedirectConfig holds the redirect resolver settings
type RedirectConfig struct {
	StatusCode      int
	Table           string
	Store           string // mysql | redis
	IgnoreQueryPart bool
	ScanBatchSize   int
	TrustForwarded  bool // honour X-Forwarded-Proto/Host when rebuilding the request URL
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string
	Format string // text | json
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN: getEnv("MYSQL_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASS", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        os.Getenv("JWT_SECRET"),
			ExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 1440),
			Issuer:        getEnv("JWT_ISSUER", "go_redirect"),
		},
		Redirect: RedirectConfig{
			StatusCode:      getEnvInt("REDIRECT_STATUS_CODE", 301),
			Table:           getEnv("REDIRECT_TABLE", "redirect"),
			Store:           getEnv("REDIRECT_STORE", "mysql"),
			IgnoreQueryPart: getEnvBool("REDIRECT_IGNORE_QUERY", true),
			ScanBatchSize:   getEnvInt("REDIRECT_SCAN_BATCH", 100),
			TrustForwarded:  getEnvBool("REDIRECT_TRUST_FORWARDED", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Migrate:     getEnv("MIGRATE", "0") == "1",
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		UpstreamURL: getEnv("UPSTREAM_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	switch c.Redirect.Store {
	case "mysql":
		if c.MySQL.DSN == "" {
			return fmt.Errorf("MYSQL_DSN is required")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	default:
		return fmt.Errorf("REDIRECT_STORE must be mysql or redis, got %q", c.Redirect.Store)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if !redirect.ValidStatusCode(c.Redirect.StatusCode) {
		return fmt.Errorf("REDIRECT_STATUS_CODE must be one of 300, 301, 302, 303, 307, 308, got %d", c.Redirect.StatusCode)
	}
	if c.Redirect.Table == "" {
		return fmt.Errorf("REDIRECT_TABLE must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "1" || value == "true"
	}
	return defaultValue
}

// LoadFromINI loads configuration from INI file with environment variable override
func LoadFromINI(iniPath string) (*Config, error) {
	// Load INI file
	cfgFile, err := ini.Load(iniPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load INI file: %w", err)
	}

	// Helper function: get value with priority: ENV > INI > default
	getValue := func(envKey, iniSection, iniKey, defaultValue string) string {
		if value := os.Getenv(envKey); value != "" {
			return value
		}
		if value := cfgFile.Section(iniSection).Key(iniKey).String(); value != "" {
			return value
		}
		return defaultValue
	}

	getValueInt := func(envKey, iniSection, iniKey string, defaultValue int) int {
		if value := os.Getenv(envKey); value != "" {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		if cfgFile.Section(iniSection).HasKey(iniKey) {
			if value, err := cfgFile.Section(iniSection).Key(iniKey).Int(); err == nil {
				return value
			}
		}
		return defaultValue
	}

	getValueBool := func(envKey, iniSection, iniKey string, defaultValue bool) bool {
		if value := os.Getenv(envKey); value != "" {
			return value == "1" || value == "true"
		}
		if value, err := cfgFile.Section(iniSection).Key(iniKey).Bool(); err == nil {
			return value
		}
		return defaultValue
	}

	// JWT_EXPIRE_MINUTES is in minutes, the INI key in seconds
	expireMinutes := getEnvInt("JWT_EXPIRE_MINUTES", 0)
	if expireMinutes <= 0 {
		expireMinutes = getValueInt("", "jwt", "expire_seconds", 86400) / 60
	}

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN: getValue("MYSQL_DSN", "mysql", "dsn", ""),
		},
		Redis: RedisConfig{
			Addr:     getValue("REDIS_ADDR", "redis", "addr", "localhost:6379"),
			Password: getValue("REDIS_PASS", "redis", "pass", ""),
			DB:       getValueInt("REDIS_DB", "redis", "db", 0),
		},
		JWT: JWTConfig{
			Secret:        getValue("JWT_SECRET", "jwt", "secret", ""),
			ExpireMinutes: expireMinutes,
			Issuer:        getValue("JWT_ISSUER", "jwt", "issuer", "go_redirect"),
		},
		Redirect: RedirectConfig{
			StatusCode:      getValueInt("REDIRECT_STATUS_CODE", "redirect", "status_code", 301),
			Table:           getValue("REDIRECT_TABLE", "redirect", "table", "redirect"),
			Store:           getValue("REDIRECT_STORE", "redirect", "store", "mysql"),
			IgnoreQueryPart: getValueBool("REDIRECT_IGNORE_QUERY", "redirect", "ignore_query_part", true),
			ScanBatchSize:   getValueInt("REDIRECT_SCAN_BATCH", "redirect", "scan_batch", 100),
			TrustForwarded:  getValueBool("REDIRECT_TRUST_FORWARDED", "redirect", "trust_forwarded", false),
		},
		Log: LogConfig{
			Level:  getValue("LOG_LEVEL", "log", "level", "info"),
			Format: getValue("LOG_FORMAT", "log", "format", "text"),
		},
		Migrate:     getValueBool("MIGRATE", "app", "migrate", false),
		HTTPAddr:    getValue("HTTP_ADDR", "http", "addr", ":8080"),
		UpstreamURL: getValue("UPSTREAM_URL", "http", "upstream", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
