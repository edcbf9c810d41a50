package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequired(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.MySQL.DSN == "" {
		t.Error("MySQL DSN should not be empty")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.Redirect.StatusCode != 301 {
		t.Errorf("Expected redirect status 301, got %d", cfg.Redirect.StatusCode)
	}
	if cfg.Redirect.Table != "redirect" {
		t.Errorf("Expected redirect table 'redirect', got %s", cfg.Redirect.Table)
	}
	if cfg.Redirect.Store != "mysql" {
		t.Errorf("Expected redirect store 'mysql', got %s", cfg.Redirect.Store)
	}
	if !cfg.Redirect.IgnoreQueryPart {
		t.Error("Expected query part to be ignored by default")
	}
}

func TestLoad_MissingMySQLDSN(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when MYSQL_DSN is missing")
	}
}

func TestLoad_RedisStoreWithoutDSN(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIRECT_STORE", "redis")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Redirect.Store != "redis" {
		t.Errorf("Expected redis store, got %s", cfg.Redirect.Store)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_ADDR", "redis.example.com:6379")
	t.Setenv("REDIS_DB", "5")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIRECT_STATUS_CODE", "302")
	t.Setenv("REDIRECT_TABLE", "site_redirects")
	t.Setenv("REDIRECT_IGNORE_QUERY", "0")
	t.Setenv("UPSTREAM_URL", "http://app:3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Redis.Addr != "redis.example.com:6379" {
		t.Errorf("Expected custom Redis addr, got %s", cfg.Redis.Addr)
	}
	if cfg.Redis.DB != 5 {
		t.Errorf("Expected Redis DB 5, got %d", cfg.Redis.DB)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("Expected HTTPAddr :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.Redirect.StatusCode != 302 {
		t.Errorf("Expected redirect status 302, got %d", cfg.Redirect.StatusCode)
	}
	if cfg.Redirect.Table != "site_redirects" {
		t.Errorf("Expected table site_redirects, got %s", cfg.Redirect.Table)
	}
	if cfg.Redirect.IgnoreQueryPart {
		t.Error("Expected query part to be kept")
	}
	if cfg.UpstreamURL != "http://app:3000" {
		t.Errorf("Expected upstream http://app:3000, got %s", cfg.UpstreamURL)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non redirect status", "REDIRECT_STATUS_CODE", "200"},
		{"not modified", "REDIRECT_STATUS_CODE", "304"},
		{"use proxy", "REDIRECT_STATUS_CODE", "305"},
		{"unused 306", "REDIRECT_STATUS_CODE", "306"},
		{"unknown store", "REDIRECT_STORE", "mongodb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoadFromINI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redirect.ini")
	content := `
[mysql]
dsn = ini:dsn@tcp(db:3306)/redirects

[jwt]
secret = ini-secret

[redirect]
status_code = 308
table = legacy_redirect
ignore_query_part = false
scan_batch = 500
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIRECT_TABLE", "env_redirect")

	cfg, err := LoadFromINI(path)
	if err != nil {
		t.Fatalf("LoadFromINI() failed: %v", err)
	}

	if cfg.MySQL.DSN != "ini:dsn@tcp(db:3306)/redirects" {
		t.Errorf("Expected INI DSN, got %s", cfg.MySQL.DSN)
	}
	if cfg.Redirect.StatusCode != 308 {
		t.Errorf("Expected status 308, got %d", cfg.Redirect.StatusCode)
	}
	if cfg.Redirect.Table != "env_redirect" {
		t.Errorf("Expected ENV to override INI table, got %s", cfg.Redirect.Table)
	}
	if cfg.Redirect.IgnoreQueryPart {
		t.Error("Expected ignore_query_part=false from INI")
	}
	if cfg.Redirect.ScanBatchSize != 500 {
		t.Errorf("Expected scan batch 500, got %d", cfg.Redirect.ScanBatchSize)
	}
}

func TestLoadFromINI_JWTExpire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redirect.ini")
	content := `
[mysql]
dsn = ini:dsn@tcp(db:3306)/redirects

[jwt]
secret = ini-secret
expire_seconds = 7200
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("JWT_SECRET", "")

	tests := []struct {
		name string
		env  string
		want int
	}{
		{"ini seconds", "", 120},
		{"env minutes win", "60", 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_EXPIRE_MINUTES", tt.env)

			cfg, err := LoadFromINI(path)
			if err != nil {
				t.Fatalf("LoadFromINI() failed: %v", err)
			}
			if cfg.JWT.ExpireMinutes != tt.want {
				t.Errorf("Expected %d expire minutes, got %d", tt.want, cfg.JWT.ExpireMinutes)
			}
		})
	}
}
