package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv обнуляет переменные, которые читает Load; пустое значение
// считается незаданным.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "HTTP_ADDR", "GRPC_ADDR", "LOG_LEVEL", "GIN_MODE",
		"SHUTDOWN_TIMEOUT_SEC", "CORS_ALLOWED_ORIGINS",
		"DB_DRIVER", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"DB_TIMEZONE", "DB_SQLITE_PATH", "DB_PORT", "DB_MAX_OPEN_CONNS",
		"DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME_MIN",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTPAddr != ":8080" || cfg.App.GRPCAddr != ":50051" {
		t.Fatalf("unexpected addrs: %q %q", cfg.App.HTTPAddr, cfg.App.GRPCAddr)
	}
	if cfg.App.ShutdownTimeout() != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %v", cfg.App.ShutdownTimeout())
	}
	if cfg.DB.Driver != DriverPostgres || cfg.DB.Port != 5432 {
		t.Fatalf("unexpected db defaults: %+v", cfg.DB)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  http_addr: ":9090"
  log_level: debug
  cors_allowed_origins: ["https://a.example"]
db:
  driver: sqlite
  sqlite_path: /tmp/providers.db
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://b.example, https://c.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTPAddr != ":9090" {
		t.Fatalf("file value lost: %q", cfg.App.HTTPAddr)
	}
	if cfg.App.LogLevel != "warn" {
		t.Fatalf("env must override file, got %q", cfg.App.LogLevel)
	}
	if len(cfg.App.CORSAllowedOrigins) != 2 || cfg.App.CORSAllowedOrigins[1] != "https://c.example" {
		t.Fatalf("unexpected origins %v", cfg.App.CORSAllowedOrigins)
	}
	if cfg.DB.Driver != DriverSQLite || cfg.DB.SQLitePath != "/tmp/providers.db" {
		t.Fatalf("unexpected db config %+v", cfg.DB)
	}
	if got := cfg.DB.SQLiteDSN(); got != "/tmp/providers.db?_foreign_keys=on" {
		t.Fatalf("unexpected sqlite dsn %q", got)
	}
}

func TestLoadDBConfig_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	if _, err := LoadDBConfig(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestPostgresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_PORT", "6543")

	cfg, err := LoadDBConfig()
	if err != nil {
		t.Fatalf("LoadDBConfig: %v", err)
	}
	want := "host=db.local user=providers password=providers dbname=service_providers port=6543 sslmode=disable TimeZone=UTC"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
