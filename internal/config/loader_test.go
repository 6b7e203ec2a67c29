package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadFromDefaultsWithoutFiles(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != StorageDriverMemory {
		t.Fatalf("driver = %q, want memory", cfg.Storage.Driver)
	}
	if !cfg.Storage.Seed {
		t.Fatalf("seed should default to true")
	}
	if cfg.Server.HTTP.Port != 5000 {
		t.Fatalf("port = %d, want 5000", cfg.Server.HTTP.Port)
	}
	if cfg.Server.HTTP.ShutdownTimeout != 30*time.Second {
		t.Fatalf("shutdown timeout = %v", cfg.Server.HTTP.ShutdownTimeout)
	}
	if cfg.Observability.Metrics.Path != "/metrics" {
		t.Fatalf("metrics path = %q", cfg.Observability.Metrics.Path)
	}
}

func TestLoadFromMergesEnvFileAndPlaceholders(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "staging")
	t.Setenv("FICTION_PG_HOST", "db.internal")

	writeConfig(t, dir, "config.yaml", `
app:
  name: catalog
server:
  http:
    port: 8080
database:
  postgres:
    host: ${FICTION_PG_HOST:localhost}
    password: ${FICTION_PG_PASSWORD:secret}
`)
	writeConfig(t, dir, "config.staging.yaml", `
server:
  http:
    port: 9090
storage:
  driver: postgres
  seed: false
`)

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Name != "catalog" {
		t.Fatalf("app name = %q", cfg.App.Name)
	}
	if cfg.Server.HTTP.Port != 9090 {
		t.Fatalf("port = %d, want env file override 9090", cfg.Server.HTTP.Port)
	}
	if cfg.Database.Postgres.Host != "db.internal" {
		t.Fatalf("pg host = %q", cfg.Database.Postgres.Host)
	}
	if cfg.Database.Postgres.Password != "secret" {
		t.Fatalf("pg password = %q, want placeholder default", cfg.Database.Postgres.Password)
	}
	if cfg.Storage.Driver != StorageDriverPostgres || cfg.Storage.Seed {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
}

func TestLoadFromEnvironmentOverride(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SERVER_HTTP_PORT", "7070")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTP.Port != 7070 {
		t.Fatalf("port = %d, want 7070", cfg.Server.HTTP.Port)
	}
}

func TestLoadFromRejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "test")
	writeConfig(t, dir, "config.yaml", "storage:\n  driver: mongo\n")

	if _, err := LoadFrom(dir); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestValidateMessagingRequiresRedis(t *testing.T) {
	cfg := &Config{
		Storage:   StorageConfig{Driver: StorageDriverMemory},
		Messaging: MessagingConfig{Enabled: true},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected messaging without redis to fail validation")
	}
	cfg.Cache.Redis.Enabled = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FICTION_SET", "yes")
	got := expandEnv("a=${FICTION_SET} b=${FICTION_UNSET_VAR:fallback} c=${FICTION_UNSET_VAR}")
	want := "a=yes b=fallback c=${FICTION_UNSET_VAR}"
	if got != want {
		t.Fatalf("expandEnv = %q, want %q", got, want)
	}
}

func TestDSN(t *testing.T) {
	pg := PostgresConfig{Host: "h", Port: 1, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	want := "host=h port=1 user=u password=p dbname=d sslmode=disable"
	if pg.DSN() != want {
		t.Fatalf("DSN = %q", pg.DSN())
	}
}
