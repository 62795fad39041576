package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
debug: true
server:
  host: "0.0.0.0"
  port: 8060
database:
  host: "localhost"
  port: 5432
  user: "testuser"
  password: "testpass"
  dbname: "testdb"
cache:
  path: "data/test-cache.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if !cfg.Debug {
		t.Error("Load() cfg.Debug = false, want true")
	}
	if cfg.Server.Port != 8060 {
		t.Errorf("Load() cfg.Server.Port = %v, want 8060", cfg.Server.Port)
	}
	if cfg.Database.User != "testuser" {
		t.Errorf("Load() cfg.Database.User = %v, want testuser", cfg.Database.User)
	}
	if cfg.Cache.Path != "data/test-cache.db" {
		t.Errorf("Load() cfg.Cache.Path = %v, want data/test-cache.db", cfg.Cache.Path)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
database:
  host: "localhost"
  user: "user"
  password: "pass"
  dbname: "db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Port != defaultServerPort {
		t.Errorf("cfg.Server.Port = %v, want %v", cfg.Server.Port, defaultServerPort)
	}
	if cfg.Server.ReadTimeout != defaultServerTimeout*time.Second {
		t.Errorf("cfg.Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, defaultServerTimeout*time.Second)
	}
	if cfg.Database.Port != defaultDatabasePort {
		t.Errorf("cfg.Database.Port = %v, want %v", cfg.Database.Port, defaultDatabasePort)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("cfg.Database.SSLMode = %v, want disable", cfg.Database.SSLMode)
	}
	if cfg.Redis.Address != defaultRedisAddress {
		t.Errorf("cfg.Redis.Address = %v, want %v", cfg.Redis.Address, defaultRedisAddress)
	}
	if cfg.Redis.Enabled {
		t.Error("cfg.Redis.Enabled = true, want false by default")
	}
	if cfg.Cache.Path != defaultCachePath {
		t.Errorf("cfg.Cache.Path = %v, want %v", cfg.Cache.Path, defaultCachePath)
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		t.Error("cfg.Server.CORSOrigins is empty, want defaults")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8060
database:
  host: "localhost"
  user: "user"
  password: "pass"
  dbname: "db"
`)

	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CACHE_PATH", "/tmp/override.db")
	t.Setenv("REDIS_EVENTS_ENABLED", "yes")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("cfg.Server.Port = %v, want 9000 from env", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("cfg.Database.Host = %v, want db.internal from env", cfg.Database.Host)
	}
	if cfg.Cache.Path != "/tmp/override.db" {
		t.Errorf("cfg.Cache.Path = %v, want /tmp/override.db from env", cfg.Cache.Path)
	}
	if !cfg.Redis.Enabled {
		t.Error("cfg.Redis.Enabled = false, want true from env")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Load() error = nil, want error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "complete config", mutate: func(*Config) {}},
		{name: "missing server host", mutate: func(c *Config) { c.Server.Host = "" }, wantErr: true},
		{name: "zero server port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "missing database host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: true},
		{name: "missing database user", mutate: func(c *Config) { c.Database.User = "" }, wantErr: true},
		{name: "missing dbname", mutate: func(c *Config) { c.Database.DBName = "" }, wantErr: true},
		{name: "missing cache path", mutate: func(c *Config) { c.Cache.Path = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Server.Host = "0.0.0.0"
			cfg.Server.Port = 8060
			cfg.Database.Host = "localhost"
			cfg.Database.Port = 5432
			cfg.Database.User = "user"
			cfg.Database.DBName = "db"
			cfg.Cache.Path = "data/cache.db"

			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
