package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_EXPIRY", "")
	t.Setenv("MAX_UPLOAD_SIZE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Auth.TokenExpiry != 24*time.Hour {
		t.Errorf("token expiry = %v", cfg.Auth.TokenExpiry)
	}
	if cfg.Storage.MaxUploadSize != 10*1024*1024 {
		t.Errorf("max upload size = %d", cfg.Storage.MaxUploadSize)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("TOKEN_EXPIRY", "2")
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Auth.TokenExpiry != 2*time.Hour {
		t.Errorf("token expiry = %v", cfg.Auth.TokenExpiry)
	}
	if cfg.Log.Pretty {
		t.Error("pretty logging should be disabled")
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
}

func TestDialector(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "oracle"}}
	if _, err := Dialector(cfg); err == nil {
		t.Error("expected error for unsupported driver")
	}

	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		cfg.Database.Driver = driver
		if _, err := Dialector(cfg); err != nil {
			t.Errorf("Dialector(%s): %v", driver, err)
		}
	}
}
