package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
auth:
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
  lock_minutes: 3
security:
  encryption_key: "k"
business:
  timezone: "UTC"
`)

	c, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", c.Server.Port)
	}
	if c.Auth.LockMinutes != 3 {
		t.Errorf("lock_minutes = %d, want 3", c.Auth.LockMinutes)
	}
	// defaults fill what the file omits
	if c.Auth.MaxFailedAttempts != 5 || c.Database.Path != "data/cafe.db" || c.Business.Currency != "RM" {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.Location().String() != "UTC" {
		t.Errorf("Location() = %v, want UTC", c.Location())
	}
}

func TestRead_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
auth:
  password_hash: "from-file"
security:
  encryption_key: "k"
`)
	t.Setenv("WC_SERVER_PORT", "7000")
	t.Setenv("WC_AUTH_JWT_SECRET", "env-secret")

	c, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.Server.Port != 7000 {
		t.Errorf("port = %d, want env override 7000", c.Server.Port)
	}
	if c.Auth.JWTSecret != "env-secret" {
		t.Errorf("jwt_secret = %q, want env value", c.Auth.JWTSecret)
	}
}

func TestRead_MissingRequired(t *testing.T) {
	path := writeConfig(t, `
security:
  encryption_key: "k"
`)
	if _, err := Read(path); err == nil {
		t.Error("missing auth.password_hash should fail")
	}
}

func TestRead_BadTimezone(t *testing.T) {
	path := writeConfig(t, `
auth:
  password_hash: "x"
security:
  encryption_key: "k"
business:
  timezone: "Mars/Olympus"
`)
	if _, err := Read(path); err == nil {
		t.Error("unknown timezone should fail")
	}
}
