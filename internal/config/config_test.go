package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestMustLoad(t *testing.T) {
	public := "mongo:\n" +
		"  uri: mongodb://localhost:27017\n" +
		"  database: accountd\n" +
		"  max_pool_size: 2\n" +
		"jwt_ttl: 30m\n"
	private := "jwt_key: 'k'\n" +
		"email:\n" +
		"  smtp_server: smtp.example.com\n" +
		"  smtp_port: 587\n" +
		"  username: noreply@example.com\n"

	cfg := MustLoad(writeConfigs(t, public, private))

	if cfg.JwtKey() != "k" {
		t.Errorf("jwt key: got %q", cfg.JwtKey())
	}
	if cfg.JwtTTL() != 30*time.Minute {
		t.Errorf("jwt ttl: got %v", cfg.JwtTTL())
	}
	// code_ttl defaults to 30 minutes when omitted
	if cfg.Public.CodeTTL != 30*time.Minute {
		t.Errorf("code ttl: got %v", cfg.Public.CodeTTL)
	}
	if cfg.Email().SMTPServer != "smtp.example.com" {
		t.Errorf("smtp server: got %q", cfg.Email().SMTPServer)
	}
}

func TestMustLoad_RequiredFields(t *testing.T) {
	// jwt_key intentionally missing
	public := "mongo:\n" +
		"  uri: mongodb://localhost:27017\n" +
		"  database: accountd\n" +
		"jwt_ttl: 30m\n"
	private := "email:\n  smtp_server: s\n"

	dir := writeConfigs(t, public, private)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing required field, got none")
		}
	}()

	_ = MustLoad(dir)
}
