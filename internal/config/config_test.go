package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigDir(t *testing.T, public, private string) string {
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
	public := `
server:
  address: 0.0.0.0
  port: 8080
jwt_ttl: 168h
verification_ttl: 24h
base_url: https://isodigm.ca
allowed_origins:
  - http://localhost:3000
log:
  level: debug
  json: true
`
	private := `
jwt_key: "123"
pg:
  host: localhost
  port: 5432
  user: blogcms
  password: pass
  dbname: blogcms
smtp:
  server: smtp.example.com
  port: 587
  username: noreply@isodigm.ca
  password: mailpass
  from: "Blog CMS <noreply@isodigm.ca>"
`
	cfg := MustLoad(writeConfigDir(t, public, private))

	if cfg.Private.Pg.Host != "localhost" {
		t.Errorf("pg.Host, got: %s, want: %s", cfg.Private.Pg.Host, "localhost")
	}
	if cfg.Private.Pg.Port != 5432 {
		t.Errorf("pg.Port, got: %d, want: %d", cfg.Private.Pg.Port, 5432)
	}
	if cfg.JwtKey() != "123" {
		t.Errorf("private jwtkey, got: %s, want: %s", cfg.JwtKey(), "123")
	}
	if cfg.JwtTTL() != 168*time.Hour {
		t.Errorf("JwtTTL, got: %s, want: %s", cfg.JwtTTL(), 168*time.Hour)
	}
	if cfg.VerificationTTL() != 24*time.Hour {
		t.Errorf("VerificationTTL, got: %s, want: %s", cfg.VerificationTTL(), 24*time.Hour)
	}
	if cfg.Public.Server.Port != 8080 {
		t.Errorf("server.Port, got: %d, want: %d", cfg.Public.Server.Port, 8080)
	}
	if !cfg.Public.Log.JSON {
		t.Error("log.JSON should be true")
	}
}

func TestVerificationTTLDefault(t *testing.T) {
	cfg := &Config{}
	if cfg.VerificationTTL() != 24*time.Hour {
		t.Errorf("default VerificationTTL, got: %s, want 24h", cfg.VerificationTTL())
	}
}

func TestMustLoadMissingJwtKey(t *testing.T) {
	dir := writeConfigDir(t, "jwt_ttl: 1h\n", "pg:\n  host: localhost\n")

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing jwt_key, got none")
		}
	}()

	_ = MustLoad(dir)
}
