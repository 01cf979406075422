package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.AuthMode != AuthModeDev {
		t.Fatalf("expected default auth mode dev, got %s", cfg.AuthMode)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected addr :8080, got %s", cfg.Addr())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://localhost/meds")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" || cfg.DBDSN != "postgres://localhost/meds" || cfg.LogFormat != "json" {
		t.Fatalf("env vars not applied: %+v", cfg)
	}
}

func TestLoad_JWTModeRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_MODE", AuthModeJWT)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for jwt mode without secret")
	}

	t.Setenv("AUTH_JWT_SECRET", "s3cr3t")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AuthJWTSecret != "s3cr3t" {
		t.Fatalf("expected secret to load, got %q", cfg.AuthJWTSecret)
	}
}

func TestLoad_IdentityModeRequiresEndpoint(t *testing.T) {
	t.Setenv("AUTH_MODE", AuthModeIdentity)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for identity mode without endpoint")
	}
}

func TestLoad_UnknownMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "basic")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown auth mode")
	}
}
