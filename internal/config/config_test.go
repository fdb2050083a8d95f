package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "SHUTDOWN_TIMEOUT_SECONDS", "WISHLIST_SHARE_TTL_DAYS", "KAFKA_BROKERS", "BOOTSTRAP_ON_START", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %s", cfg.ShutdownTimeout)
	}
	if cfg.WishlistShareTTL != 30*24*time.Hour {
		t.Fatalf("unexpected wishlist share ttl %s", cfg.WishlistShareTTL)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("expected kafka disabled, got %v", cfg.KafkaBrokers)
	}
	if !cfg.BootstrapOnStart {
		t.Fatalf("expected bootstrap on start by default")
	}
	if len(cfg.CORSAllowOrigins) != 1 || cfg.CORSAllowOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowOrigins)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CART_SHARE_TTL_HOURS", "2")
	t.Setenv("WISHLIST_SHARE_TTL_DAYS", "7")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://shop.example.com/")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.CartShareTTL != 2*time.Hour {
		t.Fatalf("unexpected cart share ttl %s", cfg.CartShareTTL)
	}
	if cfg.WishlistShareTTL != 7*24*time.Hour {
		t.Fatalf("unexpected wishlist share ttl %s", cfg.WishlistShareTTL)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if !cfg.CookieSecure {
		t.Fatalf("expected secure cookies")
	}
	if cfg.PublicBaseURL != "https://shop.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.PublicBaseURL)
	}
}

func TestFromEnv_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "soon")
	t.Setenv("SESSION_TTL_HOURS", "-3")
	cfg := FromEnv()
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected default shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.SessionTTL != 14*24*time.Hour {
		t.Fatalf("expected default session ttl, got %s", cfg.SessionTTL)
	}
}

func TestCheckSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ALLOW_DEV_SESSION_SECRET", "")
	cfg := FromEnv()
	if cfg.SessionSecret != DefaultSessionSecret {
		t.Fatalf("expected default secret, got %q", cfg.SessionSecret)
	}
	if err := cfg.CheckSessionSecret(); err == nil {
		t.Fatalf("expected the default secret to be rejected")
	}

	t.Setenv("ALLOW_DEV_SESSION_SECRET", "true")
	if err := FromEnv().CheckSessionSecret(); err != nil {
		t.Fatalf("expected dev override to allow the default secret: %v", err)
	}

	t.Setenv("ALLOW_DEV_SESSION_SECRET", "")
	t.Setenv("SESSION_SECRET", "a-private-secret")
	if err := FromEnv().CheckSessionSecret(); err != nil {
		t.Fatalf("expected private secret to pass: %v", err)
	}
}
