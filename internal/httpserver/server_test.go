package httpserver

import (
	"net/http"
	"testing"
)

func TestHealthAndReadiness(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/healthz", nil, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec, _ = env.do(t, http.MethodGet, "/readyz", nil, nil, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without a db, got %d", rec.Code)
	}
}

func TestBuildRouter_RequiresDeps(t *testing.T) {
	if _, err := buildRouter(logDiscard(), nil, Deps{}); err == nil {
		t.Fatalf("expected error without session store")
	}
}
