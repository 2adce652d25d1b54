package gigachat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testConfig(authURL string) Config {
	return Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scope:        "GIGACHAT_API_PERS",
		AuthURL:      authURL,
	}
}

func TestFetchSendsClientCredentials(t *testing.T) {
	var seen struct {
		rqUID    string
		scope    string
		user     string
		password string
		accept   string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		seen.rqUID = r.Header.Get("RqUID")
		seen.accept = r.Header.Get("Accept")
		seen.user, seen.password, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		seen.scope = r.PostFormValue("scope")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","expires_at":1}`))
	}))
	defer srv.Close()

	provider := NewTokenProvider(testConfig(srv.URL), srv.Client())
	token, err := provider.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if token.Value != "tok-123" {
		t.Fatalf("token = %q, want tok-123", token.Value)
	}
	if token.ObtainedAt.IsZero() {
		t.Fatal("ObtainedAt not set")
	}
	if seen.rqUID == "" {
		t.Fatal("RqUID header not sent")
	}
	if seen.accept != "application/json" {
		t.Fatalf("accept = %q", seen.accept)
	}
	if seen.user != "client-id" || seen.password != "client-secret" {
		t.Fatalf("basic auth = %q/%q", seen.user, seen.password)
	}
	if seen.scope != "GIGACHAT_API_PERS" {
		t.Fatalf("scope = %q", seen.scope)
	}
}

func TestFetchFreshRqUIDPerCall(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("RqUID"))
		_, _ = w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer srv.Close()

	provider := NewTokenProvider(testConfig(srv.URL), srv.Client())
	for i := 0; i < 2; i++ {
		if _, err := provider.Fetch(context.Background()); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("expected two distinct RqUID values, got %v", ids)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	provider := NewTokenProvider(testConfig(srv.URL), srv.Client())
	_, err := provider.Fetch(context.Background())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want *AuthError", err)
	}
	if authErr.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", authErr.Status)
	}
}

func TestFetchMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	provider := NewTokenProvider(testConfig(srv.URL), srv.Client())
	if _, err := provider.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for empty access_token")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{ClientID: "id", ClientSecret: "secret"}
	if err := Normalize(&cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Scope != "GIGACHAT_API_PERS" {
		t.Fatalf("scope default = %q", cfg.Scope)
	}
	if cfg.AuthURL == "" || cfg.BaseURL == "" {
		t.Fatal("endpoint defaults not applied")
	}
	if cfg.TimeoutSeconds != defaultTimeoutSeconds {
		t.Fatalf("timeout default = %d", cfg.TimeoutSeconds)
	}

	if err := Normalize(&Config{ClientSecret: "s"}); err == nil {
		t.Fatal("expected error for missing client_id")
	}
}
