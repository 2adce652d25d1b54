package gigachat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"freelancebot/core/logger"
	"log/slog"
)

// AccessToken is a short-lived bearer credential. It is never persisted.
type AccessToken struct {
	Value      string
	ObtainedAt time.Time
}

// TokenProvider obtains a bearer credential for completion calls.
type TokenProvider interface {
	Fetch(ctx context.Context) (AccessToken, error)
}

// OAuthTokenProvider implements the client-credentials exchange against
// the GigaChat OAuth endpoint. Every Fetch performs a network round trip;
// tokens are not cached.
type OAuthTokenProvider struct {
	cfg    Config
	client *http.Client
}

// NewTokenProvider builds a provider sharing the given HTTP client.
func NewTokenProvider(cfg Config, client *http.Client) *OAuthTokenProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &OAuthTokenProvider{cfg: cfg, client: client}
}

// Fetch exchanges client credentials for an access token.
// A non-200 response yields *AuthError; retrying is the caller's call.
func (p *OAuthTokenProvider) Fetch(ctx context.Context) (AccessToken, error) {
	form := url.Values{"scope": {p.cfg.Scope}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return AccessToken{}, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", uuid.NewString())
	req.SetBasicAuth(p.cfg.ClientID, p.cfg.ClientSecret)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return AccessToken{}, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		logger.GEN.Warn("auth rejected",
			slog.String("event", "auth.fetch"),
			slog.Int("http_code", resp.StatusCode),
			slog.Duration("duration", logger.Took(start)),
		)
		return AccessToken{}, &AuthError{Status: resp.StatusCode}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return AccessToken{}, fmt.Errorf("decode auth response: %w", err)
	}
	if payload.AccessToken == "" {
		return AccessToken{}, fmt.Errorf("auth response missing access_token")
	}

	logger.GEN.Debug("token obtained",
		slog.String("event", "auth.fetch"),
		slog.Duration("duration", logger.Took(start)),
	)
	return AccessToken{Value: payload.AccessToken, ObtainedAt: time.Now()}, nil
}
