package gigachat

import (
	"fmt"
	"strings"
)

const (
	defaultAuthURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	defaultBaseURL = "https://gigachat.devices.sberbank.ru/api/v1"
	defaultScope   = "GIGACHAT_API_PERS"

	// defaultTimeoutSeconds bounds one completion round trip, token fetch
	// included. The upstream has no SLA; 45s keeps a stuck call from
	// pinning a user's queue forever.
	defaultTimeoutSeconds = 45
)

// Config holds GigaChat credentials and endpoint settings.
type Config struct {
	ClientID     string `yaml:"client_id" envconfig:"GIGACHAT_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" envconfig:"GIGACHAT_CLIENT_SECRET"`
	Scope        string `yaml:"scope" envconfig:"GIGACHAT_SCOPE"`
	AuthURL      string `yaml:"auth_url" envconfig:"GIGACHAT_AUTH_URL"`
	BaseURL      string `yaml:"base_url" envconfig:"GIGACHAT_BASE_URL"`
	// VerifyTLS enables certificate verification against the system pool.
	// Off by default: the production endpoints present certificates from
	// the Russian trusted root CA, which most systems do not carry.
	VerifyTLS      bool `yaml:"verify_tls" envconfig:"GIGACHAT_VERIFY_TLS"`
	TimeoutSeconds int  `yaml:"timeout_seconds" envconfig:"GIGACHAT_TIMEOUT_SECONDS"`
}

// Normalize validates credentials and fills endpoint defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil gigachat config")
	}
	if strings.TrimSpace(cfg.ClientID) == "" {
		return fmt.Errorf("gigachat client_id is required")
	}
	if strings.TrimSpace(cfg.ClientSecret) == "" {
		return fmt.Errorf("gigachat client_secret is required")
	}
	if strings.TrimSpace(cfg.Scope) == "" {
		cfg.Scope = defaultScope
	}
	if strings.TrimSpace(cfg.AuthURL) == "" {
		cfg.AuthURL = defaultAuthURL
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TimeoutSeconds < 0 {
		return fmt.Errorf("gigachat timeout_seconds must be >= 0")
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	return nil
}
