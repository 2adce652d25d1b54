// Package gigachat talks to the GigaChat text-generation service: an
// OAuth client-credentials token exchange followed by an
// OpenAI-compatible chat completion call.
package gigachat

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"freelancebot/core/logger"
	"log/slog"
)

const (
	modelID     = "GigaChat"
	temperature = 0.7
	maxTokens   = 2000
)

// Outcome is the displayable result of one completion attempt. Failed
// outcomes still carry user-facing text; no error ever crosses this
// boundary to the conversation router.
type Outcome struct {
	Text   string
	Failed bool
}

// Completer is the generation port consumed by the conversation router.
type Completer interface {
	Complete(ctx context.Context, prompt string) Outcome
}

// Client sends completion requests, fetching a fresh token per call.
type Client struct {
	tokens  TokenProvider
	client  *http.Client
	chatURL string
	timeout time.Duration
}

// NewClient builds a Client from normalized configuration.
func NewClient(cfg Config) *Client {
	httpClient := buildHTTPClient(cfg)
	return &Client{
		tokens:  NewTokenProvider(cfg, httpClient),
		client:  httpClient,
		chatURL: cfg.BaseURL + "/chat/completions",
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// NewClientWith wires explicit dependencies; used by tests.
func NewClientWith(tokens TokenProvider, client *http.Client, chatURL string, timeout time.Duration) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{tokens: tokens, client: client, chatURL: chatURL, timeout: timeout}
}

func buildHTTPClient(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: !cfg.VerifyTLS},
	}
	return &http.Client{Transport: transport}
}

// Complete runs one generation attempt and flattens every failure into a
// displayable message. Callers always receive text.
func (c *Client) Complete(ctx context.Context, prompt string) Outcome {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.complete(ctx, prompt)
	if err == nil {
		logger.GEN.Debug("completion ok",
			slog.String("event", "generate"),
			slog.Int("prompt_len", len(prompt)),
			slog.Int("response_len", len(text)),
			slog.Duration("duration", logger.Took(start)),
		)
		return Outcome{Text: text}
	}

	logger.GEN.Error("completion failed",
		slog.String("event", "generate"),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		slog.Duration("duration", logger.Took(start)),
	)

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return Outcome{Text: fmt.Sprintf("❌ Ошибка аутентификации: %d", authErr.Status), Failed: true}
	}
	var complErr *CompletionError
	if errors.As(err, &complErr) {
		return Outcome{Text: fmt.Sprintf("❌ Ошибка GigaChat API: %d - %s", complErr.Status, complErr.Body), Failed: true}
	}
	return Outcome{Text: "❌ Ошибка при запросе к GigaChat, попробуйте позже", Failed: true}
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	token, err := c.tokens.Fetch(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model: modelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.Value)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &CompletionError{Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed openai.ChatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
