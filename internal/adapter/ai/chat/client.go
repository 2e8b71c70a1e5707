// Package chat implements a generative-AI chat provider backed by any
// OpenAI-compatible completions API (OpenRouter, Groq).
package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"log/slog"

	"github.com/talentforge/assessment-engine/internal/adapter/observability"
	"github.com/talentforge/assessment-engine/internal/domain"
)

// BackoffConfig bounds the retry loop around a single chat call. Retries
// here cover transient transport failures (429, 5xx); the attempt loop in
// the gateway is a separate, coarser budget.
type BackoffConfig struct {
	MaxElapsedTime  time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// Client implements domain.ChatProvider against one provider endpoint.
type Client struct {
	name    string
	baseURL string
	apiKey  string
	model   string
	hc      *http.Client
	bo      BackoffConfig
}

// New constructs a chat client. name labels logs and metrics; baseURL is the
// API root without the /chat/completions suffix.
func New(name, baseURL, apiKey, model string, timeout time.Duration, bo BackoffConfig) *Client {
	return &Client{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		hc:      &http.Client{Timeout: timeout},
		bo:      bo,
	}
}

// Name returns the provider label.
func (c *Client) Name() string { return c.name }

func (c *Client) backoff(ctx domain.Context) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime = c.bo.MaxElapsedTime
	expo.InitialInterval = c.bo.InitialInterval
	expo.MaxInterval = c.bo.MaxInterval
	expo.Multiplier = c.bo.Multiplier
	return backoff.WithContext(expo, ctx)
}

// Generate calls the provider's chat completions endpoint and returns the
// first choice's message content.
func (c *Client) Generate(ctx domain.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: %s API key missing", domain.ErrInvalidArgument, c.name)
	}

	body := map[string]any{
		"model":       c.model,
		"temperature": 0.2,
		"max_tokens":  maxTokens,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
	}
	b, _ := json.Marshal(body)

	var out struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	op := func() error {
		start := time.Now()
		// recreate the request each retry so the body reader is fresh
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		r.Header.Set("Authorization", "Bearer "+c.apiKey)
		r.Header.Set("Content-Type", "application/json")

		resp, err := c.hc.Do(r)
		observability.AIRequestsTotal.WithLabelValues(c.name, "chat").Inc()
		observability.AIRequestDuration.WithLabelValues(c.name, "chat").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			slog.Warn("chat provider rate limited",
				slog.String("provider", c.name),
				slog.String("model", c.model))
			return fmt.Errorf("rate limited: 429")
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			slog.Warn("chat provider 4xx",
				slog.String("provider", c.name),
				slog.String("model", c.model),
				slog.Int("status", resp.StatusCode),
				slog.String("body", snippet(bodyBytes)))
			return backoff.Permanent(fmt.Errorf("chat status %d", resp.StatusCode))
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			slog.Error("chat provider non-2xx",
				slog.String("provider", c.name),
				slog.String("model", c.model),
				slog.Int("status", resp.StatusCode),
				slog.String("body", snippet(bodyBytes)))
			return fmt.Errorf("chat status %d", resp.StatusCode)
		}

		if err := json.Unmarshal(bodyBytes, &out); err != nil {
			slog.Error("chat provider decode error",
				slog.String("provider", c.name),
				slog.Any("error", err))
			return err
		}
		return nil
	}

	if err := backoff.Retry(op, c.backoff(ctx)); err != nil {
		return "", fmt.Errorf("op=chat.Generate: provider %s: %w", c.name, err)
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("op=chat.Generate: provider %s: %w", c.name, errEmptyChoices)
	}
	if out.Model != "" && out.Model != c.model {
		slog.Debug("model substitution detected",
			slog.String("provider", c.name),
			slog.String("requested_model", c.model),
			slog.String("actual_model", out.Model))
	}
	return out.Choices[0].Message.Content, nil
}

var errEmptyChoices = errors.New("empty choices in completion response")

func snippet(b []byte) string {
	const max = 512
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
