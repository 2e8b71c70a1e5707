package ai

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/talentforge/assessment-engine/internal/adapter/observability"
	"github.com/talentforge/assessment-engine/internal/config"
	"github.com/talentforge/assessment-engine/internal/domain"
)

// Gateway runs the bounded attempt loop against the chat providers. Each
// attempt calls the primary provider and, on provider-level failure, the
// secondary within the same attempt. Attempt-level errors are logged and
// swallowed; only total exhaustion is surfaced.
type Gateway struct {
	primary      domain.ChatProvider
	secondary    domain.ChatProvider
	instructions config.PromptInstructions

	maxAttempts      int
	baseDelay        time.Duration
	minResponseBytes int
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithInstructions overrides the built-in prompt instruction texts.
func WithInstructions(ins config.PromptInstructions) Option {
	return func(g *Gateway) { g.instructions = ins }
}

// WithRetryPolicy overrides the attempt count and backoff base delay.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) Option {
	return func(g *Gateway) {
		if maxAttempts > 0 {
			g.maxAttempts = maxAttempts
		}
		g.baseDelay = baseDelay
	}
}

// WithMinResponseBytes overrides the minimum usable response length.
func WithMinResponseBytes(n int) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.minResponseBytes = n
		}
	}
}

// NewGateway builds a Gateway. secondary may be nil when no fallback
// provider is configured.
func NewGateway(primary, secondary domain.ChatProvider, opts ...Option) *Gateway {
	g := &Gateway{
		primary:          primary,
		secondary:        secondary,
		instructions:     config.DefaultPromptInstructions(),
		maxAttempts:      3,
		baseDelay:        500 * time.Millisecond,
		minResponseBytes: 10,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate obtains a repaired candidate question list for the given spec, or
// domain.ErrGenerationExhausted once every attempt has failed. Diagnostics
// are returned in both cases so callers can log what was tried.
func (g *Gateway) Generate(ctx domain.Context, spec domain.PromptSpec) ([]domain.CandidateQuestion, domain.GenerationDiagnostics, error) {
	prompt := BuildPrompt(spec, g.instructions)
	diag := domain.GenerationDiagnostics{}

	slog.Debug("generation prompt built",
		slog.String("job_title", spec.JobTitle),
		slog.Int("total_questions", spec.TotalQuestions),
		slog.Int("prompt_tokens", PromptTokens(prompt, "")),
		slog.Int("max_tokens", prompt.MaxTokens))

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := g.wait(ctx, time.Duration(attempt-1)*g.baseDelay); err != nil {
				return nil, diag, fmt.Errorf("op=ai.Generate: %w", err)
			}
		}
		diag.Attempts = attempt

		raw, provider, err := g.callProviders(ctx, prompt, &diag)
		if err != nil {
			observability.GenerationAttemptsTotal.WithLabelValues("provider_error").Inc()
			slog.Warn("generation attempt failed",
				slog.Int("attempt", attempt),
				slog.Any("error", err))
			continue
		}
		diag.LastPreview = preview(raw)

		if len(raw) < g.minResponseBytes {
			observability.GenerationAttemptsTotal.WithLabelValues("too_short").Inc()
			slog.Warn("generation attempt returned unusably short response",
				slog.Int("attempt", attempt),
				slog.String("provider", provider),
				slog.Int("bytes", len(raw)))
			continue
		}

		questions, err := ExtractQuestions(raw)
		if err != nil {
			observability.GenerationAttemptsTotal.WithLabelValues("unparseable").Inc()
			slog.Warn("generation attempt produced unparseable response",
				slog.Int("attempt", attempt),
				slog.String("provider", provider),
				slog.Any("error", err))
			continue
		}

		observability.GenerationAttemptsTotal.WithLabelValues("ok").Inc()
		slog.Info("generation attempt succeeded",
			slog.Int("attempt", attempt),
			slog.String("provider", provider),
			slog.Int("candidates", len(questions)))
		return questions, diag, nil
	}

	return nil, diag, fmt.Errorf("op=ai.Generate: %d attempts, providers %v: %w",
		diag.Attempts, diag.Providers, domain.ErrGenerationExhausted)
}

// callProviders tries the primary provider, then the secondary, within one
// attempt. Every provider actually called is recorded in diag.Providers.
func (g *Gateway) callProviders(ctx domain.Context, prompt Prompt, diag *domain.GenerationDiagnostics) (string, string, error) {
	diag.Providers = append(diag.Providers, g.primary.Name())
	raw, primaryErr := g.primary.Generate(ctx, prompt.System, prompt.User, prompt.MaxTokens)
	if primaryErr == nil && raw != "" {
		return raw, g.primary.Name(), nil
	}
	if primaryErr == nil {
		primaryErr = fmt.Errorf("empty response")
	}
	slog.Warn("primary provider failed, trying fallback",
		slog.String("provider", g.primary.Name()),
		slog.Any("error", primaryErr))

	if g.secondary == nil {
		return "", "", fmt.Errorf("provider %s: %w", g.primary.Name(), primaryErr)
	}

	diag.Providers = append(diag.Providers, g.secondary.Name())
	raw, secondaryErr := g.secondary.Generate(ctx, prompt.System, prompt.User, prompt.MaxTokens)
	if secondaryErr == nil && raw != "" {
		return raw, g.secondary.Name(), nil
	}
	if secondaryErr == nil {
		secondaryErr = fmt.Errorf("empty response")
	}
	return "", "", fmt.Errorf("provider %s: %v; provider %s: %w",
		g.primary.Name(), primaryErr, g.secondary.Name(), secondaryErr)
}

func (g *Gateway) wait(ctx domain.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
