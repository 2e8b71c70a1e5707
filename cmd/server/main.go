// Command server starts the assessment engine HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redis "github.com/redis/go-redis/v9"

	ai "github.com/talentforge/assessment-engine/internal/adapter/ai"
	"github.com/talentforge/assessment-engine/internal/adapter/ai/chat"
	httpserver "github.com/talentforge/assessment-engine/internal/adapter/httpserver"
	"github.com/talentforge/assessment-engine/internal/adapter/ledger/redisledger"
	"github.com/talentforge/assessment-engine/internal/adapter/observability"
	"github.com/talentforge/assessment-engine/internal/adapter/repo/postgres"
	"github.com/talentforge/assessment-engine/internal/app"
	"github.com/talentforge/assessment-engine/internal/config"
	"github.com/talentforge/assessment-engine/internal/usecase"
)

// redisAdapter narrows *redis.Client to the readiness interface; the
// go-redis Ping result satisfies app.RedisPingResult via Err().
type redisAdapter struct{ *redis.Client }

func (a redisAdapter) Ping(ctx context.Context) app.RedisPingResult {
	return a.Client.Ping(ctx)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, AI, and generation instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Infra: DB pool
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// Infra: Redis (coin ledger)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close redis client", slog.Any("error", err))
		}
	}()

	// Repositories
	jobRepo := postgres.NewJobRepo(pool)
	userRepo := postgres.NewUserRepo(pool)
	appRepo := postgres.NewApplicationRepo(pool)
	profileRepo := postgres.NewResumeProfileRepo(pool)
	logRepo := postgres.NewQuestionLogRepo(pool)

	coinLedger := redisledger.New(rdb)

	// Prompt instructions: built-in defaults, optionally overridden from YAML.
	ins, err := config.LoadPromptInstructions(cfg.PromptConfigPath)
	if err != nil {
		slog.Error("failed to load prompt instructions", slog.Any("error", err))
		os.Exit(1)
	}

	// Chat providers: OpenRouter primary, Groq secondary. The gateway falls
	// back to the secondary within an attempt when the primary fails.
	maxElapsed, initial, maxInterval, multiplier := cfg.GetAIBackoffConfig()
	bo := chat.BackoffConfig{
		MaxElapsedTime:  maxElapsed,
		InitialInterval: initial,
		MaxInterval:     maxInterval,
		Multiplier:      multiplier,
	}
	primary := chat.New("openrouter", cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.AIChatTimeout, bo)
	secondary := chat.New("groq", cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel, cfg.AIChatTimeout, bo)

	gateway := ai.NewGateway(primary, secondary,
		ai.WithInstructions(ins),
		ai.WithRetryPolicy(cfg.AIMaxAttempts, cfg.AIAttemptBaseDelay),
		ai.WithMinResponseBytes(cfg.AIMinResponseBytes),
	)

	// Usecases
	genSvc := usecase.NewGenerateService(jobRepo, userRepo, appRepo, profileRepo, logRepo, coinLedger, gateway, cfg.AssessmentCoinCost, cfg.AssessmentDifficulty)

	// Readiness checks
	dbCheck, redisCheck := app.BuildReadinessChecks(pool, redisAdapter{rdb})

	// HTTP server
	srv := httpserver.NewServer(cfg, genSvc, userRepo, coinLedger, dbCheck, redisCheck)

	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
