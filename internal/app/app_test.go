package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/talentforge/assessment-engine/internal/adapter/httpserver"
	"github.com/talentforge/assessment-engine/internal/app"
	"github.com/talentforge/assessment-engine/internal/config"
	"github.com/talentforge/assessment-engine/internal/usecase"
)

type pingerStub struct{ err error }

func (p pingerStub) Ping(context.Context) error { return p.err }

type pingResultStub struct{ err error }

func (p pingResultStub) Err() error { return p.err }

type redisStub struct{ err error }

func (r redisStub) Ping(context.Context) app.RedisPingResult { return pingResultStub{err: r.err} }

func TestBuildReadinessChecks(t *testing.T) {
	dbCheck, redisCheck := app.BuildReadinessChecks(pingerStub{}, redisStub{})
	require.NoError(t, dbCheck(context.Background()))
	require.NoError(t, redisCheck(context.Background()))

	dbErr := errors.New("db down")
	redisErr := errors.New("redis down")
	dbCheck, redisCheck = app.BuildReadinessChecks(pingerStub{err: dbErr}, redisStub{err: redisErr})
	assert.ErrorIs(t, dbCheck(context.Background()), dbErr)
	assert.ErrorIs(t, redisCheck(context.Background()), redisErr)
}

func TestBuildReadinessChecksNilClients(t *testing.T) {
	dbCheck, redisCheck := app.BuildReadinessChecks(nil, nil)
	assert.Error(t, dbCheck(context.Background()))
	assert.Error(t, redisCheck(context.Background()))
}

func TestBuildRouterHealthAndReadiness(t *testing.T) {
	cfg := config.Config{
		Port:            8080,
		RequestTimeout:  5 * time.Second,
		RateLimitPerMin: 30,
	}
	ok := func(context.Context) error { return nil }
	srv := httpserver.NewServer(cfg, usecase.GenerateService{}, nil, nil, ok, ok)
	h := app.BuildRouter(cfg, srv)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
