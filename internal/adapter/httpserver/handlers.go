package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/talentforge/assessment-engine/internal/config"
	"github.com/talentforge/assessment-engine/internal/domain"
	"github.com/talentforge/assessment-engine/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Generate   usecase.GenerateService
	Users      domain.UserRepository
	Ledger     domain.Ledger
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, gen usecase.GenerateService, users domain.UserRepository, ledger domain.Ledger, dbCheck, redisCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Generate: gen, Users: users, Ledger: ledger, DBCheck: dbCheck, RedisCheck: redisCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

type assessmentSummary struct {
	Type           string `json:"type"`
	PassingScore   int    `json:"passingScore"`
	TotalQuestions int    `json:"totalQuestions"`
}

type jobSummary struct {
	Title      string            `json:"title"`
	Skills     []string          `json:"skills"`
	Assessment assessmentSummary `json:"assessment"`
}

type generateResponse struct {
	SessionID      string                     `json:"sessionId"`
	Questions      []domain.GeneratedQuestion `json:"questions"`
	TotalGenerated int                        `json:"totalGenerated"`
	Job            jobSummary                 `json:"job"`
}

// GenerateHandler runs one assessment generation request.
func (s *Server) GenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req struct {
			JobID  string `json:"jobId" validate:"required,max=128"`
			UserID string `json:"userId" validate:"required,max=128"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil, s.Cfg.IsDev())
			return
		}
		if err := getValidator().Struct(req); err != nil {
			verrs := map[string]string{}
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range ve {
					verrs[strings.ToLower(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs, s.Cfg.IsDev())
			return
		}

		result, job, err := s.Generate.Generate(r.Context(), req.JobID, req.UserID)
		if err != nil {
			LoggerFrom(r).Warn("generation request failed",
				"job_id", req.JobID,
				"user_id", req.UserID,
				"error", err)
			writeError(w, r, err, nil, s.Cfg.IsDev())
			return
		}

		writeJSON(w, http.StatusOK, generateResponse{
			SessionID:      result.SessionID,
			Questions:      result.Questions,
			TotalGenerated: result.TotalGenerated,
			Job: jobSummary{
				Title:  job.Title,
				Skills: job.Skills,
				Assessment: assessmentSummary{
					Type:           job.Assessment.EffectiveType(),
					PassingScore:   job.Assessment.EffectivePassingScore(),
					TotalQuestions: job.Assessment.EffectiveTotal(),
				},
			},
		})
	}
}

// BalanceHandler reports a user's coin balance. Operator/debug surface, not
// part of the generation flow.
func (s *Server) BalanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := chi.URLParam(r, "uid")
		user, err := s.Users.FindByUID(r.Context(), uid)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrUserNotFound, uid), nil, s.Cfg.IsDev())
			return
		}
		balance, err := s.Ledger.Balance(r.Context(), user.ID)
		if err != nil {
			writeError(w, r, err, nil, s.Cfg.IsDev())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"userId": uid, "coins": balance})
	}
}

// ReadyzHandler checks external dependencies.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 2)
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks = append(checks, check{Name: "db", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "db", OK: true})
			}
		}
		if s.RedisCheck != nil {
			if err := s.RedisCheck(ctx); err != nil {
				checks = append(checks, check{Name: "redis", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "redis", OK: true})
			}
		}
		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
