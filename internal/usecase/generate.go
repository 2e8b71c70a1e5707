// Package usecase contains the application services orchestrating assessment
// generation.
package usecase

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/talentforge/assessment-engine/internal/adapter/observability"
	"github.com/talentforge/assessment-engine/internal/domain"
)

// GenerateService orchestrates one assessment generation run: eligibility
// checks, AI generation, validation, dedup, persistence, and the best-effort
// coin deduction.
type GenerateService struct {
	Jobs         domain.JobRepository
	Users        domain.UserRepository
	Applications domain.ApplicationRepository
	Profiles     domain.ResumeProfileRepository
	QuestionLog  domain.QuestionLogRepository
	Ledger       domain.Ledger
	Generator    domain.QuestionGenerator

	CoinCost   int64
	Difficulty string

	// DeductTimeout bounds the detached ledger call; zero means 5s.
	DeductTimeout time.Duration
}

// NewGenerateService constructs a GenerateService with its dependencies.
func NewGenerateService(
	jobs domain.JobRepository,
	users domain.UserRepository,
	apps domain.ApplicationRepository,
	profiles domain.ResumeProfileRepository,
	log domain.QuestionLogRepository,
	ledger domain.Ledger,
	gen domain.QuestionGenerator,
	coinCost int64,
	difficulty string,
) GenerateService {
	return GenerateService{
		Jobs:         jobs,
		Users:        users,
		Applications: apps,
		Profiles:     profiles,
		QuestionLog:  log,
		Ledger:       ledger,
		Generator:    gen,
		CoinCost:     coinCost,
		Difficulty:   difficulty,
	}
}

const deductReason = "assessment-generation"

// Generate runs the full pipeline for (jobID, userUID) and returns the
// accepted question set plus the job it was generated for. All failures map
// onto the domain error taxonomy; no AI call or coin spend happens before
// every eligibility check passes.
func (s GenerateService) Generate(ctx domain.Context, jobID, userUID string) (domain.GenerationResult, domain.Job, error) {
	job, user, err := s.checkEligibility(ctx, jobID, userUID)
	if err != nil {
		observability.ObserveRun("rejected", 0)
		return domain.GenerationResult{}, domain.Job{}, err
	}

	history, err := s.QuestionLog.ListByUser(ctx, user.ID)
	if err != nil {
		observability.ObserveRun("error", 0)
		return domain.GenerationResult{}, domain.Job{}, fmt.Errorf("%w: load question history: %v", domain.ErrInternal, err)
	}

	// Monetization is best-effort and must never block generation.
	go s.deductCoins(user.ID)

	total := job.Assessment.EffectiveTotal()
	spec := domain.PromptSpec{
		JobTitle:       job.Title,
		Skills:         job.Skills,
		AssessmentType: job.Assessment.EffectiveType(),
		TotalQuestions: total,
		PassingScore:   job.Assessment.EffectivePassingScore(),
		Difficulty:     s.Difficulty,
	}

	candidates, diag, err := s.Generator.Generate(ctx, spec)
	if err != nil {
		observability.ObserveRun("exhausted", 0)
		slog.Error("question generation exhausted",
			slog.String("job_id", job.ID),
			slog.String("user_id", user.ID),
			slog.Int("attempts", diag.Attempts),
			slog.Any("providers", diag.Providers),
			slog.String("last_preview", diag.LastPreview))
		return domain.GenerationResult{}, domain.Job{}, err
	}

	accepted := s.assemble(ctx, user.ID, total, history, candidates)
	if len(accepted) < domain.MinAcceptedQuestions {
		observability.ObserveRun("insufficient", len(accepted))
		return domain.GenerationResult{}, domain.Job{}, fmt.Errorf(
			"%w: accepted %d of minimum %d", domain.ErrInsufficientQuestions, len(accepted), domain.MinAcceptedQuestions)
	}

	result := domain.GenerationResult{
		SessionID:      sessionID(user.ID, job.ID),
		Questions:      accepted,
		TotalGenerated: len(accepted),
	}
	observability.ObserveRun("success", len(accepted))
	slog.Info("assessment generated",
		slog.String("job_id", job.ID),
		slog.String("user_id", user.ID),
		slog.String("session_id", result.SessionID),
		slog.Int("questions", len(accepted)),
		slog.Int("attempts", diag.Attempts))
	return result, job, nil
}

// checkEligibility runs the pre-flight checks in order, short-circuiting on
// the first failure.
func (s GenerateService) checkEligibility(ctx domain.Context, jobID, userUID string) (domain.Job, domain.User, error) {
	if jobID == "" || userUID == "" {
		return domain.Job{}, domain.User{}, fmt.Errorf("%w: jobId and userId required", domain.ErrInvalidArgument)
	}

	job, err := s.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return domain.Job{}, domain.User{}, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	if !job.Assessment.Enabled {
		return domain.Job{}, domain.User{}, fmt.Errorf("%w: job %s", domain.ErrAssessmentDisabled, jobID)
	}

	user, err := s.Users.FindByUID(ctx, userUID)
	if err != nil {
		return domain.Job{}, domain.User{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userUID)
	}

	if _, err := s.Profiles.FindByUser(ctx, user.ID); err != nil {
		return domain.Job{}, domain.User{}, fmt.Errorf("%w: user %s", domain.ErrResumeNotAnalyzed, userUID)
	}

	app, err := s.Applications.Find(ctx, jobID, user.ID)
	if err != nil {
		return domain.Job{}, domain.User{}, fmt.Errorf("%w: job %s", domain.ErrNotApplied, jobID)
	}

	if required := job.MinMatchPercent(); app.ResumeMatchPercent < required {
		return domain.Job{}, domain.User{}, fmt.Errorf("%w: match %d%%, required %d%%",
			domain.ErrMatchBelowThreshold, app.ResumeMatchPercent, required)
	}
	return job, user, nil
}

// assemble feeds candidates through validation and dedup, persisting each
// accepted question. Persistence failures are logged and do not remove the
// question from the result. Acceptance stops once total questions are in.
func (s GenerateService) assemble(ctx domain.Context, userID string, total int, history []domain.QuestionLogEntry, candidates []domain.CandidateQuestion) []domain.GeneratedQuestion {
	seen := make(map[string]struct{}, len(history))
	for _, e := range history {
		seen[e.Hash] = struct{}{}
	}

	accepted := make([]domain.GeneratedQuestion, 0, total)
	for _, c := range candidates {
		if len(accepted) >= total {
			break
		}
		q, reason := ValidateCandidate(c, seen)
		if reason != "" {
			observability.QuestionsRejectedTotal.WithLabelValues(reason).Inc()
			slog.Debug("candidate question rejected",
				slog.String("user_id", userID),
				slog.String("reason", reason))
			continue
		}
		observability.QuestionsAcceptedTotal.Inc()
		accepted = append(accepted, q)

		entry := domain.QuestionLogEntry{
			UserID:       userID,
			QuestionText: q.Question,
			Skill:        q.Skill,
			Difficulty:   s.Difficulty,
			Category:     string(q.Type),
			Hash:         domain.QuestionHash(q.Question),
			CreatedAt:    time.Now().UTC(),
		}
		if _, err := s.QuestionLog.Create(ctx, entry); err != nil {
			// soft-fail: the user-visible set must not regress on a storage hiccup
			slog.Warn("question log write failed",
				slog.String("user_id", userID),
				slog.String("hash", entry.Hash),
				slog.Any("error", err))
		}
	}
	return accepted
}

// deductCoins charges the run in the background. Insufficient balance and
// ledger outages alike are swallowed.
func (s GenerateService) deductCoins(userID string) {
	timeout := s.DeductTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Ledger.Deduct(ctx, userID, s.CoinCost, deductReason); err != nil {
		observability.LedgerDeductionsTotal.WithLabelValues("failed").Inc()
		slog.Warn("coin deduction failed",
			slog.String("user_id", userID),
			slog.Int64("amount", s.CoinCost),
			slog.Any("error", err))
		return
	}
	observability.LedgerDeductionsTotal.WithLabelValues("ok").Inc()
}

// sessionID derives the run's session identifier from the user, the job, and
// the current time.
func sessionID(userID, jobID string) string {
	return domain.QuestionHash(fmt.Sprintf("%s%s%d", userID, jobID, time.Now().UnixNano()))
}
