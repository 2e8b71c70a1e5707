// Package domain defines the core entities, error taxonomy, and ports of the
// assessment generation pipeline.
package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// Error taxonomy (sentinels). Gatekeeper failures are terminal and
// user-facing; generation failures carry operator diagnostics alongside.
var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrNotFound              = errors.New("not found")
	ErrJobNotFound           = errors.New("job not found")
	ErrAssessmentDisabled    = errors.New("assessment disabled for this job")
	ErrUserNotFound          = errors.New("user not found")
	ErrResumeNotAnalyzed     = errors.New("resume not analyzed yet")
	ErrNotApplied            = errors.New("no application for this job")
	ErrMatchBelowThreshold   = errors.New("resume match below required threshold")
	ErrGenerationExhausted   = errors.New("question generation exhausted")
	ErrInsufficientQuestions = errors.New("insufficient unique questions")
	ErrInsufficientCoins     = errors.New("insufficient coin balance")
	ErrInternal              = errors.New("internal error")
)

// Assessment type values accepted in AssessmentConfig.Type.
const (
	AssessmentTypeMCQ    = "mcq"
	AssessmentTypeCoding = "coding"
	AssessmentTypeMixed  = "mixed"
)

// Defaults and limits for a generation run.
const (
	DefaultTotalQuestions = 5
	MaxTotalQuestions     = 10
	DefaultPassingScore   = 70
	DefaultMinPercentage  = 60
	MinAcceptedQuestions  = 3
)

// AssessmentConfig is a job's skill-assessment configuration. It is an
// immutable input to a generation run.
type AssessmentConfig struct {
	Enabled        bool
	TotalQuestions int
	Type           string
	PassingScore   int
}

// EffectiveTotal returns the question count a run must honor: the configured
// total defaulted to 5 and hard-capped at 10.
func (c AssessmentConfig) EffectiveTotal() int {
	n := c.TotalQuestions
	if n <= 0 {
		n = DefaultTotalQuestions
	}
	if n > MaxTotalQuestions {
		n = MaxTotalQuestions
	}
	return n
}

// EffectiveType returns the configured assessment type, defaulting to mixed.
func (c AssessmentConfig) EffectiveType() string {
	switch c.Type {
	case AssessmentTypeMCQ, AssessmentTypeCoding, AssessmentTypeMixed:
		return c.Type
	}
	return AssessmentTypeMixed
}

// EffectivePassingScore returns the configured passing score, defaulting to 70.
func (c AssessmentConfig) EffectivePassingScore() int {
	if c.PassingScore <= 0 {
		return DefaultPassingScore
	}
	return c.PassingScore
}

// Job is the hiring job a user runs an assessment for.
type Job struct {
	ID            string
	Title         string
	Skills        []string
	Assessment    AssessmentConfig
	MinPercentage int
	CreatedAt     time.Time
}

// MinMatchPercent returns the resume-match gate for this job, defaulting to 60.
func (j Job) MinMatchPercent() int {
	if j.MinPercentage <= 0 {
		return DefaultMinPercentage
	}
	return j.MinPercentage
}

// User is a candidate identified by an external UID.
type User struct {
	ID        string
	UID       string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Application links a user to a job and carries the resume match score
// computed at application time.
type Application struct {
	ID                 string
	JobID              string
	UserID             string
	ResumeMatchPercent int
	CreatedAt          time.Time
}

// ResumeProfile marks that resume analysis completed for a user. Its content
// is not consumed by the pipeline; existence is the precondition.
type ResumeProfile struct {
	ID         string
	UserID     string
	AnalyzedAt time.Time
}

// QuestionType enumerates generated question kinds.
type QuestionType string

const (
	QuestionMCQ    QuestionType = "mcq"
	QuestionCoding QuestionType = "coding"
)

// GeneratedQuestion is a validated question accepted into a run's output.
// CorrectAnswer is set for MCQ only and always indexes into Options.
type GeneratedQuestion struct {
	Type          QuestionType `json:"type"`
	Skill         string       `json:"skill"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer *int         `json:"correctAnswer,omitempty"`
	StarterCode   string       `json:"starterCode,omitempty"`
}

// QuestionLogEntry is the permanent record of a question shown to a user.
// Entries are append-only: never mutated, never deleted by this service.
type QuestionLogEntry struct {
	ID           string
	UserID       string
	QuestionText string
	Skill        string
	Difficulty   string
	Category     string
	Hash         string
	CreatedAt    time.Time
}

// GenerationResult is the successful outcome of a run.
type GenerationResult struct {
	SessionID      string
	Questions      []GeneratedQuestion
	TotalGenerated int
}

// CandidateQuestion is one raw, unvalidated question object as repaired out
// of a model response.
type CandidateQuestion = map[string]any

// PromptSpec carries the job parameters a generation prompt is built from.
type PromptSpec struct {
	JobTitle       string
	Skills         []string
	AssessmentType string
	TotalQuestions int
	PassingScore   int
	Difficulty     string
}

// GenerationDiagnostics describes what the gateway tried before returning.
// LastPreview is a bounded snippet of the final raw response, safe to expose
// to operators but never the full payload.
type GenerationDiagnostics struct {
	Attempts    int
	Providers   []string
	LastPreview string
}

// Repositories (ports)
//go:generate mockery --name=JobRepository --with-expecter --filename=job_repository_mock.go
//go:generate mockery --name=UserRepository --with-expecter --filename=user_repository_mock.go
//go:generate mockery --name=ApplicationRepository --with-expecter --filename=application_repository_mock.go
//go:generate mockery --name=ResumeProfileRepository --with-expecter --filename=resume_profile_repository_mock.go
//go:generate mockery --name=QuestionLogRepository --with-expecter --filename=question_log_repository_mock.go
//go:generate mockery --name=Ledger --with-expecter --filename=ledger_mock.go
//go:generate mockery --name=QuestionGenerator --with-expecter --filename=question_generator_mock.go
//go:generate mockery --name=ChatProvider --with-expecter --filename=chat_provider_mock.go

type JobRepository interface {
	FindByID(ctx Context, id string) (Job, error)
}

type UserRepository interface {
	FindByUID(ctx Context, uid string) (User, error)
}

type ApplicationRepository interface {
	Find(ctx Context, jobID, userID string) (Application, error)
}

type ResumeProfileRepository interface {
	FindByUser(ctx Context, userID string) (ResumeProfile, error)
}

type QuestionLogRepository interface {
	ListByUser(ctx Context, userID string) ([]QuestionLogEntry, error)
	Create(ctx Context, e QuestionLogEntry) (string, error)
}

// Ledger (port). Deduct is best-effort from the pipeline's point of view:
// callers swallow its errors.
type Ledger interface {
	Deduct(ctx Context, userID string, amount int64, reason string) error
	Balance(ctx Context, userID string) (int64, error)
}

// QuestionGenerator (port). Generate runs the bounded attempt loop against
// the AI providers and returns repaired candidate questions.
type QuestionGenerator interface {
	Generate(ctx Context, spec PromptSpec) ([]CandidateQuestion, GenerationDiagnostics, error)
}

// ChatProvider (port). One generative-AI backend able to answer a single
// generation request with raw text.
type ChatProvider interface {
	Name() string
	Generate(ctx Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// QuestionHash returns the dedup digest of raw question text. Skill and type
// are deliberately excluded so rephrasings of the same text collide.
func QuestionHash(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// Context aliases context.Context so ports stay free of direct stdlib churn;
// adapters pass context.Context through unchanged.
type Context = context.Context
