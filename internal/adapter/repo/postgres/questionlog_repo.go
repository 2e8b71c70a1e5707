package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/talentforge/assessment-engine/internal/domain"
)

// QuestionLogRepo persists the append-only record of questions shown to users.
type QuestionLogRepo struct{ Pool PgxPool }

// NewQuestionLogRepo constructs a QuestionLogRepo with the given pool.
func NewQuestionLogRepo(p PgxPool) *QuestionLogRepo { return &QuestionLogRepo{Pool: p} }

// ListByUser returns every logged question for a user, oldest first.
func (r *QuestionLogRepo) ListByUser(ctx domain.Context, userID string) ([]domain.QuestionLogEntry, error) {
	tracer := otel.Tracer("repo.questionlog")
	ctx, span := tracer.Start(ctx, "questionlog.ListByUser")
	defer span.End()
	q := `SELECT id, user_id, question_text, skill, difficulty, category, hash, created_at FROM question_logs WHERE user_id=$1 ORDER BY created_at ASC`
	rows, err := r.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("op=questionlog.list_by_user: %w", err)
	}
	defer rows.Close()

	var out []domain.QuestionLogEntry
	for rows.Next() {
		var e domain.QuestionLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.QuestionText, &e.Skill, &e.Difficulty, &e.Category, &e.Hash, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=questionlog.list_by_user: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=questionlog.list_by_user: %w", err)
	}
	return out, nil
}

// Create inserts a new log entry and returns its id (generates one if empty).
func (r *QuestionLogRepo) Create(ctx domain.Context, e domain.QuestionLogEntry) (string, error) {
	tracer := otel.Tracer("repo.questionlog")
	ctx, span := tracer.Start(ctx, "questionlog.Create")
	defer span.End()
	id := e.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `INSERT INTO question_logs (id, user_id, question_text, skill, difficulty, category, hash, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.Pool.Exec(ctx, q, id, e.UserID, e.QuestionText, e.Skill, e.Difficulty, e.Category, e.Hash, createdAt)
	if err != nil {
		return "", fmt.Errorf("op=questionlog.create: %w", err)
	}
	return id, nil
}
