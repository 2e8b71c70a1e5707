package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/talentforge/assessment-engine/internal/domain"
)

// JobRepo loads jobs and their assessment configuration from PostgreSQL.
type JobRepo struct{ Pool PgxPool }

// NewJobRepo constructs a JobRepo with the given pool.
func NewJobRepo(p PgxPool) *JobRepo { return &JobRepo{Pool: p} }

// FindByID loads a job by id.
func (r *JobRepo) FindByID(ctx domain.Context, id string) (domain.Job, error) {
	tracer := otel.Tracer("repo.jobs")
	ctx, span := tracer.Start(ctx, "jobs.FindByID")
	defer span.End()
	q := `SELECT id, title, skills, assessment_enabled, assessment_total_questions, assessment_type, assessment_passing_score, min_percentage, created_at
	      FROM jobs WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	var j domain.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Skills, &j.Assessment.Enabled, &j.Assessment.TotalQuestions, &j.Assessment.Type, &j.Assessment.PassingScore, &j.MinPercentage, &j.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Job{}, fmt.Errorf("op=job.find_by_id: %w", domain.ErrNotFound)
		}
		return domain.Job{}, fmt.Errorf("op=job.find_by_id: %w", err)
	}
	return j, nil
}
