package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/talentforge/assessment-engine/internal/domain"
)

// ApplicationRepo loads job applications from PostgreSQL.
type ApplicationRepo struct{ Pool PgxPool }

// NewApplicationRepo constructs an ApplicationRepo with the given pool.
func NewApplicationRepo(p PgxPool) *ApplicationRepo { return &ApplicationRepo{Pool: p} }

// Find loads the application linking userID to jobID.
func (r *ApplicationRepo) Find(ctx domain.Context, jobID, userID string) (domain.Application, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.Find")
	defer span.End()
	q := `SELECT id, job_id, user_id, resume_match_percent, created_at FROM applications WHERE job_id=$1 AND user_id=$2 LIMIT 1`
	row := r.Pool.QueryRow(ctx, q, jobID, userID)
	var a domain.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.UserID, &a.ResumeMatchPercent, &a.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Application{}, fmt.Errorf("op=application.find: %w", domain.ErrNotFound)
		}
		return domain.Application{}, fmt.Errorf("op=application.find: %w", err)
	}
	return a, nil
}
