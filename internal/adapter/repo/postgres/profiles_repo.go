package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/talentforge/assessment-engine/internal/domain"
)

// ResumeProfileRepo loads resume analysis markers from PostgreSQL.
type ResumeProfileRepo struct{ Pool PgxPool }

// NewResumeProfileRepo constructs a ResumeProfileRepo with the given pool.
func NewResumeProfileRepo(p PgxPool) *ResumeProfileRepo { return &ResumeProfileRepo{Pool: p} }

// FindByUser loads the resume profile for a user.
func (r *ResumeProfileRepo) FindByUser(ctx domain.Context, userID string) (domain.ResumeProfile, error) {
	tracer := otel.Tracer("repo.profiles")
	ctx, span := tracer.Start(ctx, "profiles.FindByUser")
	defer span.End()
	q := `SELECT id, user_id, analyzed_at FROM resume_profiles WHERE user_id=$1 LIMIT 1`
	row := r.Pool.QueryRow(ctx, q, userID)
	var p domain.ResumeProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.AnalyzedAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.ResumeProfile{}, fmt.Errorf("op=profile.find_by_user: %w", domain.ErrNotFound)
		}
		return domain.ResumeProfile{}, fmt.Errorf("op=profile.find_by_user: %w", err)
	}
	return p, nil
}
