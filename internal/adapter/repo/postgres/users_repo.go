package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/talentforge/assessment-engine/internal/domain"
)

// UserRepo loads users from PostgreSQL.
type UserRepo struct{ Pool PgxPool }

// NewUserRepo constructs a UserRepo with the given pool.
func NewUserRepo(p PgxPool) *UserRepo { return &UserRepo{Pool: p} }

// FindByUID loads a user by external uid.
func (r *UserRepo) FindByUID(ctx domain.Context, uid string) (domain.User, error) {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.FindByUID")
	defer span.End()
	q := `SELECT id, uid, name, email, created_at FROM users WHERE uid=$1`
	row := r.Pool.QueryRow(ctx, q, uid)
	var u domain.User
	if err := row.Scan(&u.ID, &u.UID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, fmt.Errorf("op=user.find_by_uid: %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("op=user.find_by_uid: %w", err)
	}
	return u, nil
}
