package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/talentforge/assessment-engine/internal/adapter/repo/postgres"
	"github.com/talentforge/assessment-engine/internal/domain"
)

// TestRepos_Live exercises the repos against a real Postgres container.
// Skipped unless RUN_DB_TESTS=1 so plain unit runs need no Docker.
func TestRepos_Live(t *testing.T) {
	if os.Getenv("RUN_DB_TESTS") != "1" {
		t.Skip("set RUN_DB_TESTS=1 to run container-backed repo tests")
	}
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "app"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithStartupTimeout(90 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: pgReq, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := "postgres://postgres:postgres@" + host + ":" + port.Port() + "/app?sslmode=disable"

	pool, err := postgres.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.Eventually(t, func() bool { return pool.Ping(ctx) == nil }, 30*time.Second, time.Second)

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "deploy", "migrations", "0001_init.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `INSERT INTO jobs (id, title, skills, assessment_enabled, assessment_total_questions, assessment_type) VALUES ('job-1','Backend Engineer','{Go,SQL}',true,5,'mixed')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO users (id, uid, name) VALUES ('user-1','uid-1','Dana')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO applications (id, job_id, user_id, resume_match_percent) VALUES ('app-1','job-1','user-1',72)`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO resume_profiles (id, user_id) VALUES ('rp-1','user-1')`)
	require.NoError(t, err)

	job, err := postgres.NewJobRepo(pool).FindByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, job.Skills)
	assert.True(t, job.Assessment.Enabled)

	user, err := postgres.NewUserRepo(pool).FindByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	app, err := postgres.NewApplicationRepo(pool).Find(ctx, "job-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 72, app.ResumeMatchPercent)

	_, err = postgres.NewResumeProfileRepo(pool).FindByUser(ctx, "user-1")
	require.NoError(t, err)

	logRepo := postgres.NewQuestionLogRepo(pool)
	id, err := logRepo.Create(ctx, domain.QuestionLogEntry{
		UserID:       "user-1",
		QuestionText: "What is a goroutine?",
		Skill:        "Go",
		Difficulty:   "intermediate",
		Category:     "mcq",
		Hash:         domain.QuestionHash("What is a goroutine?"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := logRepo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.QuestionHash("What is a goroutine?"), entries[0].Hash)

	_, err = postgres.NewJobRepo(pool).FindByID(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
