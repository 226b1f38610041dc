package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/papana-farm/metdash/internal/models"
	"github.com/papana-farm/metdash/internal/repository"
)

func newTestRepo(t *testing.T) *repository.FetchLogRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repository.Migrate(db, "sqlite"))
	return repository.NewFetchLogRepository(db)
}

func record(place string, ok bool, at time.Time) models.FetchRecord {
	rec := models.FetchRecord{
		SessionID:  "sess-1",
		Place:      place,
		Variable:   models.VariableTMP,
		TimeDomain: "2024-06-01T01,2024-06-01T24",
		Bbox:       "35.829167,35.829167,137.95625,137.95625",
		OK:         ok,
		Duration:   1500 * time.Millisecond,
		CreatedAt:  at,
	}
	if ok {
		rec.Rows = 24
	} else {
		rec.Error = "AMD unavailable: timeout"
	}
	return rec
}

func TestFetchLog_InsertAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, models.JST)

	_, err := repo.Insert(ctx, record("アメダス伊那", true, base))
	require.NoError(t, err)
	id, err := repo.Insert(ctx, record("柳沢", false, base.Add(time.Minute)))
	require.NoError(t, err)
	assert.Positive(t, id)

	recs, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "柳沢", recs[0].Place)
	assert.False(t, recs[0].OK)
	assert.Equal(t, "AMD unavailable: timeout", recs[0].Error)

	assert.Equal(t, "アメダス伊那", recs[1].Place)
	assert.True(t, recs[1].OK)
	assert.Equal(t, 24, recs[1].Rows)
	assert.Equal(t, models.VariableTMP, recs[1].Variable)
	assert.Equal(t, 1500*time.Millisecond, recs[1].Duration)
	assert.True(t, recs[1].CreatedAt.Equal(base))
}

func TestFetchLog_ListLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, models.JST)

	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, record("表木", true, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	recs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	recs, err = repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestFetchLog_Prune(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, models.JST)

	_, err := repo.Insert(ctx, record("下小出", true, base.Add(-48*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, record("沢渡駅", true, base))
	require.NoError(t, err)

	n, err := repo.Prune(ctx, base.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	recs, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "沢渡駅", recs[0].Place)
}

func TestFetchLog_Ping(t *testing.T) {
	assert.NoError(t, newTestRepo(t).Ping(context.Background()))
}

func TestCreateSqliteDb_EmptyName(t *testing.T) {
	_, err := repository.CreateSqliteDb("sqlite", "")
	assert.Error(t, err)
}

func TestRunMigrations_DownAndUp(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	require.NoError(t, repository.RunMigrations(ctx, db, "sqlite", "up"))
	require.NoError(t, repository.RunMigrations(ctx, db, "sqlite", "reset"))

	_, err = repository.NewFetchLogRepository(db).List(ctx, 1)
	require.Error(t, err, "fetch_log must be gone after reset")

	require.NoError(t, repository.RunMigrations(ctx, db, "sqlite", "up"))
	_, err = repository.NewFetchLogRepository(db).List(ctx, 1)
	assert.NoError(t, err)
}
