package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/papana-farm/metdash/internal/models"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// FetchLogRepository stores the audit trail of provider fetches. Observation values are never stored.
type FetchLogRepository struct {
	DB *sql.DB
}

func NewFetchLogRepository(db *sql.DB) *FetchLogRepository {
	return &FetchLogRepository{DB: db}
}

func (r *FetchLogRepository) Insert(ctx context.Context, rec models.FetchRecord) (int64, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO fetch_log
			(session_id, place, variable, timedomain, lalodomain, ok, row_count, error, duration_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Place, string(rec.Variable), rec.TimeDomain, rec.Bbox,
		rec.OK, rec.Rows, rec.Error, int64(rec.Duration), createdAt.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns the most recent records first. The limit is clamped to [1, MaxListLimit].
func (r *FetchLogRepository) List(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, session_id, place, variable, timedomain, lalodomain, ok, row_count, error, duration_ns, created_at
		FROM fetch_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]models.FetchRecord, 0, limit)
	for rows.Next() {
		var (
			rec       models.FetchRecord
			variable  string
			duration  int64
			createdAt int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.Place, &variable, &rec.TimeDomain, &rec.Bbox,
			&rec.OK, &rec.Rows, &rec.Error, &duration, &createdAt,
		); err != nil {
			return nil, err
		}
		rec.Variable = models.Variable(variable)
		rec.Duration = time.Duration(duration)
		rec.CreatedAt = time.UnixMilli(createdAt).In(models.JST)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes records created before the cutoff and reports how many were removed.
func (r *FetchLogRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM fetch_log WHERE created_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *FetchLogRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
