package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avikbasu/docket/internal/db"
	"github.com/avikbasu/docket/internal/domain"
)

const activityColumns = `id, actor, action, entity_type, entity_id, detail, created_at`

// SQLiteActivityRepo implements ActivityRepo, the engine's audit sink.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, e *domain.ActivityEntry) error {
	query := `INSERT INTO activity_log (` + activityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Actor,
		e.Action,
		e.EntityType,
		e.EntityID,
		e.Detail,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting activity entry: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.ActivityEntry, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log
		WHERE entity_type = ? AND entity_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing activity by entity: %w", err)
	}
	defer rows.Close()
	return scanActivityEntries(rows)
}

func (r *SQLiteActivityRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + activityColumns + ` FROM activity_log ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent activity: %w", err)
	}
	defer rows.Close()
	return scanActivityEntries(rows)
}

func scanActivityEntries(rows *sql.Rows) ([]*domain.ActivityEntry, error) {
	var entries []*domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		var createdAtStr string
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}
		var err error
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity entries: %w", err)
	}
	return entries, nil
}
