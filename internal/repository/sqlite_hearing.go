package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avikbasu/docket/internal/db"
	"github.com/avikbasu/docket/internal/domain"
	"github.com/avikbasu/docket/internal/schedule"
)

// hearingColumns is the canonical SELECT column list for hearings.
const hearingColumns = `id, case_id, owner, hearing_date, hearing_time, timezone, duration_min,
		start_at, end_at, status, resource_scope, next_hearing_date, next_hearing_time,
		override_allowed, override_reason, overridden_by, overridden_at, override_conflicts,
		created_at, updated_at`

// hearingColumnsAliased is the same column list prefixed with "h." for join queries.
const hearingColumnsAliased = `h.id, h.case_id, h.owner, h.hearing_date, h.hearing_time, h.timezone, h.duration_min,
		h.start_at, h.end_at, h.status, h.resource_scope, h.next_hearing_date, h.next_hearing_time,
		h.override_allowed, h.override_reason, h.overridden_by, h.overridden_at, h.override_conflicts,
		h.created_at, h.updated_at`

// SQLiteHearingRepo implements HearingRepo over a DBTX, so the same type
// serves standalone reads and tx-scoped conflict-check-and-write sequences.
type SQLiteHearingRepo struct {
	db db.DBTX
}

// NewSQLiteHearingRepo creates a new SQLiteHearingRepo.
func NewSQLiteHearingRepo(conn db.DBTX) *SQLiteHearingRepo {
	return &SQLiteHearingRepo{db: conn}
}

func (r *SQLiteHearingRepo) Create(ctx context.Context, h *domain.Hearing) error {
	scopeJSON, err := scopeToJSON(h.ResourceScope)
	if err != nil {
		return err
	}
	ov, err := overrideFields(h.Override)
	if err != nil {
		return err
	}

	query := `INSERT INTO hearings (` + hearingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		h.ID,
		h.CaseID,
		h.Owner,
		h.HearingDate,
		h.HearingTime,
		h.Timezone,
		h.DurationMin,
		h.StartAt.UTC().Format(time.RFC3339),
		h.EndAt.UTC().Format(time.RFC3339),
		string(h.Status),
		scopeJSON,
		h.NextHearingDate,
		h.NextHearingTime,
		ov.allowed,
		ov.reason,
		ov.by,
		ov.at,
		ov.conflicts,
		h.CreatedAt.Format(time.RFC3339),
		h.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting hearing: %w", err)
	}
	return nil
}

func (r *SQLiteHearingRepo) GetByID(ctx context.Context, id string) (*domain.Hearing, error) {
	query := `SELECT ` + hearingColumns + ` FROM hearings WHERE id = ?`
	h, err := scanHearingColumns(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("hearing: %w", ErrNotFound)
	}
	return h, err
}

func (r *SQLiteHearingRepo) ListByCase(ctx context.Context, caseID, owner string) ([]*domain.Hearing, error) {
	query := `SELECT ` + hearingColumns + ` FROM hearings
		WHERE case_id = ? AND owner = ? ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query, caseID, owner)
	if err != nil {
		return nil, fmt.Errorf("listing hearings by case: %w", err)
	}
	defer rows.Close()
	return scanHearings(rows)
}

func (r *SQLiteHearingRepo) ListByOwner(ctx context.Context, owner string) ([]*domain.Hearing, error) {
	query := `SELECT ` + hearingColumns + ` FROM hearings WHERE owner = ? ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing hearings by owner: %w", err)
	}
	defer rows.Close()
	return scanHearings(rows)
}

func (r *SQLiteHearingRepo) ListConflictCandidates(ctx context.Context, owner string) ([]schedule.Candidate, error) {
	query := `SELECT ` + hearingColumnsAliased + `, c.case_number
		FROM hearings h
		JOIN cases c ON h.case_id = c.id
		WHERE h.owner = ? AND h.status = 'scheduled'
		ORDER BY h.start_at`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing conflict candidates: %w", err)
	}
	defer rows.Close()

	var candidates []schedule.Candidate
	for rows.Next() {
		var caseNumber string
		h, err := scanHearingColumns(func(dest ...any) error {
			return rows.Scan(append(dest, &caseNumber)...)
		})
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, schedule.Candidate{Hearing: h, CaseNumber: caseNumber})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conflict candidates: %w", err)
	}
	return candidates, nil
}

func (r *SQLiteHearingRepo) Update(ctx context.Context, h *domain.Hearing) error {
	scopeJSON, err := scopeToJSON(h.ResourceScope)
	if err != nil {
		return err
	}
	ov, err := overrideFields(h.Override)
	if err != nil {
		return err
	}

	query := `UPDATE hearings SET case_id = ?, owner = ?, hearing_date = ?, hearing_time = ?,
		timezone = ?, duration_min = ?, start_at = ?, end_at = ?, status = ?, resource_scope = ?,
		next_hearing_date = ?, next_hearing_time = ?,
		override_allowed = ?, override_reason = ?, overridden_by = ?, overridden_at = ?, override_conflicts = ?,
		updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		h.CaseID,
		h.Owner,
		h.HearingDate,
		h.HearingTime,
		h.Timezone,
		h.DurationMin,
		h.StartAt.UTC().Format(time.RFC3339),
		h.EndAt.UTC().Format(time.RFC3339),
		string(h.Status),
		scopeJSON,
		h.NextHearingDate,
		h.NextHearingTime,
		ov.allowed,
		ov.reason,
		ov.by,
		ov.at,
		ov.conflicts,
		h.UpdatedAt.Format(time.RFC3339),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("updating hearing: %w", err)
	}
	return nil
}

func (r *SQLiteHearingRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM hearings WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting hearing: %w", err)
	}
	return nil
}

// storedOverride holds the flattened column values of a ConflictOverride.
type storedOverride struct {
	allowed   int
	reason    string
	by        string
	at        interface{}
	conflicts string
}

func overrideFields(o *domain.ConflictOverride) (storedOverride, error) {
	if o == nil {
		return storedOverride{conflicts: "[]"}, nil
	}
	conflictsJSON, err := idsToJSON(o.ConflictingHearings)
	if err != nil {
		return storedOverride{}, err
	}
	allowed := 0
	if o.Allowed {
		allowed = 1
	}
	at := o.OverriddenAt.UTC()
	return storedOverride{
		allowed:   allowed,
		reason:    o.Reason,
		by:        o.OverriddenBy,
		at:        at.Format(time.RFC3339),
		conflicts: conflictsJSON,
	}, nil
}

// scanHearingColumns scans the canonical column list via any Scan-shaped function.
func scanHearingColumns(scan func(dest ...any) error) (*domain.Hearing, error) {
	var h domain.Hearing
	var statusStr, scopeJSON string
	var startAtStr, endAtStr, createdAtStr, updatedAtStr string
	var ovAllowed int
	var ovReason, ovBy, ovConflicts string
	var ovAtStr sql.NullString

	err := scan(
		&h.ID, &h.CaseID, &h.Owner, &h.HearingDate, &h.HearingTime, &h.Timezone, &h.DurationMin,
		&startAtStr, &endAtStr, &statusStr, &scopeJSON, &h.NextHearingDate, &h.NextHearingTime,
		&ovAllowed, &ovReason, &ovBy, &ovAtStr, &ovConflicts,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning hearing: %w", err)
	}

	h.Status = domain.HearingStatus(statusStr)
	if h.ResourceScope, err = scopeFromJSON(scopeJSON); err != nil {
		return nil, err
	}

	if h.StartAt, err = time.Parse(time.RFC3339, startAtStr); err != nil {
		return nil, fmt.Errorf("parsing start_at: %w", err)
	}
	if h.EndAt, err = time.Parse(time.RFC3339, endAtStr); err != nil {
		return nil, fmt.Errorf("parsing end_at: %w", err)
	}
	if h.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	if ovAllowed != 0 {
		ids, err := idsFromJSON(ovConflicts)
		if err != nil {
			return nil, err
		}
		at := parseNullableTime(ovAtStr, time.RFC3339)
		override := &domain.ConflictOverride{
			Allowed:             true,
			Reason:              ovReason,
			OverriddenBy:        ovBy,
			ConflictingHearings: ids,
		}
		if at != nil {
			override.OverriddenAt = *at
		}
		h.Override = override
	}

	return &h, nil
}

func scanHearings(rows *sql.Rows) ([]*domain.Hearing, error) {
	var hearings []*domain.Hearing
	for rows.Next() {
		h, err := scanHearingColumns(rows.Scan)
		if err != nil {
			return nil, err
		}
		hearings = append(hearings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hearings: %w", err)
	}
	return hearings, nil
}
