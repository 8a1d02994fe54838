package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avikbasu/docket/internal/db"
	"github.com/avikbasu/docket/internal/domain"
)

// caseColumns is the canonical SELECT column list for cases.
const caseColumns = `id, owner, case_number, client_name, status, next_hearing, created_at, updated_at`

// SQLiteCaseRepo implements CaseRepo over a DBTX, so the same type serves
// standalone reads and tx-scoped writes.
type SQLiteCaseRepo struct {
	db db.DBTX
}

// NewSQLiteCaseRepo creates a new SQLiteCaseRepo.
func NewSQLiteCaseRepo(conn db.DBTX) *SQLiteCaseRepo {
	return &SQLiteCaseRepo{db: conn}
}

func (r *SQLiteCaseRepo) Create(ctx context.Context, c *domain.Case) error {
	query := `INSERT INTO cases (id, owner, case_number, client_name, status, next_hearing, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Owner,
		c.CaseNumber,
		c.ClientName,
		string(c.Status),
		nullableTimeToString(c.NextHearing, time.RFC3339),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting case: %w", err)
	}
	return nil
}

func (r *SQLiteCaseRepo) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = ?`
	return r.scanCase(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteCaseRepo) GetByNumber(ctx context.Context, owner, caseNumber string) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE owner = ? AND case_number = ?`
	return r.scanCase(r.db.QueryRowContext(ctx, query, owner, caseNumber))
}

func (r *SQLiteCaseRepo) ListByOwner(ctx context.Context, owner string) ([]*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE owner = ? ORDER BY case_number`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing cases by owner: %w", err)
	}
	defer rows.Close()

	var cases []*domain.Case
	for rows.Next() {
		c, err := scanCaseColumns(rows.Scan)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cases: %w", err)
	}
	return cases, nil
}

func (r *SQLiteCaseRepo) Update(ctx context.Context, c *domain.Case) error {
	query := `UPDATE cases SET owner = ?, case_number = ?, client_name = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Owner,
		c.CaseNumber,
		c.ClientName,
		string(c.Status),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating case: %w", err)
	}
	return nil
}

func (r *SQLiteCaseRepo) UpdateNextHearing(ctx context.Context, caseID string, next *time.Time, now time.Time) error {
	query := `UPDATE cases SET next_hearing = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(next, time.RFC3339),
		now.UTC().Format(time.RFC3339),
		caseID,
	)
	if err != nil {
		return fmt.Errorf("updating case next hearing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking next hearing update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("case %s: %w", caseID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCaseRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM cases WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting case: %w", err)
	}
	return nil
}

func (r *SQLiteCaseRepo) scanCase(row *sql.Row) (*domain.Case, error) {
	c, err := scanCaseColumns(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("case: %w", ErrNotFound)
	}
	return c, err
}

// scanCaseColumns scans the canonical column list via any Scan-shaped function.
func scanCaseColumns(scan func(dest ...any) error) (*domain.Case, error) {
	var c domain.Case
	var statusStr string
	var nextHearingStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := scan(
		&c.ID, &c.Owner, &c.CaseNumber, &c.ClientName, &statusStr,
		&nextHearingStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning case: %w", err)
	}

	c.Status = domain.CaseStatus(statusStr)
	c.NextHearing = parseNullableTime(nextHearingStr, time.RFC3339)

	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}
