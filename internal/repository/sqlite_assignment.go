package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avetisov/deadlinebot/internal/db"
	"github.com/avetisov/deadlinebot/internal/domain"
)

// assignmentColumns is the canonical SELECT column list for assignments.
const assignmentColumns = `id, owner, subject, deadline, difficulty, risk, created_at, updated_at`

// SQLiteAssignmentRepo implements AssignmentRepo over a DBTX, so the same
// repository works standalone on *sql.DB or transaction-scoped on *sql.Tx.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a repository bound to the given DBTX.
func NewSQLiteAssignmentRepo(dbtx db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: dbtx}
}

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	// The dialog layer validates before calling; the store rejects
	// invalid records anyway so no path can persist them.
	if err := a.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO assignments (` + assignmentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Owner,
		a.Subject,
		a.Deadline.Format(domain.DateLayout),
		a.Difficulty,
		a.Risk,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's assignments ordered by ascending
// deadline, with insertion order as the stable tiebreak.
func (r *SQLiteAssignmentRepo) ListByOwner(ctx context.Context, owner string) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE owner = ?
		ORDER BY deadline, created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()
	return r.scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	a, err := r.scanAssignment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("assignment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("loading assignment: %w", err)
	}
	return a, nil
}

// GetByPosition resolves a 1-based position against the current ordered
// list. The position is transient; callers must re-resolve on every use.
func (r *SQLiteAssignmentRepo) GetByPosition(ctx context.Context, owner string, pos int) (*domain.Assignment, error) {
	list, err := r.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if pos < 1 || pos > len(list) {
		return nil, fmt.Errorf("assignment at position %d: %w", pos, ErrNotFound)
	}
	return list[pos-1], nil
}

func (r *SQLiteAssignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	query := `UPDATE assignments
		SET subject = ?, deadline = ?, difficulty = ?, risk = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.Subject,
		a.Deadline.Format(domain.DateLayout),
		a.Difficulty,
		a.Risk,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating assignment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("assignment %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

// DeleteByPosition removes the record at the given 1-based position and
// reports whether anything was removed. Out-of-range positions are not an
// error. Run inside a UnitOfWork when concurrent writers are possible.
func (r *SQLiteAssignmentRepo) DeleteByPosition(ctx context.Context, owner string, pos int) (bool, error) {
	target, err := r.GetByPosition(ctx, owner, pos)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, target.ID)
	if err != nil {
		return false, fmt.Errorf("deleting assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting assignment: %w", err)
	}
	return n > 0, nil
}

// Owners returns every distinct owner with at least one assignment.
func (r *SQLiteAssignmentRepo) Owners(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT owner FROM assignments ORDER BY owner`)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owners: %w", err)
	}
	return owners, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteAssignmentRepo) scanAssignment(row rowScanner) (*domain.Assignment, error) {
	var a domain.Assignment
	var deadline, createdAt, updatedAt string
	if err := row.Scan(&a.ID, &a.Owner, &a.Subject, &deadline, &a.Difficulty, &a.Risk, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if a.Deadline, err = time.Parse(domain.DateLayout, deadline); err != nil {
		return nil, fmt.Errorf("parsing deadline %q: %w", deadline, err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at %q: %w", updatedAt, err)
	}
	return &a, nil
}

func (r *SQLiteAssignmentRepo) scanAssignments(rows *sql.Rows) ([]*domain.Assignment, error) {
	var out []*domain.Assignment
	for rows.Next() {
		a, err := r.scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}
