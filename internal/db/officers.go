package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Dany7865/IITR-esummit07/internal/officer"
)

// OfficerRepository is an officer.Repository over the sales_officers table.
type OfficerRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewOfficerRepository(db *sql.DB) *OfficerRepository {
	return &OfficerRepository{db: db, now: time.Now}
}

const officerColumns = "id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(region, ''), is_active, created_at"

func (r *OfficerRepository) Create(ctx context.Context, o *officer.Officer) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = r.now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sales_officers (id, name, phone, email, region, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, nullString(o.Phone), nullString(o.Email), nullString(o.Region), o.Active, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert officer: %w", err)
	}
	return nil
}

func (r *OfficerRepository) Get(ctx context.Context, id string) (*officer.Officer, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+officerColumns+" FROM sales_officers WHERE id = ?", id)
	o, err := scanOfficer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, officer.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read officer %s: %w", id, err)
	}
	return o, nil
}

func (r *OfficerRepository) List(ctx context.Context, activeOnly bool) ([]*officer.Officer, error) {
	query := "SELECT " + officerColumns + " FROM sales_officers"
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY created_at, id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query officers: %w", err)
	}
	defer rows.Close()

	var out []*officer.Officer
	for rows.Next() {
		o, err := scanOfficer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan officer: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Active reports whether id names an active officer.
func (r *OfficerRepository) Active(ctx context.Context, id string) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx, "SELECT is_active FROM sales_officers WHERE id = ?", id).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read officer %s: %w", id, err)
	}
	return active, nil
}

func scanOfficer(row scanner) (*officer.Officer, error) {
	var o officer.Officer
	if err := row.Scan(&o.ID, &o.Name, &o.Phone, &o.Email, &o.Region, &o.Active, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
