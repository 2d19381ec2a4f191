package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
)

// LeadRepository is a lead.Repository over the leads table. The dossier is
// stored as JSON next to the columns used for filtering.
type LeadRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db, now: time.Now}
}

const leadColumns = "id, canonical_key, status, COALESCE(assigned_officer_id, ''), dossier, created_at, updated_at"

func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	if l.ID == "" {
		l.ID = lead.NewID()
	}
	if l.Key == "" {
		l.Key = lead.CanonicalKey(l.Dossier.Company, l.Dossier.RawText)
	}
	if l.Status == "" {
		l.Status = feedback.OutcomeNew
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = r.now().UTC()
		l.UpdatedAt = l.CreatedAt
	}

	body, err := json.Marshal(l.Dossier)
	if err != nil {
		return fmt.Errorf("failed to encode dossier: %w", err)
	}

	d := l.Dossier
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO leads (id, canonical_key, company, industry, source, score, confidence,
			priority, status, assigned_officer_id, dossier, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Key, d.Company, string(d.Industry), d.Source, d.Score, d.Confidence,
		string(d.Priority), string(l.Status), nullString(l.AssignedOfficerID), string(body),
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) Get(ctx context.Context, id string) (*lead.Lead, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+leadColumns+" FROM leads WHERE id = ?", id)
	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lead.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LeadRepository) List(ctx context.Context, f lead.Filter) ([]*lead.Lead, error) {
	f = f.Normalize()

	var where []string
	var args []any
	if f.Company != "" {
		where = append(where, "company ILIKE ?")
		args = append(args, "%"+f.Company+"%")
	}
	if f.Industry != "" {
		where = append(where, "industry ILIKE ?")
		args = append(args, "%"+f.Industry+"%")
	}
	if f.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, f.Priority)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.MinScore != nil {
		where = append(where, "score >= ?")
		args = append(args, *f.MinScore)
	}
	if f.MaxScore != nil {
		where = append(where, "score <= ?")
		args = append(args, *f.MaxScore)
	}

	query := "SELECT " + leadColumns + " FROM leads"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY score DESC, created_at DESC, id LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var out []*lead.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status feedback.Outcome, officerID string) error {
	return updateStatus(ctx, r.db, id, status, officerID, r.now().UTC())
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// updateStatus runs on either the pool or a transaction. An empty officerID
// keeps the current assignment.
func updateStatus(ctx context.Context, ex execer, id string, status feedback.Outcome, officerID string, at time.Time) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE leads
		SET status = ?, assigned_officer_id = COALESCE(?, assigned_officer_id), updated_at = ?
		WHERE id = ?`,
		string(status), nullString(officerID), at, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update lead %s: %w", id, err)
	}
	if n == 0 {
		return lead.ErrNotFound
	}
	return nil
}

func (r *LeadRepository) Industry(ctx context.Context, id string) (string, error) {
	var industry string
	err := r.db.QueryRowContext(ctx, "SELECT industry FROM leads WHERE id = ?", id).Scan(&industry)
	if errors.Is(err, sql.ErrNoRows) {
		return "", lead.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read lead %s: %w", id, err)
	}
	return industry, nil
}

func (r *LeadRepository) CanonicalKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT canonical_key FROM leads ORDER BY canonical_key")
	if err != nil {
		return nil, fmt.Errorf("failed to query lead keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan lead key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(s scanner) (*lead.Lead, error) {
	var l lead.Lead
	var status, body string
	if err := s.Scan(&l.ID, &l.Key, &status, &l.AssignedOfficerID, &body, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan lead: %w", err)
	}
	if err := json.Unmarshal([]byte(body), &l.Dossier); err != nil {
		return nil, fmt.Errorf("failed to decode dossier for lead %s: %w", l.ID, err)
	}
	l.Status = feedback.Outcome(status)
	return &l, nil
}
