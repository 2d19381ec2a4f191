package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dany7865/IITR-esummit07/internal/feedback"
)

// FeedbackLog is a feedback.Recorder over the lead_feedback table. Outcomes
// joins against leads so each event carries its lead's industry.
type FeedbackLog struct {
	db *sql.DB
}

func NewFeedbackLog(db *sql.DB) *FeedbackLog {
	return &FeedbackLog{db: db}
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (l *FeedbackLog) Append(ctx context.Context, ev feedback.Event) (feedback.Event, error) {
	return insertFeedback(ctx, l.db, ev)
}

// Record moves the event's lead to its outcome and appends the event in one
// transaction, so a failed insert leaves the lead untouched.
func (l *FeedbackLog) Record(ctx context.Context, ev feedback.Event) (feedback.Event, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return feedback.Event{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateStatus(ctx, tx, ev.LeadID, ev.Outcome, ev.OfficerID, ev.CreatedAt); err != nil {
		return feedback.Event{}, err
	}
	ev, err = insertFeedback(ctx, tx, ev)
	if err != nil {
		return feedback.Event{}, err
	}

	if err := tx.Commit(); err != nil {
		return feedback.Event{}, fmt.Errorf("failed to commit feedback: %w", err)
	}
	return ev, nil
}

func insertFeedback(ctx context.Context, q queryRower, ev feedback.Event) (feedback.Event, error) {
	err := q.QueryRowContext(ctx, `
		INSERT INTO lead_feedback (lead_id, outcome, officer_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		ev.LeadID, string(ev.Outcome), nullString(ev.OfficerID), nullString(ev.Notes), ev.CreatedAt,
	).Scan(&ev.ID)
	if err != nil {
		return feedback.Event{}, fmt.Errorf("failed to insert feedback: %w", err)
	}
	return ev, nil
}

func (l *FeedbackLog) Outcomes(ctx context.Context) ([]feedback.IndustryOutcome, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT COALESCE(l.industry, ''), f.outcome
		FROM lead_feedback f
		JOIN leads l ON l.id = f.lead_id
		ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var out []feedback.IndustryOutcome
	for rows.Next() {
		var industry, outcome string
		if err := rows.Scan(&industry, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		out = append(out, feedback.IndustryOutcome{Industry: industry, Outcome: feedback.Outcome(outcome)})
	}
	return out, rows.Err()
}

// Events lists a lead's events, oldest first.
func (l *FeedbackLog) Events(ctx context.Context, leadID string) ([]feedback.Event, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, lead_id, outcome, COALESCE(officer_id, ''), COALESCE(notes, ''), created_at
		FROM lead_feedback
		WHERE lead_id = ?
		ORDER BY id`, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var out []feedback.Event
	for rows.Next() {
		var ev feedback.Event
		var outcome string
		if err := rows.Scan(&ev.ID, &ev.LeadID, &outcome, &ev.OfficerID, &ev.Notes, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		ev.Outcome = feedback.Outcome(outcome)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
