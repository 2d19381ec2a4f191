package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dany7865/IITR-esummit07/internal/notify"
)

// NotificationLog is a notify.Inbox over the notification_log table.
type NotificationLog struct {
	db  *sql.DB
	now func() time.Time
}

func NewNotificationLog(db *sql.DB) *NotificationLog {
	return &NotificationLog{db: db, now: time.Now}
}

func (l *NotificationLog) Append(ctx context.Context, r notify.Record) (notify.Record, error) {
	if r.SentAt.IsZero() {
		r.SentAt = l.now().UTC()
	}
	err := l.db.QueryRowContext(ctx, `
		INSERT INTO notification_log (officer_id, channel, notification_type, title, body, lead_id, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		r.OfficerID, r.Channel, string(r.Kind), r.Title, r.Body, nullString(r.LeadID), r.SentAt,
	).Scan(&r.ID)
	if err != nil {
		return notify.Record{}, fmt.Errorf("failed to insert notification: %w", err)
	}
	return r, nil
}

// ForOfficer lists an officer's notifications, newest first.
func (l *NotificationLog) ForOfficer(ctx context.Context, officerID string, limit int) ([]notify.Record, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, officer_id, channel, notification_type, title, body, COALESCE(lead_id, ''), sent_at
		FROM notification_log
		WHERE officer_id = ?
		ORDER BY sent_at DESC, id DESC
		LIMIT ?`, officerID, notify.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var out []notify.Record
	for rows.Next() {
		var r notify.Record
		var kind string
		if err := rows.Scan(&r.ID, &r.OfficerID, &r.Channel, &kind, &r.Title, &r.Body, &r.LeadID, &r.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		r.Kind = notify.Kind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}
