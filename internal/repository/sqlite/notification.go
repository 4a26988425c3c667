package sqlite

import (
	"context"
	"fmt"

	"github.com/quickhiresl/backend/internal/models"
)

func (r *SQLiteRepo) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	if n == nil {
		return 0, fmt.Errorf("notification is nil")
	}

	var related any
	if n.RelatedJobID != 0 {
		related = n.RelatedJobID
	}
	res, err := r.conn.Exec(ctx, `INSERT INTO notifications (recipient_id, type, title, message, related_job_id, read, created) VALUES (?, ?, ?, ?, ?, 0, ?)`,
		n.RecipientID, n.Type, n.Title, n.Message, related, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT id, recipient_id, type, title, message, COALESCE(related_job_id, 0), read, created FROM notifications WHERE recipient_id = ? ORDER BY created DESC, id DESC LIMIT ? OFFSET ?`, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &n.RelatedJobID, &n.Read, &n.Created); err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountByRecipient(ctx context.Context, recipientID int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = ?`, recipientID)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

// MarkRead flips one notification to read; scoped to the recipient so a
// user cannot touch someone else's notifications.
func (r *SQLiteRepo) MarkRead(ctx context.Context, id, recipientID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE notifications SET read = 1 WHERE id = ? AND recipient_id = ?`, id, recipientID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRepo) MarkAllRead(ctx context.Context, recipientID int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE notifications SET read = 1 WHERE recipient_id = ?`, recipientID)
	return err
}
