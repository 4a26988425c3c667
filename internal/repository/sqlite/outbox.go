package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/quickhiresl/backend/internal/models"
)

// Notification outbox queue. Rows are written in the same transaction
// scope as the primary mutation's connection and drained by the notify
// worker pool, so delivery failures never surface to the caller.

func (r *SQLiteRepo) Enqueue(ctx context.Context, j *models.OutboxJob) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("outbox job is nil")
	}
	if j.MaxAttempts == 0 {
		j.MaxAttempts = 5
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO notification_outbox (type, payload, status, attempts, max_attempts, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.Type, string(j.Payload), models.OutboxQueued, j.Attempts, j.MaxAttempts, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("enqueue failed: %w", err)
	}

	return res.LastInsertId()
}

// FetchNext claims the next deliverable outbox row. The claim itself is a
// conditional UPDATE so concurrent workers never pick up the same row.
func (r *SQLiteRepo) FetchNext(ctx context.Context) (*models.OutboxJob, error) {
	nowTS := time.Now().UTC().Unix()
	row := r.conn.QueryRow(ctx, `SELECT id, type, payload, status, attempts, max_attempts, next_try_at, last_error, created, updated FROM notification_outbox WHERE (status = ? OR status = ?) AND (next_try_at IS NULL OR next_try_at <= ?) ORDER BY created ASC, id ASC LIMIT 1`,
		models.OutboxQueued, models.OutboxRetry, nowTS)

	var (
		j        models.OutboxJob
		payload  sql.NullString
		nextTry  sql.NullInt64
		lastErr  sql.NullString
		prevStat string
	)
	if err := row.Scan(&j.ID, &j.Type, &payload, &prevStat, &j.Attempts, &j.MaxAttempts, &nextTry, &lastErr, &j.Created, &j.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch next outbox job: %w", err)
	}
	j.Status = prevStat
	if payload.Valid {
		j.Payload = []byte(payload.String)
	}
	if nextTry.Valid {
		t := time.Unix(nextTry.Int64, 0)
		j.NextTryAt = &t
	}
	if lastErr.Valid {
		j.LastError = lastErr.String
	}

	res, err := r.conn.Exec(ctx, `UPDATE notification_outbox SET status = 'processing', updated = ? WHERE id = ? AND status = ?`, now(), j.ID, prevStat)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// another worker claimed it first
		return nil, nil
	}

	return &j, nil
}

func (r *SQLiteRepo) UpdateOutboxJob(ctx context.Context, j *models.OutboxJob) error {
	var nextTry any
	if j.NextTryAt != nil {
		nextTry = j.NextTryAt.Unix()
	}
	_, err := r.conn.Exec(ctx, `UPDATE notification_outbox SET status = ?, attempts = ?, next_try_at = ?, last_error = ?, updated = ? WHERE id = ?`,
		j.Status, j.Attempts, nextTry, j.LastError, now(), j.ID)
	return err
}

// MoveToDeadLetter records a permanently failed delivery and removes it
// from the live queue.
func (r *SQLiteRepo) MoveToDeadLetter(ctx context.Context, j *models.OutboxJob) error {
	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO notification_dead_letter (outbox_id, type, payload, attempts, last_error, failed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		j.ID, j.Type, string(j.Payload), j.Attempts, j.LastError, time.Now().UTC().Unix()); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM notification_outbox WHERE id = ?`, j.ID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
