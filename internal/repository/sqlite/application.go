package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/pkg/repository"
)

const applicationColumns = `id, job_id, applicant_id, job_owner_id, status, cover_letter, applied_at, completion_requested_by, completion_requested_at, completion_confirmed_at, updated`

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}

	ts := now()
	if a.AppliedAt == 0 {
		a.AppliedAt = ts
	}
	status := a.Status
	if status == "" {
		status = models.StatusPending
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO applications (job_id, applicant_id, job_owner_id, status, cover_letter, applied_at, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.JobID, a.ApplicantID, a.JobOwnerID, string(status), a.CoverLetter, a.AppliedAt, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	a, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *SQLiteRepo) ListByApplicant(ctx context.Context, applicantID int64) ([]models.Application, error) {
	return r.listApplications(ctx, `applicant_id = ?`, applicantID)
}

func (r *SQLiteRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Application, error) {
	return r.listApplications(ctx, `job_owner_id = ?`, ownerID)
}

func (r *SQLiteRepo) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	return r.listApplications(ctx, `job_id = ?`, jobID)
}

func (r *SQLiteRepo) listApplications(ctx context.Context, where string, arg any) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM applications WHERE `+where+` ORDER BY applied_at DESC, id DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

// UpdateApplicationIf is the compare-and-swap behind every lifecycle
// transition. The UPDATE only matches when the row still holds the
// expected status and completion_requested_by, so two racing writers
// cannot both succeed; the loser sees zero rows affected.
func (r *SQLiteRepo) UpdateApplicationIf(ctx context.Context, id int64, fromStatus models.ApplicationStatus, fromRequestedBy *models.Party, mut repository.ApplicationMutation) (bool, error) {
	var reqBy any
	if mut.RequestedBy != nil {
		reqBy = string(*mut.RequestedBy)
	}
	var reqAt, confAt any
	if mut.RequestedAt != nil {
		reqAt = *mut.RequestedAt
	}
	if mut.ConfirmedAt != nil {
		confAt = *mut.ConfirmedAt
	}

	q := `UPDATE applications SET status = ?, completion_requested_by = ?, completion_requested_at = ?, completion_confirmed_at = ?, updated = ? WHERE id = ? AND status = ?`
	args := []any{string(mut.Status), reqBy, reqAt, confAt, now(), id, string(fromStatus)}
	if fromRequestedBy == nil {
		q += ` AND completion_requested_by IS NULL`
	} else {
		q += ` AND completion_requested_by = ?`
		args = append(args, string(*fromRequestedBy))
	}

	res, err := r.conn.Exec(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanApplication(scan func(...any) error) (*models.Application, error) {
	var a models.Application
	var status string
	var reqBy sql.NullString
	var reqAt, confAt sql.NullInt64
	if err := scan(&a.ID, &a.JobID, &a.ApplicantID, &a.JobOwnerID, &status, &a.CoverLetter, &a.AppliedAt, &reqBy, &reqAt, &confAt, &a.Updated); err != nil {
		return nil, err
	}

	a.Status = models.ApplicationStatus(status)
	if reqBy.Valid {
		p := models.Party(reqBy.String)
		a.CompletionRequestedBy = &p
	}
	if reqAt.Valid {
		v := reqAt.Int64
		a.CompletionRequestedAt = &v
	}
	if confAt.Valid {
		v := confAt.Int64
		a.CompletionConfirmedAt = &v
	}

	return &a, nil
}
