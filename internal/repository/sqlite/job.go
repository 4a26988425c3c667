package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/pkg/repository"
)

const jobColumns = `id, title, company, location, description, category, required_skills, salary, posted_by, available_dates, status, created, updated`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	skills, err := json.Marshal(j.RequiredSkills)
	if err != nil {
		return 0, fmt.Errorf("marshal required skills: %w", err)
	}
	dates, err := json.Marshal(j.AvailableDates)
	if err != nil {
		return 0, fmt.Errorf("marshal available dates: %w", err)
	}

	status := j.Status
	if status == "" {
		status = models.JobStatusActive
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO jobs (title, company, location, description, category, required_skills, salary, posted_by, available_dates, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.Title, j.Company, j.Location, j.Description, j.Category, string(skills), j.Salary, j.PostedBy, string(dates), status, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return j, err
}

// ListJobs returns jobs matching the filter, newest first.
func (r *SQLiteRepo) ListJobs(ctx context.Context, filter repository.JobFilter) ([]models.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		q += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Location != "" {
		q += ` AND location = ?`
		args = append(args, filter.Location)
	}
	if filter.Category != "" {
		q += ` AND category = ?`
		args = append(args, filter.Category)
	}
	q += ` ORDER BY created DESC, id DESC`

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}

	return out, rows.Err()
}

// UpdateJobStatus sets the job status, but only for the posting owner.
// Returns false when no row matched (wrong owner or missing job).
func (r *SQLiteRepo) UpdateJobStatus(ctx context.Context, id, ownerID int64, status string) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE jobs SET status = ?, updated = ? WHERE id = ? AND posted_by = ?`, status, now(), id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanJob(scan func(...any) error) (*models.Job, error) {
	var j models.Job
	var skills, dates string
	if err := scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.Category, &skills, &j.Salary, &j.PostedBy, &dates, &j.Status, &j.Created, &j.Updated); err != nil {
		return nil, err
	}

	if skills != "" {
		if err := json.Unmarshal([]byte(skills), &j.RequiredSkills); err != nil {
			return nil, fmt.Errorf("decode required skills for job %d: %w", j.ID, err)
		}
	}
	if dates != "" {
		if err := json.Unmarshal([]byte(dates), &j.AvailableDates); err != nil {
			return nil, fmt.Errorf("decode available dates for job %d: %w", j.ID, err)
		}
	}

	return &j, nil
}
