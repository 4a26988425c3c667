package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/quickhiresl/backend/internal/models"
)

// User methods. Student details (preferences, availability) are stored as
// a JSON document column; they are decoded into explicit structs here so
// nothing above the store ever sees a loose map.

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	details, err := json.Marshal(u.StudentDetails)
	if err != nil {
		return 0, fmt.Errorf("marshal student details: %w", err)
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO users (email, password_hash, role, student_details, created, updated) VALUES (?, ?, ?, ?, ?, ?)`,
		u.Email, u.PasswordHash, string(u.Role), string(details), ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, role, student_details, created, updated FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, role, student_details, created, updated FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *SQLiteRepo) UpdateStudentDetails(ctx context.Context, id int64, details models.StudentDetails) error {
	b, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal student details: %w", err)
	}

	_, err = r.conn.Exec(ctx, `UPDATE users SET student_details = ?, updated = ? WHERE id = ?`, string(b), now(), id)
	return err
}

func (r *SQLiteRepo) ListUserIDsByRole(ctx context.Context, role models.Role) ([]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id FROM users WHERE role = ? ORDER BY id`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}

	return out, rows.Err()
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role, details string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &details, &u.Created, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	u.Role = models.Role(role)
	if details != "" {
		if err := json.Unmarshal([]byte(details), &u.StudentDetails); err != nil {
			return nil, fmt.Errorf("decode student details for user %d: %w", u.ID, err)
		}
	}

	return &u, nil
}
