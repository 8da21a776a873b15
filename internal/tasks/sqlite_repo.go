package tasks

import (
	"database/sql"
	"strings"
	"time"
)

type SQLiteRepo struct {
	db *sql.DB
}

// NewSQLiteRepo wraps an already-opened database handle. Schema setup
// lives in the db package so the tasks and logs tables migrate together.
func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

// List implements Repository.List, ascending by creation order
func (r *SQLiteRepo) List() ([]Task, error) {
	rows, err := r.db.Query(`
		SELECT id, text, completed, created_at
		FROM tasks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		var created string
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &created); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			t.CreatedAt = ts
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create implements Repository.Create with basic validation
func (r *SQLiteRepo) Create(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrTextRequired
	}
	now := time.Now().UTC()
	res, err := r.db.Exec(`
		INSERT INTO tasks (text, completed, created_at)
		VALUES (?, 0, ?)
	`, text, now.Format(time.RFC3339Nano))
	if err != nil {
		return Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:        id,
		Text:      text,
		Completed: false,
		CreatedAt: now,
	}, nil
}

func (r *SQLiteRepo) SetCompleted(id int64, completed bool) error {
	res, err := r.db.Exec(`UPDATE tasks SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear implements Repository.Clear; deleting from an empty table is not
// an error and reports zero rows.
func (r *SQLiteRepo) Clear() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM tasks`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
