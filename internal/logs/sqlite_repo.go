package logs

import (
	"database/sql"
	"encoding/json"
	"time"
)

type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

// List implements Repository.List, newest entry first
func (r *SQLiteRepo) List() ([]Entry, error) {
	rows, err := r.db.Query(`
		SELECT id, date, tasks_data, created_at
		FROM logs
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var data, created string
		if err := rows.Scan(&e.ID, &e.Date, &data, &created); err != nil {
			return nil, err
		}
		e.TasksData = json.RawMessage(data)
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = ts
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Append serializes the snapshot and inserts a new entry. Entries are
// immutable once written.
func (r *SQLiteRepo) Append(date string, tasks any) (int64, error) {
	data, err := serializeTasks(date, tasks)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	res, err := r.db.Exec(`
		INSERT INTO logs (date, tasks_data, created_at)
		VALUES (?, ?, ?)
	`, date, string(data), now.Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
