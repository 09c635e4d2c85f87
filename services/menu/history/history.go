// Package history keeps an append-only archive of scrape attempts so
// operators can tell when the menu site last changed format or went down.
package history

import (
	"context"
	"database/sql"
	"time"

	"hudsmenu-backend/lib/timezone"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Attempt struct {
	Time      time.Time `json:"time"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	DishCount int       `json:"dish_count"`
}

type Archive struct {
	db *sql.DB
}

func NewArchive(db *sql.DB) Archive {
	return Archive{db: db}
}

func (a Archive) Append(ctx context.Context, attempt Attempt) error {
	_, err := a.db.ExecContext(
		ctx,
		`INSERT INTO scrape_attempts (time, success, error, dish_count) VALUES (?, ?, ?, ?)`,
		attempt.Time.Unix(),
		attempt.Success,
		attempt.Error,
		attempt.DishCount,
	)
	return err
}

// Recent returns up to `limit` attempts, newest first.
func (a Archive) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	rows, err := a.db.QueryContext(
		ctx,
		`SELECT time, success, error, dish_count FROM scrape_attempts ORDER BY time DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var unix int64
		var attempt Attempt
		err := rows.Scan(&unix, &attempt.Success, &attempt.Error, &attempt.DishCount)
		if err != nil {
			return nil, err
		}
		attempt.Time = time.Unix(unix, 0).In(timezone.Location)
		out = append(out, attempt)
	}
	return out, rows.Err()
}
