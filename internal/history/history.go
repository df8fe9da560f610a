// Package history keeps a local record of conversion runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepo struct {
	db *sql.DB
}

// Open opens (creating if needed) the run-history database at path.
func Open(path string) (*SQLiteRepo, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(`
		create table if not exists runs (
			id integer primary key autoincrement,
			deck_path text not null,
			output_path text not null,
			segments integer not null,
			duration real not null,
			status text not null,
			error text not null default '',
			created_at text not null default (datetime('now'))
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepo) Record(ctx context.Context, run Run) error {
	_, err := r.db.ExecContext(
		ctx,
		"insert into runs (deck_path, output_path, segments, duration, status, error) values ($1, $2, $3, $4, $5, $6)",
		run.DeckPath,
		run.OutputPath,
		run.Segments,
		run.Duration,
		run.Status,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("persisting run into sqlite: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *SQLiteRepo) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(
		ctx,
		"select id, deck_path, output_path, segments, duration, status, error, created_at from runs order by id desc limit $1",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.DeckPath, &run.OutputPath, &run.Segments, &run.Duration, &run.Status, &run.Error, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
