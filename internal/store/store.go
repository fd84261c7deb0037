// Package store is the persistence collaborator: a workspace-scoped SQLite
// database holding the chart registry and per-chart task/link rows. The
// sync core consumes it through the narrow list/upsert/delete contract.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ganttsync/internal/model"

	_ "modernc.org/sqlite"
)

const dbFilename = "gantt.sqlite"

type Store struct {
	Dir string
}

func (s Store) DBPath() string {
	return filepath.Join(s.Dir, dbFilename)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return nil, fmt.Errorf("store: empty workspace dir")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.DBPath())
	if err != nil {
		return nil, err
	}
	// Concurrent upsert/delete batches share this file during a save.
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS charts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			chart_id TEXT NOT NULL,
			parent_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_chart ON tasks(chart_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id);`,
		`CREATE TABLE IF NOT EXISTS links (
			id TEXT PRIMARY KEY,
			chart_id TEXT NOT NULL,
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_links_chart ON links(chart_id);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// --- chart registry ---

func (s Store) CreateChart(ctx context.Context, name string) (model.Chart, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Chart{}, fmt.Errorf("chart name required")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Chart{}, err
	}
	defer db.Close()

	id, err := newRandomID("chart")
	if err != nil {
		return model.Chart{}, err
	}
	c := model.Chart{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	_, err = db.ExecContext(ctx, `INSERT INTO charts(id, name, created_at_unixms) VALUES(?, ?, ?)`,
		c.ID, c.Name, c.CreatedAt.UnixMilli())
	if err != nil {
		return model.Chart{}, err
	}
	return c, nil
}

func (s Store) ListCharts(ctx context.Context) ([]model.Chart, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, created_at_unixms FROM charts ORDER BY created_at_unixms`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Chart{}
	for rows.Next() {
		var c model.Chart
		var ms int64
		if err := rows.Scan(&c.ID, &c.Name, &ms); err != nil {
			return nil, err
		}
		c.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s Store) FindChart(ctx context.Context, id string) (model.Chart, bool, error) {
	charts, err := s.ListCharts(ctx)
	if err != nil {
		return model.Chart{}, false, err
	}
	for _, c := range charts {
		if c.ID == id {
			return c, true, nil
		}
	}
	return model.Chart{}, false, nil
}

// DeleteChart removes the chart and cascades to its tasks and links.
func (s Store) DeleteChart(ctx context.Context, id string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE chart_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE chart_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM charts WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
