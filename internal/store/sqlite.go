package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"ganttsync/internal/model"
)

func (s Store) ListTasks(ctx context.Context, chartID string) ([]model.Task, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	recs, err := readJSONRows[taskRecord](ctx, db,
		`SELECT json FROM tasks WHERE chart_id = ? ORDER BY parent_id, position`, chartID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, len(recs))
	for i, r := range recs {
		out[i] = taskFromWire(r)
	}
	return out, nil
}

func (s Store) ListLinks(ctx context.Context, chartID string) ([]model.Link, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	recs, err := readJSONRows[linkRecord](ctx, db,
		`SELECT json FROM links WHERE chart_id = ? ORDER BY id`, chartID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Link, len(recs))
	for i, r := range recs {
		out[i] = linkFromWire(r)
	}
	return out, nil
}

func (s Store) TaskIDs(ctx context.Context, chartID string) ([]string, error) {
	return s.ids(ctx, `SELECT id FROM tasks WHERE chart_id = ?`, chartID)
}

func (s Store) LinkIDs(ctx context.Context, chartID string) ([]string, error) {
	return s.ids(ctx, `SELECT id FROM links WHERE chart_id = ?`, chartID)
}

func (s Store) ids(ctx context.Context, query, chartID string) ([]string, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query, chartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// UpsertTasks inserts-or-overwrites by id. One transaction per batch.
func (s Store) UpsertTasks(ctx context.Context, chartID string, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
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

	nowMs := time.Now().UTC().UnixMilli()
	for _, t := range tasks {
		rec := taskToWire(t)
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO tasks(
			id, chart_id, parent_id, position, json, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?)`,
			rec.ID, chartID, rec.ParentID, rec.Position, string(raw), nowMs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) UpsertLinks(ctx context.Context, chartID string, links []model.Link) error {
	if len(links) == 0 {
		return nil
	}
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

	nowMs := time.Now().UTC().UnixMilli()
	for _, l := range links {
		rec := linkToWire(l)
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO links(
			id, chart_id, source_id, target_id, json, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?)`,
			rec.ID, chartID, rec.Source, rec.Target, string(raw), nowMs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) DeleteTasks(ctx context.Context, chartID string, ids []string) error {
	return s.deleteByID(ctx, `DELETE FROM tasks WHERE chart_id = ? AND id = ?`, chartID, ids)
}

func (s Store) DeleteLinks(ctx context.Context, chartID string, ids []string) error {
	return s.deleteByID(ctx, `DELETE FROM links WHERE chart_id = ? AND id = ?`, chartID, ids)
}

func (s Store) deleteByID(ctx context.Context, query, chartID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
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

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, query, chartID, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
