package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/larkin/go-errand/trace"
	"github.com/larkin/go-errand/trace/store/migrations"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements trace.Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed trace store
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "data/errand.db"
	}

	dir := filepath.Dir(dsn)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := runSQLiteMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func runSQLiteMigrations(db *sql.DB) error {
	data, err := migrations.SQLite.ReadFile("sqlite/001_init.sql")
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	_, err = db.Exec(string(data))
	if err != nil {
		return fmt.Errorf("exec migration: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Add(ctx context.Context, t trace.RunTrace) error {
	tags, metadata, spans, err := marshalRunJSON(t)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (
			trace_id, session_id, user_id, timestamp, input, output,
			elapsed_ms, input_tokens, output_tokens, tool_calls,
			iterations, status, tags, metadata, spans
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TraceID, t.SessionID, t.UserID, t.Timestamp, t.Input, t.Output,
		t.ElapsedMs, t.InputTokens, t.OutputTokens, t.ToolCalls,
		t.Iterations, t.Status, tags, metadata, spans,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (trace.RunTrace, error) {
	var t trace.RunTrace
	var tags, metadata, spans string

	err := s.db.QueryRowContext(ctx, `
		SELECT trace_id, session_id, user_id, timestamp, input, output,
			   elapsed_ms, input_tokens, output_tokens, tool_calls,
			   iterations, status, tags, metadata, spans
		FROM runs WHERE trace_id = ?`, id).Scan(
		&t.TraceID, &t.SessionID, &t.UserID, &t.Timestamp, &t.Input, &t.Output,
		&t.ElapsedMs, &t.InputTokens, &t.OutputTokens, &t.ToolCalls,
		&t.Iterations, &t.Status, &tags, &metadata, &spans,
	)
	if err == sql.ErrNoRows {
		return t, trace.ErrNotFound
	}
	if err != nil {
		return t, fmt.Errorf("query run: %w", err)
	}

	if err := unmarshalRunJSON(&t, tags, metadata, spans); err != nil {
		return t, err
	}
	return t, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]trace.RunTrace, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trace_id, session_id, user_id, timestamp, input, output,
			   elapsed_ms, input_tokens, output_tokens, tool_calls,
			   iterations, status, tags, metadata, spans
		FROM runs ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []trace.RunTrace
	for rows.Next() {
		var t trace.RunTrace
		var tags, metadata, spans string
		if err := rows.Scan(
			&t.TraceID, &t.SessionID, &t.UserID, &t.Timestamp, &t.Input, &t.Output,
			&t.ElapsedMs, &t.InputTokens, &t.OutputTokens, &t.ToolCalls,
			&t.Iterations, &t.Status, &tags, &metadata, &spans,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := unmarshalRunJSON(&t, tags, metadata, spans); err != nil {
			return nil, err
		}
		runs = append(runs, t)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE trace_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Summary(ctx context.Context) (trace.MetricsSummary, error) {
	var m trace.MetricsSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(SUM(tool_calls), 0),
			COALESCE(AVG(elapsed_ms), 0)
		FROM runs`).Scan(
		&m.TotalTraces, &m.TotalInputTokens, &m.TotalOutputTokens,
		&m.TotalToolCalls, &m.AvgLatencyMs,
	)
	if err != nil {
		return m, fmt.Errorf("query summary: %w", err)
	}
	return m, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func marshalRunJSON(t trace.RunTrace) (tags, metadata, spans string, err error) {
	tagsB, err := json.Marshal(t.Tags)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal tags: %w", err)
	}
	metaB, err := json.Marshal(t.Metadata)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal metadata: %w", err)
	}
	spansB, err := json.Marshal(t.Spans)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal spans: %w", err)
	}
	return string(tagsB), string(metaB), string(spansB), nil
}

func unmarshalRunJSON(t *trace.RunTrace, tags, metadata, spans string) error {
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := json.Unmarshal([]byte(metadata), &t.Metadata); err != nil {
		return fmt.Errorf("unmarshal metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(spans), &t.Spans); err != nil {
		return fmt.Errorf("unmarshal spans: %w", err)
	}
	return nil
}
