package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/larkin/go-errand/trace"
	"github.com/larkin/go-errand/trace/store/migrations"
)

// PostgresStore implements trace.Store using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed trace store
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := runPostgresMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runPostgresMigrations(db *sql.DB) error {
	data, err := migrations.Postgres.ReadFile("postgres/001_init.sql")
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	_, err = db.Exec(string(data))
	if err != nil {
		return fmt.Errorf("exec migration: %w", err)
	}
	return nil
}

func (s *PostgresStore) Add(ctx context.Context, t trace.RunTrace) error {
	tags, metadata, spans, err := marshalRunJSON(t)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (
			trace_id, session_id, user_id, timestamp, input, output,
			elapsed_ms, input_tokens, output_tokens, tool_calls,
			iterations, status, tags, metadata, spans
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (trace_id) DO UPDATE SET
			session_id = EXCLUDED.session_id,
			user_id = EXCLUDED.user_id,
			timestamp = EXCLUDED.timestamp,
			input = EXCLUDED.input,
			output = EXCLUDED.output,
			elapsed_ms = EXCLUDED.elapsed_ms,
			input_tokens = EXCLUDED.input_tokens,
			output_tokens = EXCLUDED.output_tokens,
			tool_calls = EXCLUDED.tool_calls,
			iterations = EXCLUDED.iterations,
			status = EXCLUDED.status,
			tags = EXCLUDED.tags,
			metadata = EXCLUDED.metadata,
			spans = EXCLUDED.spans`,
		t.TraceID, t.SessionID, t.UserID, t.Timestamp, t.Input, t.Output,
		t.ElapsedMs, t.InputTokens, t.OutputTokens, t.ToolCalls,
		t.Iterations, t.Status, tags, metadata, spans,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (trace.RunTrace, error) {
	var t trace.RunTrace
	var tags, metadata, spans string

	err := s.db.QueryRowContext(ctx, `
		SELECT trace_id, session_id, user_id, timestamp, input, output,
			   elapsed_ms, input_tokens, output_tokens, tool_calls,
			   iterations, status, tags, metadata, spans
		FROM runs WHERE trace_id = $1`, id).Scan(
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

func (s *PostgresStore) List(ctx context.Context) ([]trace.RunTrace, error) {
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

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE trace_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

func (s *PostgresStore) Summary(ctx context.Context) (trace.MetricsSummary, error) {
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

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
