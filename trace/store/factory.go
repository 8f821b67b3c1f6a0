package store

import (
	"fmt"
	"strings"

	"github.com/larkin/go-errand/trace"
)

// NewStore creates a trace store based on the DSN.
// - Empty DSN: SQLite at data/errand.db
// - postgres:// or postgresql://: PostgreSQL
// - Anything else: SQLite at the specified path
func NewStore(dsn string) (trace.Store, error) {
	if dsn == "" {
		return NewSQLiteStore("data/errand.db")
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		ts, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return ts, nil
	}

	return NewSQLiteStore(dsn)
}
