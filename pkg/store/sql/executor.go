package sql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/library-reports/pkg/models/store"
	"github.com/rs/zerolog"
)

// Executor runs read-only report queries against a shared connection pool.
type Executor struct {
	db      *sql.DB
	timeout time.Duration
}

// NewExecutor wraps db. A positive timeout bounds every query.
func NewExecutor(db *sql.DB, timeout time.Duration) (*Executor, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Executor{
		db:      db,
		timeout: timeout,
	}, nil
}

// Query binds args positionally and returns every row with its columns in
// result order. An empty result is not an error.
func (e *Executor) Query(ctx context.Context, query string, args ...any) ([]store.Record, error) {
	logger := zerolog.Ctx(ctx)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close report query rows")
		}
	}(rows)

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Dur("duration", time.Since(start)).
		Int("rows", len(records)).
		Msg("report query executed")

	return records, nil
}

func scanRecords(rows *sql.Rows) ([]store.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	records := make([]store.Record, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		pointers := make([]any, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		record := make(store.Record, len(cols))
		for i, name := range cols {
			record[i] = store.Field{Name: name, Value: values[i]}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}
