package backend

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Relational executes the untouched SQL string against a database/sql
// store. Two drivers are registered: "pgx" for the Postgres side of the
// experiment, and "sqlite3" for embedded runs and tests that should not
// need a server.
type Relational struct {
	db   *sql.DB
	name string
}

// OpenRelational opens a relational store. driver is "pgx" or "sqlite3";
// dsn is the driver's connection string. The connection is verified with a
// ping before returning.
func OpenRelational(ctx context.Context, driver, dsn string) (*Relational, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	name := "postgres"
	if driver == "sqlite3" {
		name = "sqlite"
		// SQLite allows one writer; a single connection avoids
		// SQLITE_BUSY under the concurrent harness.
		db.SetMaxOpenConns(1)
	}
	return &Relational{db: db, name: name}, nil
}

func (r *Relational) Name() string { return r.name }

// Run executes the raw SQL and scans every row into a column-name map.
// Elapsed covers execution plus the full fetch.
func (r *Relational) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, req.SQL)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			// Drivers hand back []byte for text columns; normalize to
			// string so rows compare cleanly across backends.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	elapsed := time.Since(start)

	return &Result{
		Backend: r.name,
		Rows:    out,
		Count:   len(out),
		Elapsed: elapsed,
	}, nil
}

func (r *Relational) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Relational) Close(context.Context) error {
	return r.db.Close()
}

// DB exposes the underlying handle for the seeder.
func (r *Relational) DB() *sql.DB { return r.db }
