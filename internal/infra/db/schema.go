package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema/sqlite.sql
var sqliteSchema string

//go:embed schema/postgres.sql
var postgresSchema string

// ApplySchema creates the content tables for driver if they do not exist.
// Production stores are provisioned by the publishing tooling; this is for
// local development and tests.
func ApplySchema(ctx context.Context, db *sql.DB, driver string) error {
	stmts, err := SchemaStatements(driver)
	if err != nil {
		return err
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ApplySchema: statement %d: %w", i+1, err)
		}
	}
	return nil
}

// SchemaStatements returns the DDL statements for driver in execution order.
func SchemaStatements(driver string) ([]string, error) {
	var schema string
	switch driver {
	case DriverSQLite, "sqlite3":
		schema = sqliteSchema
	case DriverPostgres, "pgx":
		schema = postgresSchema
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return splitStatements(schema), nil
}

func splitStatements(schema string) []string {
	var stmts []string
	for _, chunk := range strings.Split(schema, ";") {
		if stmt := stripComments(chunk); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func stripComments(chunk string) string {
	lines := strings.Split(chunk, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
