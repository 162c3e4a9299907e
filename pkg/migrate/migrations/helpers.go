package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// Introspection guards. Every DDL statement in this package runs behind one of
// these checks so a partially applied step can be re-run without erroring.

func tableExists(ctx context.Context, tx *sql.Tx, table string) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1
	)`
	var exists bool
	if err := tx.QueryRowContext(ctx, q, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking table %s: %w", table, err)
	}
	return exists, nil
}

func columnExists(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
	)`
	var exists bool
	if err := tx.QueryRowContext(ctx, q, table, column).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	return exists, nil
}

func columnType(ctx context.Context, tx *sql.Tx, table, column string) (string, error) {
	const q = `SELECT data_type FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2`
	var dataType string
	err := tx.QueryRowContext(ctx, q, table, column).Scan(&dataType)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("checking type of %s.%s: %w", table, column, err)
	}
	return dataType, nil
}

func constraintExists(ctx context.Context, tx *sql.Tx, table, constraint string) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM information_schema.table_constraints
		WHERE table_schema = current_schema() AND table_name = $1 AND constraint_name = $2
	)`
	var exists bool
	if err := tx.QueryRowContext(ctx, q, table, constraint).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking constraint %s on %s: %w", constraint, table, err)
	}
	return exists, nil
}

func indexExists(ctx context.Context, tx *sql.Tx, index string) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM pg_indexes
		WHERE schemaname = current_schema() AND indexname = $1
	)`
	var exists bool
	if err := tx.QueryRowContext(ctx, q, index).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking index %s: %w", index, err)
	}
	return exists, nil
}

func addColumnIfMissing(ctx context.Context, tx *sql.Tx, table, column, definition string) error {
	exists, err := columnExists(ctx, tx, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	stmt := fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, definition)
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("adding column %s.%s: %w", table, column, err)
	}
	return nil
}

func dropColumnIfPresent(ctx context.Context, tx *sql.Tx, table, column string) error {
	exists, err := columnExists(ctx, tx, table, column)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	stmt := fmt.Sprintf(`ALTER TABLE %s DROP COLUMN %s`, table, column)
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("dropping column %s.%s: %w", table, column, err)
	}
	return nil
}

func dropTableIfPresent(ctx context.Context, tx *sql.Tx, table string) error {
	stmt := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("dropping table %s: %w", table, err)
	}
	return nil
}

// brandCodes reads the brand lookup inside the migration transaction. Fan-out
// steps iterate this so a re-run picks up brands added since the last run.
func brandCodes(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT brand_code FROM brands ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scanning brand code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
