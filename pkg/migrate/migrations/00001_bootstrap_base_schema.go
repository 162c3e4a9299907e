package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(up00001, down00001)
}

// up00001 replays the legacy schema dump statement by statement, in file
// order. A failing statement aborts the run; the idempotence guards in the
// dump itself (IF NOT EXISTS, ON CONFLICT) make a re-run safe.
func up00001(ctx context.Context, tx *sql.Tx) error {
	for i, stmt := range SplitStatements(baseSchemaDump) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap statement %d failed: %w", i+1, err)
		}
	}
	return nil
}

// down00001 drops the tables the dump created, in reverse order.
func down00001(ctx context.Context, tx *sql.Tx) error {
	names := CreateTableNames(baseSchemaDump)
	for i := len(names) - 1; i >= 0; i-- {
		if err := dropTableIfPresent(ctx, tx, names[i]); err != nil {
			return err
		}
	}
	return nil
}
