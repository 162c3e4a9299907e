package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(up00009, down00009)
}

// up00009 creates the store-level exclusion table. It coexists with the
// chain-level matrix; the application evaluates both through one predicate.
func up00009(ctx context.Context, tx *sql.Tx) error {
	const stmt = `CREATE TABLE IF NOT EXISTS store_item_exclusivity (
		id SERIAL PRIMARY KEY,
		store_code VARCHAR(20) NOT NULL,
		item_code VARCHAR(32) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT uq_store_item UNIQUE (store_code, item_code)
	)`
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("creating store_item_exclusivity: %w", err)
	}
	return nil
}

func down00009(ctx context.Context, tx *sql.Tx) error {
	return dropTableIfPresent(ctx, tx, "store_item_exclusivity")
}
