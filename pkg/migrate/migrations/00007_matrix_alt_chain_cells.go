package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(up00007, down00007)
}

// up00007 adds cells for the alternate chain codes (sm, rds, wds). These
// chains never got lookup rows, so the columns are hand-listed instead of
// derived from the chain table.
func up00007(ctx context.Context, tx *sql.Tx) error {
	for _, cell := range altChainCells {
		if err := addColumnIfMissing(ctx, tx, "item_exclusivity_matrix", cell, "VARCHAR(10)"); err != nil {
			return err
		}
	}
	return nil
}

func down00007(ctx context.Context, tx *sql.Tx) error {
	for _, cell := range altChainCells {
		if err := dropColumnIfPresent(ctx, tx, "item_exclusivity_matrix", cell); err != nil {
			return err
		}
	}
	return nil
}
