package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(up00008, down00008)
}

const matrixUniqueConstraint = "uq_item_exclusivity_item_code"

// up00008 removes duplicate matrix rows, keeping the lowest id per item
// code, then enforces uniqueness going forward.
func up00008(ctx context.Context, tx *sql.Tx) error {
	const dedupe = `DELETE FROM item_exclusivity_matrix a
		USING item_exclusivity_matrix b
		WHERE a.item_code = b.item_code AND a.id > b.id`
	if _, err := tx.ExecContext(ctx, dedupe); err != nil {
		return fmt.Errorf("deduplicating matrix rows: %w", err)
	}

	exists, err := constraintExists(ctx, tx, "item_exclusivity_matrix", matrixUniqueConstraint)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	addConstraint := fmt.Sprintf(`ALTER TABLE item_exclusivity_matrix ADD CONSTRAINT %s UNIQUE (item_code)`, matrixUniqueConstraint)
	if _, err := tx.ExecContext(ctx, addConstraint); err != nil {
		return fmt.Errorf("adding unique constraint: %w", err)
	}
	return nil
}

// down00008 drops the constraint. Deleted duplicates are gone for good.
func down00008(ctx context.Context, tx *sql.Tx) error {
	exists, err := constraintExists(ctx, tx, "item_exclusivity_matrix", matrixUniqueConstraint)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	drop := fmt.Sprintf(`ALTER TABLE item_exclusivity_matrix DROP CONSTRAINT %s`, matrixUniqueConstraint)
	if _, err := tx.ExecContext(ctx, drop); err != nil {
		return fmt.Errorf("dropping unique constraint: %w", err)
	}
	return nil
}
