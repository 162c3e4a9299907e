package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(up00004, down00004)
}

// up00004 consolidates the legacy items table into item_list. The existence
// of the two tables is the discriminator:
//
//	only items      -> rename it
//	both            -> copy distinct codes into item_list, drop items
//	only item_list  -> nothing to do
func up00004(ctx context.Context, tx *sql.Tx) error {
	legacyExists, err := tableExists(ctx, tx, "items")
	if err != nil {
		return err
	}
	listExists, err := tableExists(ctx, tx, "item_list")
	if err != nil {
		return err
	}

	switch {
	case legacyExists && !listExists:
		if _, err := tx.ExecContext(ctx, `ALTER TABLE items RENAME TO item_list`); err != nil {
			return fmt.Errorf("renaming items to item_list: %w", err)
		}

	case legacyExists && listExists:
		const copyStmt = `INSERT INTO item_list (item_code, item_description, item_category)
			SELECT DISTINCT i.item_code, i.item_description, i.item_category
			FROM items i
			WHERE NOT EXISTS (
				SELECT 1 FROM item_list l WHERE l.item_code = i.item_code
			)`
		if _, err := tx.ExecContext(ctx, copyStmt); err != nil {
			return fmt.Errorf("copying legacy items: %w", err)
		}
		if err := dropTableIfPresent(ctx, tx, "items"); err != nil {
			return err
		}

	default:
		// only item_list, or neither: nothing to consolidate
	}
	return nil
}

// down00004 restores the legacy name. The copied rows cannot be un-merged, so
// down after the both-tables branch degrades to a plain rename.
func down00004(ctx context.Context, tx *sql.Tx) error {
	listExists, err := tableExists(ctx, tx, "item_list")
	if err != nil {
		return err
	}
	legacyExists, err := tableExists(ctx, tx, "items")
	if err != nil {
		return err
	}
	if listExists && !legacyExists {
		if _, err := tx.ExecContext(ctx, `ALTER TABLE item_list RENAME TO items`); err != nil {
			return fmt.Errorf("renaming item_list back to items: %w", err)
		}
	}
	return nil
}
