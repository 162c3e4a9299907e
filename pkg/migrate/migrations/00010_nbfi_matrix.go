package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/epc-retail/exclusivity-backend/pkg/db"
)

func init() {
	goose.AddMigrationContext(up00010, down00010)
}

// up00010 creates the NBFI matrix: same cell layout as the chain-level one,
// plus a fan-out brand column per lookup row. The brand loop re-runs safely
// as brands are added.
func up00010(ctx context.Context, tx *sql.Tx) error {
	cells := append(matrixCells(), altChainCells...)
	cols := make([]string, 0, len(cells))
	for _, cell := range cells {
		cols = append(cols, fmt.Sprintf("%s VARCHAR(10)", cell))
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS nbfi_item_exclusivity_matrix (
		id SERIAL PRIMARY KEY,
		item_code VARCHAR(32) NOT NULL,
		%s,
		CONSTRAINT uq_nbfi_item_exclusivity_item_code UNIQUE (item_code)
	)`, strings.Join(cols, ",\n\t\t"))
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("creating nbfi_item_exclusivity_matrix: %w", err)
	}

	codes, err := brandCodes(ctx, tx)
	if err != nil {
		return err
	}
	for _, code := range codes {
		if err := addColumnIfMissing(ctx, tx, "nbfi_item_exclusivity_matrix", db.BrandColumn(code), "VARCHAR(10)"); err != nil {
			return err
		}
	}
	return nil
}

func down00010(ctx context.Context, tx *sql.Tx) error {
	return dropTableIfPresent(ctx, tx, "nbfi_item_exclusivity_matrix")
}
