package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(up00005, down00005)
}

// up00005 creates the chain-level exclusivity matrix: one column per
// chain x store-class combination. Cell values are stored verbatim; some
// legacy writers stored flags, some stored counts, and readers only test
// for non-empty.
func up00005(ctx context.Context, tx *sql.Tx) error {
	cols := make([]string, 0, len(matrixCells()))
	for _, cell := range matrixCells() {
		cols = append(cols, fmt.Sprintf("%s VARCHAR(10)", cell))
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS item_exclusivity_matrix (
		id SERIAL PRIMARY KEY,
		item_code VARCHAR(32) NOT NULL,
		%s
	)`, strings.Join(cols, ",\n\t\t"))
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("creating item_exclusivity_matrix: %w", err)
	}
	return nil
}

func down00005(ctx context.Context, tx *sql.Tx) error {
	return dropTableIfPresent(ctx, tx, "item_exclusivity_matrix")
}
