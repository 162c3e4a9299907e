package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/epc-retail/exclusivity-backend/pkg/db"
)

func init() {
	goose.AddMigrationContext(up00006, down00006)
}

// up00006 widens the brand flag columns on stores from SMALLINT to
// VARCHAR(10). Legacy writers used 0 and NULL interchangeably for "unset",
// so zeros are folded into NULL before the type change; the down step folds
// them back. Columns already widened are skipped, which also covers brands
// whose columns were created as VARCHAR from the start.
func up00006(ctx context.Context, tx *sql.Tx) error {
	codes, err := brandCodes(ctx, tx)
	if err != nil {
		return err
	}
	for _, code := range codes {
		column := db.BrandColumn(code)
		dataType, err := columnType(ctx, tx, "stores", column)
		if err != nil {
			return err
		}
		if dataType != "smallint" {
			continue
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`UPDATE stores SET %s = NULL WHERE %s = 0`, column, column)); err != nil {
			return fmt.Errorf("normalizing zeros in stores.%s: %w", column, err)
		}
		alter := fmt.Sprintf(`ALTER TABLE stores ALTER COLUMN %s TYPE VARCHAR(10) USING %s::varchar`, column, column)
		if _, err := tx.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("widening stores.%s: %w", column, err)
		}
	}
	return nil
}

func down00006(ctx context.Context, tx *sql.Tx) error {
	codes, err := brandCodes(ctx, tx)
	if err != nil {
		return err
	}
	for _, code := range codes {
		column := db.BrandColumn(code)
		dataType, err := columnType(ctx, tx, "stores", column)
		if err != nil {
			return err
		}
		if dataType != "character varying" {
			continue
		}
		narrow := fmt.Sprintf(`ALTER TABLE stores ALTER COLUMN %s TYPE SMALLINT USING NULLIF(%s, '')::smallint`, column, column)
		if _, err := tx.ExecContext(ctx, narrow); err != nil {
			return fmt.Errorf("narrowing stores.%s: %w", column, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`UPDATE stores SET %s = 0 WHERE %s IS NULL`, column, column)); err != nil {
			return fmt.Errorf("restoring zeros in stores.%s: %w", column, err)
		}
	}
	return nil
}
