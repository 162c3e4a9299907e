package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/epc-retail/exclusivity-backend/pkg/db"
)

func init() {
	goose.AddMigrationContext(up00003, down00003)
}

// up00003 gives every brand in the lookup a column on stores. Brands added
// after the first run are picked up on the next run; columns that already
// exist are skipped.
func up00003(ctx context.Context, tx *sql.Tx) error {
	codes, err := brandCodes(ctx, tx)
	if err != nil {
		return err
	}
	for _, code := range codes {
		if err := addColumnIfMissing(ctx, tx, "stores", db.BrandColumn(code), "SMALLINT"); err != nil {
			return err
		}
	}
	return nil
}

func down00003(ctx context.Context, tx *sql.Tx) error {
	codes, err := brandCodes(ctx, tx)
	if err != nil {
		return err
	}
	for _, code := range codes {
		if err := dropColumnIfPresent(ctx, tx, "stores", db.BrandColumn(code)); err != nil {
			return err
		}
	}
	return nil
}
