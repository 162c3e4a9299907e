package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(up00012, down00012)
}

// up00012 creates the IT asset tracker tables. An asset has at most one
// open assignment; the partial unique index enforces it.
func up00012(ctx context.Context, tx *sql.Tx) error {
	const assets = `CREATE TABLE IF NOT EXISTS assets (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		asset_tag VARCHAR(50) NOT NULL,
		asset_type VARCHAR(30) NOT NULL,
		brand VARCHAR(100),
		model VARCHAR(100),
		serial_number VARCHAR(100),
		purchase_cost NUMERIC(12,2),
		status VARCHAR(20) NOT NULL DEFAULT 'available',
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT uq_assets_asset_tag UNIQUE (asset_tag)
	)`
	if _, err := tx.ExecContext(ctx, assets); err != nil {
		return fmt.Errorf("creating assets: %w", err)
	}

	const assignments = `CREATE TABLE IF NOT EXISTS asset_assignments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		asset_id UUID NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
		assignee_name VARCHAR(200) NOT NULL,
		assignee_email VARCHAR(200) NOT NULL,
		checked_out_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		checked_in_at TIMESTAMPTZ,
		notes TEXT
	)`
	if _, err := tx.ExecContext(ctx, assignments); err != nil {
		return fmt.Errorf("creating asset_assignments: %w", err)
	}

	exists, err := indexExists(ctx, tx, "uq_asset_assignments_open")
	if err != nil {
		return err
	}
	if !exists {
		const openIdx = `CREATE UNIQUE INDEX uq_asset_assignments_open
			ON asset_assignments (asset_id) WHERE checked_in_at IS NULL`
		if _, err := tx.ExecContext(ctx, openIdx); err != nil {
			return fmt.Errorf("creating open-assignment index: %w", err)
		}
	}
	return nil
}

func down00012(ctx context.Context, tx *sql.Tx) error {
	if err := dropTableIfPresent(ctx, tx, "asset_assignments"); err != nil {
		return err
	}
	return dropTableIfPresent(ctx, tx, "assets")
}
