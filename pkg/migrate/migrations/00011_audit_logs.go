package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(up00011, down00011)
}

// up00011 creates the append-only audit trail. Application code only ever
// inserts and lists; no migration mutates existing rows.
func up00011(ctx context.Context, tx *sql.Tx) error {
	const stmt = `CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		entity_type VARCHAR(50) NOT NULL,
		entity_id VARCHAR(100) NOT NULL,
		action VARCHAR(50) NOT NULL,
		entity_name VARCHAR(200),
		user_id VARCHAR(100),
		user_name VARCHAR(200),
		user_email VARCHAR(200),
		ip_address VARCHAR(45),
		details JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("creating audit_logs: %w", err)
	}

	exists, err := indexExists(ctx, tx, "idx_audit_logs_entity")
	if err != nil {
		return err
	}
	if !exists {
		if _, err := tx.ExecContext(ctx, `CREATE INDEX idx_audit_logs_entity ON audit_logs (entity_type, entity_id)`); err != nil {
			return fmt.Errorf("creating audit index: %w", err)
		}
	}
	return nil
}

func down00011(ctx context.Context, tx *sql.Tx) error {
	return dropTableIfPresent(ctx, tx, "audit_logs")
}
