package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(up00002, down00002)
}

type lookupSeed struct {
	code string
	name string
}

var (
	chainSeeds = []lookupSeed{
		{"VCH", "VARIOUS CHAIN"},
		{"SMH", "SM HOMEWORLD"},
		{"SMO", "SM OUTRIGHT"},
	}
	brandSeeds = []lookupSeed{
		{"Barbizon", "BARBIZON"},
		{"Bench Body", "BENCH BODY"},
		{"World Balance", "WORLD BALANCE"},
		{"Happy Feet", "HAPPY FEET"},
		{"Soen", "SOEN"},
		{"Avon", "AVON"},
	}
	storeClassSeeds = []lookupSeed{
		{"ASEH", "A Stores - Extra High"},
		{"BSH", "B Stores - High"},
		{"CSM", "C Stores - Medium"},
		{"DSS", "D Stores - Small"},
		{"ESES", "E Stores - Extra Small"},
	}
)

func up00002(ctx context.Context, tx *sql.Tx) error {
	inserts := []struct {
		stmt  string
		seeds []lookupSeed
	}{
		{`INSERT INTO chains (chain_code, chain_name) VALUES ($1, $2) ON CONFLICT (chain_code) DO NOTHING`, chainSeeds},
		{`INSERT INTO brands (brand_code, brand_name) VALUES ($1, $2) ON CONFLICT (brand_code) DO NOTHING`, brandSeeds},
		{`INSERT INTO store_classes (store_class_code, store_classification) VALUES ($1, $2) ON CONFLICT (store_class_code) DO NOTHING`, storeClassSeeds},
	}
	for _, group := range inserts {
		for _, seed := range group.seeds {
			if _, err := tx.ExecContext(ctx, group.stmt, seed.code, seed.name); err != nil {
				return fmt.Errorf("seeding %q: %w", seed.code, err)
			}
		}
	}
	return nil
}

func down00002(ctx context.Context, tx *sql.Tx) error {
	deletes := []struct {
		stmt  string
		seeds []lookupSeed
	}{
		{`DELETE FROM chains WHERE chain_code = $1`, chainSeeds},
		{`DELETE FROM brands WHERE brand_code = $1`, brandSeeds},
		{`DELETE FROM store_classes WHERE store_class_code = $1`, storeClassSeeds},
	}
	for _, group := range deletes {
		for _, seed := range group.seeds {
			if _, err := tx.ExecContext(ctx, group.stmt, seed.code); err != nil {
				return fmt.Errorf("unseeding %q: %w", seed.code, err)
			}
		}
	}
	return nil
}
