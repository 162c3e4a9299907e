package exclusivity

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/epc-retail/exclusivity-backend/pkg/db"
	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
)

// Matrix table names. The NBFI line mirrors the legacy chain matrix layout.
var (
	LegacyMatrixTable = models.ItemExclusivityMatrix{}.TableName()
	NBFIMatrixTable   = models.NBFIItemExclusivityMatrix{}.TableName()
)

var (
	legacyChains  = []string{"VCH", "SMH", "SMO"}
	storeClasses  = []string{"ASEH", "BSH", "CSM", "DSS", "ESES"}
	altChainCells = []string{"sm", "rds", "wds"}
)

// validCells is the closed set of combination columns. Cell names reach SQL
// as identifiers, so anything outside this set is rejected before query
// building.
var validCells = buildValidCells()

func buildValidCells() map[string]struct{} {
	cells := make(map[string]struct{})
	for _, chain := range legacyChains {
		for _, class := range storeClasses {
			cells[db.MatrixCell(chain, class)] = struct{}{}
		}
	}
	for _, cell := range altChainCells {
		cells[cell] = struct{}{}
	}
	return cells
}

// CellFor maps a chain + store-class pair onto its matrix column.
func CellFor(chainCode, storeClassCode string) (string, error) {
	cell := db.MatrixCell(chainCode, storeClassCode)
	if _, ok := validCells[cell]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown chain/store-class combination %s/%s", chainCode, storeClassCode))
	}
	return cell, nil
}

// cellIsSet renders the "non-empty" rule for a matrix cell through the
// shared builder in pkg/db.
func cellIsSet(cell string) string {
	return db.ColumnIsSet("m." + cell)
}

// storeScopeExclusionExists matches items carried by a store-level exclusion
// at any branch inside the chain + store-class scope. Bound args: chain code,
// store classification.
const storeScopeExclusionExists = `EXISTS (
	SELECT 1 FROM store_item_exclusivity se
	JOIN stores s ON s.store_code = se.store_code
	WHERE se.item_code = i.item_code AND s.chain_code = ? AND s.store_classification = ?
)`

// Repository owns row-level access to the matrix and lookup tables. Matrix
// cells are addressed through raw SQL because the columns are synthesized by
// migrations and not present on the structs.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

func checkTable(table string) error {
	if table != LegacyMatrixTable && table != NBFIMatrixTable {
		return fmt.Errorf("unknown matrix table %q", table)
	}
	return nil
}

func checkCell(cell string) error {
	if _, ok := validCells[cell]; !ok {
		return fmt.Errorf("unknown matrix cell %q", cell)
	}
	return nil
}

// UpsertCell marks itemCode for the combination, creating the matrix row if
// needed. The stored value is written as given; existing raw values in other
// cells stay untouched.
func (r *Repository) UpsertCell(ctx context.Context, table, cell, itemCode, value string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if err := checkCell(cell); err != nil {
		return err
	}
	stmt := fmt.Sprintf(`INSERT INTO %s (item_code, %s) VALUES (?, ?)
		ON CONFLICT (item_code) DO UPDATE SET %s = EXCLUDED.%s`, table, cell, cell, cell)
	return r.db.WithContext(ctx).Exec(stmt, itemCode, value).Error
}

// ClearCell unsets the combination for itemCode. Returns the number of rows
// touched so the caller can distinguish "was not marked".
func (r *Repository) ClearCell(ctx context.Context, table, cell, itemCode string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	if err := checkCell(cell); err != nil {
		return 0, err
	}
	stmt := fmt.Sprintf(`UPDATE %s m SET %s = NULL WHERE m.item_code = ? AND %s`, table, cell, cellIsSet(cell))
	res := r.db.WithContext(ctx).Exec(stmt, itemCode)
	return res.RowsAffected, res.Error
}

// CellValue returns the raw stored value for the combination, nil when the
// row or cell is absent.
func (r *Repository) CellValue(ctx context.Context, table, cell, itemCode string) (*string, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if err := checkCell(cell); err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf(`SELECT m.%s FROM %s m WHERE m.item_code = ?`, cell, table)
	var value *string
	res := r.db.WithContext(ctx).Raw(stmt, itemCode).Scan(&value)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return value, nil
}

// FindItemByCode loads the first catalog row for the code.
func (r *Repository) FindItemByCode(ctx context.Context, itemCode string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "item_code = ?", itemCode).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMarked returns the brand's catalog items excluded for the combination,
// whether the exclusion lives in the matrix cell or on a branch inside the
// chain + store-class scope. Brand matching is case-insensitive.
func (r *Repository) ListMarked(ctx context.Context, table, cell, brand, chain, storeClass string) ([]models.Item, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if err := checkCell(cell); err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf(`SELECT i.id, i.item_code, i.item_description, i.item_category
		FROM item_list i
		WHERE LOWER(i.item_category) = LOWER(?)
		AND (EXISTS (
			SELECT 1 FROM %s m WHERE m.item_code = i.item_code AND %s
		) OR %s)
		ORDER BY i.item_code`, table, cellIsSet(cell), storeScopeExclusionExists)
	var items []models.Item
	if err := r.db.WithContext(ctx).Raw(stmt, strings.TrimSpace(brand), chain, storeClass).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListAvailable returns the brand's catalog minus items already excluded for
// the exact combination through either source.
func (r *Repository) ListAvailable(ctx context.Context, table, cell, brand, chain, storeClass string) ([]models.Item, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if err := checkCell(cell); err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf(`SELECT i.id, i.item_code, i.item_description, i.item_category
		FROM item_list i
		WHERE LOWER(i.item_category) = LOWER(?)
		AND NOT EXISTS (
			SELECT 1 FROM %s m WHERE m.item_code = i.item_code AND %s
		)
		AND NOT %s
		ORDER BY i.item_code`, table, cellIsSet(cell), storeScopeExclusionExists)
	var items []models.Item
	if err := r.db.WithContext(ctx).Raw(stmt, strings.TrimSpace(brand), chain, storeClass).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindStore loads a branch row.
func (r *Repository) FindStore(ctx context.Context, storeCode string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "store_code = ?", storeCode).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// StoreExclusionExists reports whether a store-level exclusion row exists.
func (r *Repository) StoreExclusionExists(ctx context.Context, storeCode, itemCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StoreItemExclusivity{}).
		Where("store_code = ? AND item_code = ?", storeCode, itemCode).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ResolveChainName maps a display name to its chain code, case-insensitive.
func (r *Repository) ResolveChainName(ctx context.Context, name string) (string, error) {
	var chain models.Chain
	err := r.db.WithContext(ctx).
		Where("LOWER(chain_name) = LOWER(?) OR LOWER(chain_code) = LOWER(?)", strings.TrimSpace(name), strings.TrimSpace(name)).
		First(&chain).Error
	if err != nil {
		return "", err
	}
	return chain.ChainCode, nil
}

// ResolveBrandName maps a display name to its brand code, case-insensitive.
func (r *Repository) ResolveBrandName(ctx context.Context, name string) (string, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).
		Where("LOWER(brand_name) = LOWER(?) OR LOWER(brand_code) = LOWER(?)", strings.TrimSpace(name), strings.TrimSpace(name)).
		First(&brand).Error
	if err != nil {
		return "", err
	}
	return brand.BrandCode, nil
}

// ResolveStoreClassName maps a classification display name to its code.
func (r *Repository) ResolveStoreClassName(ctx context.Context, name string) (string, error) {
	var class models.StoreClass
	err := r.db.WithContext(ctx).
		Where("LOWER(store_classification) = LOWER(?) OR LOWER(store_class_code) = LOWER(?)", strings.TrimSpace(name), strings.TrimSpace(name)).
		First(&class).Error
	if err != nil {
		return "", err
	}
	return class.StoreClassCode, nil
}
