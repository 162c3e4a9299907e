package filters

import (
	"context"
	"fmt"
	"regexp"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/epc-retail/exclusivity-backend/internal/exclusivity"
	"github.com/epc-retail/exclusivity-backend/pkg/db"
	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
)

// Cell identifiers come from exclusivity.CellFor, which only returns
// allowlisted names. cellRe rejects anything else before interpolation.
var cellRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Repository serves the read-only lookup queries behind the filter endpoints.
type Repository struct {
	db *gorm.DB
}

func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// ListStores returns stores, optionally narrowed by chain, store class and
// brand. The brand filter reads the synthesized brand_<code> column: only
// stores whose cell is set carry the brand.
func (r *Repository) ListStores(ctx context.Context, chain, storeClass, brand string) ([]models.Store, error) {
	q := r.db.WithContext(ctx).Model(&models.Store{})
	if chain != "" {
		q = q.Where("chain_code = ?", chain)
	}
	if storeClass != "" {
		q = q.Where("store_classification = ?", storeClass)
	}
	if brand != "" {
		if db.SanitizeBrandCode(brand) == "" {
			return nil, fmt.Errorf("invalid brand %q", brand)
		}
		col := db.BrandColumn(brand)
		if !cellRe.MatchString(col) {
			return nil, fmt.Errorf("invalid brand column %q", col)
		}
		q = q.Where(db.ColumnIsSet(col))
	}
	var stores []models.Store
	if err := q.Order("store_code").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// ListItems returns catalog items after the cursor id, optionally narrowed
// by category. Category matching is case-insensitive because the frontend
// sends display names. Rows come back in id order so the caller can cut a
// stable next-page cursor.
func (r *Repository) ListItems(ctx context.Context, category string, afterID int64, limit int) ([]models.Item, error) {
	q := r.db.WithContext(ctx).Model(&models.Item{})
	if category != "" {
		q = q.Where("LOWER(item_category) = LOWER(?)", category)
	}
	if afterID > 0 {
		q = q.Where("id > ?", afterID)
	}
	var items []models.Item
	if err := q.Order("id").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) ListChains(ctx context.Context) ([]models.Chain, error) {
	var chains []models.Chain
	if err := r.db.WithContext(ctx).Order("id").Find(&chains).Error; err != nil {
		return nil, err
	}
	return chains, nil
}

func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("id").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *Repository) ListStoreClasses(ctx context.Context) ([]models.StoreClass, error) {
	var classes []models.StoreClass
	if err := r.db.WithContext(ctx).Order("id").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

// MatrixExcludedCodes returns the item codes whose legacy matrix cell is set
// for the given cell. Unset means NULL, empty string or the literal "0".
func (r *Repository) MatrixExcludedCodes(ctx context.Context, cell string) ([]string, error) {
	if !cellRe.MatchString(cell) {
		return nil, fmt.Errorf("invalid matrix cell %q", cell)
	}
	query := fmt.Sprintf(
		"SELECT m.item_code FROM %s m WHERE %s",
		exclusivity.LegacyMatrixTable, db.ColumnIsSet("m."+cell),
	)
	var codes []string
	if err := r.db.WithContext(ctx).Raw(query).Scan(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// StoreExclusions returns store-level excluded item codes keyed by store
// code, for the given stores only. The codes are aggregated per store in the
// database so each branch comes back as a single row.
func (r *Repository) StoreExclusions(ctx context.Context, storeCodes []string) (map[string][]string, error) {
	out := map[string][]string{}
	if len(storeCodes) == 0 {
		return out, nil
	}
	var rows []struct {
		StoreCode string
		ItemCodes pq.StringArray `gorm:"type:text[]"`
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT store_code, array_agg(item_code ORDER BY item_code) AS item_codes
			FROM store_item_exclusivity
			WHERE store_code IN ?
			GROUP BY store_code`, storeCodes).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.StoreCode] = []string(row.ItemCodes)
	}
	return out, nil
}
