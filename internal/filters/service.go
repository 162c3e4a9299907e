package filters

import (
	"context"
	"fmt"
	"time"

	"github.com/epc-retail/exclusivity-backend/internal/exclusivity"
	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
	"github.com/epc-retail/exclusivity-backend/pkg/pagination"
	"github.com/epc-retail/exclusivity-backend/pkg/redis"
)

// Service is the read side behind the filter and cascade endpoints.
type Service interface {
	Branches(ctx context.Context, input BranchesInput) ([]BranchDTO, error)
	Items(ctx context.Context, category string, page pagination.Params) (*ItemsPage, error)
	Chains(ctx context.Context) ([]LookupDTO, error)
	Brands(ctx context.Context) ([]LookupDTO, error)
	StoreClasses(ctx context.Context) ([]LookupDTO, error)
	Stores(ctx context.Context, input StoresInput) ([]BranchDTO, error)
}

type lookupStore interface {
	ListStores(ctx context.Context, chain, storeClass, brand string) ([]models.Store, error)
	ListItems(ctx context.Context, category string, afterID int64, limit int) ([]models.Item, error)
	ListChains(ctx context.Context) ([]models.Chain, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListStoreClasses(ctx context.Context) ([]models.StoreClass, error)
	MatrixExcludedCodes(ctx context.Context, cell string) ([]string, error)
	StoreExclusions(ctx context.Context, storeCodes []string) (map[string][]string, error)
}

type service struct {
	repo  lookupStore
	cache redis.LookupCache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService constructs the filter service. The cache is optional; passing
// nil disables the read-through layer.
func NewService(repo lookupStore, cache redis.LookupCache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("filters repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, ttl: ttl, logg: logg}, nil
}

// Branches lists stores with their excluded item codes merged from both
// exclusion sources. The category narrows stores to the ones carrying the
// brand. Matrix codes are resolved once per distinct cell.
func (s *service) Branches(ctx context.Context, input BranchesInput) ([]BranchDTO, error) {
	stores, err := s.repo.ListStores(ctx, input.Chain, input.StoreClass, input.Category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stores")
	}

	codes := make([]string, len(stores))
	for i, store := range stores {
		codes[i] = store.StoreCode
	}
	storeLevel, err := s.repo.StoreExclusions(ctx, codes)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: store exclusions")
	}

	matrixByCell := map[string][]string{}
	out := make([]BranchDTO, len(stores))
	for i, store := range stores {
		excluded := append([]string{}, storeLevel[store.StoreCode]...)
		if cell, err := exclusivity.CellFor(store.ChainCode, store.StoreClassification); err == nil {
			matrix, ok := matrixByCell[cell]
			if !ok {
				matrix, err = s.repo.MatrixExcludedCodes(ctx, cell)
				if err != nil {
					return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: matrix exclusions")
				}
				matrixByCell[cell] = matrix
			}
			excluded = mergeCodes(excluded, matrix)
		}
		out[i] = BranchDTO{
			BranchCode:      store.StoreCode,
			BranchName:      store.StoreName,
			Chain:           store.ChainCode,
			StoreClass:      store.StoreClassification,
			ExcludedItemIDs: excluded,
		}
	}
	return out, nil
}

// Items lists one page of catalog items, optionally narrowed to one
// category. The page is keyed on the item id; an extra row is fetched to
// decide whether a next-page cursor exists.
func (s *service) Items(ctx context.Context, category string, page pagination.Params) (*ItemsPage, error) {
	var afterID int64
	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		afterID = cursor.ID
	}
	limit := pagination.NormalizeLimit(page.Limit)
	items, err := s.repo.ListItems(ctx, category, afterID, pagination.LimitWithBuffer(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	out := &ItemsPage{}
	if len(items) > limit {
		items = items[:limit]
		out.NextCursor = pagination.EncodeCursor(pagination.Cursor{ID: items[limit-1].ID})
	}
	out.Items = newItemDTOs(items)
	return out, nil
}

func (s *service) Chains(ctx context.Context) ([]LookupDTO, error) {
	var cached []LookupDTO
	if s.cacheGet(ctx, &cached, "nbfi", "chains") {
		return cached, nil
	}
	chains, err := s.repo.ListChains(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list chains")
	}
	out := make([]LookupDTO, len(chains))
	for i, c := range chains {
		out[i] = LookupDTO{Code: c.ChainCode, Name: c.ChainName}
	}
	s.cacheSet(ctx, out, "nbfi", "chains")
	return out, nil
}

func (s *service) Brands(ctx context.Context) ([]LookupDTO, error) {
	var cached []LookupDTO
	if s.cacheGet(ctx, &cached, "nbfi", "brands") {
		return cached, nil
	}
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list brands")
	}
	out := make([]LookupDTO, len(brands))
	for i, b := range brands {
		out[i] = LookupDTO{Code: b.BrandCode, Name: b.BrandName}
	}
	s.cacheSet(ctx, out, "nbfi", "brands")
	return out, nil
}

func (s *service) StoreClasses(ctx context.Context) ([]LookupDTO, error) {
	var cached []LookupDTO
	if s.cacheGet(ctx, &cached, "nbfi", "store-classes") {
		return cached, nil
	}
	classes, err := s.repo.ListStoreClasses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list store classes")
	}
	out := make([]LookupDTO, len(classes))
	for i, c := range classes {
		out[i] = LookupDTO{Code: c.StoreClassCode, Name: c.StoreClassification}
	}
	s.cacheSet(ctx, out, "nbfi", "store-classes")
	return out, nil
}

// Stores lists stores for the cascade without the exclusion arrays.
func (s *service) Stores(ctx context.Context, input StoresInput) ([]BranchDTO, error) {
	stores, err := s.repo.ListStores(ctx, input.Chain, input.StoreClass, "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stores")
	}
	out := make([]BranchDTO, len(stores))
	for i, store := range stores {
		out[i] = BranchDTO{
			BranchCode:      store.StoreCode,
			BranchName:      store.StoreName,
			Chain:           store.ChainCode,
			StoreClass:      store.StoreClassification,
			ExcludedItemIDs: []string{},
		}
	}
	return out, nil
}

// cacheGet reports whether the key was served from cache. Cache failures are
// logged and treated as misses.
func (s *service) cacheGet(ctx context.Context, dest any, parts ...string) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.GetJSON(ctx, s.cache.LookupKey(parts...), dest)
	if err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("lookup cache read failed: %v", err))
		return false
	}
	return found
}

func (s *service) cacheSet(ctx context.Context, value any, parts ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, s.cache.LookupKey(parts...), value, s.ttl); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("lookup cache write failed: %v", err))
	}
}

// mergeCodes appends extras to base skipping duplicates, keeping base order.
func mergeCodes(base, extras []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, code := range base {
		seen[code] = struct{}{}
	}
	for _, code := range extras {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		base = append(base, code)
	}
	return base
}
