package filters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/epc-retail/exclusivity-backend/pkg/db"
	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
	"github.com/epc-retail/exclusivity-backend/pkg/pagination"
)

type fakeLookupStore struct {
	stores      []models.Store
	brandStores map[string][]string // brand column -> store codes carrying it
	items       []models.Item
	chains      []models.Chain
	brands      []models.Brand
	classes     []models.StoreClass
	matrix      map[string][]string
	storeExcl   map[string][]string
	matrixCalls int
	chainCalls  int
}

func (f *fakeLookupStore) carriesBrand(storeCode, brand string) bool {
	for _, code := range f.brandStores[db.BrandColumn(brand)] {
		if code == storeCode {
			return true
		}
	}
	return false
}

func (f *fakeLookupStore) ListStores(_ context.Context, chain, storeClass, brand string) ([]models.Store, error) {
	out := []models.Store{}
	for _, s := range f.stores {
		if chain != "" && s.ChainCode != chain {
			continue
		}
		if storeClass != "" && s.StoreClassification != storeClass {
			continue
		}
		if brand != "" && !f.carriesBrand(s.StoreCode, brand) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeLookupStore) ListItems(_ context.Context, category string, afterID int64, limit int) ([]models.Item, error) {
	out := []models.Item{}
	for _, item := range f.items {
		if category != "" && !strings.EqualFold(item.ItemCategory, category) {
			continue
		}
		if item.ID <= afterID {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeLookupStore) ListChains(context.Context) ([]models.Chain, error) {
	f.chainCalls++
	return f.chains, nil
}

func (f *fakeLookupStore) ListBrands(context.Context) ([]models.Brand, error) {
	return f.brands, nil
}

func (f *fakeLookupStore) ListStoreClasses(context.Context) ([]models.StoreClass, error) {
	return f.classes, nil
}

func (f *fakeLookupStore) MatrixExcludedCodes(_ context.Context, cell string) ([]string, error) {
	f.matrixCalls++
	return f.matrix[cell], nil
}

func (f *fakeLookupStore) StoreExclusions(_ context.Context, storeCodes []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, code := range storeCodes {
		if rows, ok := f.storeExcl[code]; ok {
			out[code] = rows
		}
	}
	return out, nil
}

type fakeCache struct {
	data map[string]string
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = string(raw)
	return nil
}

func (f *fakeCache) LookupKey(parts ...string) string {
	return "epc:lookup:" + strings.Join(parts, ":")
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func testFilterService(t *testing.T, store *fakeLookupStore, cache *fakeCache) Service {
	t.Helper()
	logg := logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard})
	var svc Service
	var err error
	if cache != nil {
		svc, err = NewService(store, cache, time.Minute, logg)
	} else {
		svc, err = NewService(store, nil, time.Minute, logg)
	}
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestBranchesMergesBothExclusionSources(t *testing.T) {
	store := &fakeLookupStore{
		stores: []models.Store{
			{StoreCode: "C-LAND001", StoreName: "LANDMARK MAKATI", ChainCode: "VCH", StoreClassification: "ASEH"},
			{StoreCode: "C-ROBN014", StoreName: "ROBINSONS GALLERIA", ChainCode: "VCH", StoreClassification: "ASEH"},
			{StoreCode: "S-NORT002", StoreName: "SM NORTH EDSA", ChainCode: "SMH", StoreClassification: "BSH"},
		},
		matrix:    map[string][]string{"vch_aseh": {"I1", "I2"}},
		storeExcl: map[string][]string{"C-LAND001": {"I2", "I3"}},
	}
	svc := testFilterService(t, store, nil)

	branches, err := svc.Branches(context.Background(), BranchesInput{Chain: "VCH"})
	if err != nil {
		t.Fatalf("branches failed: %v", err)
	}
	if len(branches) != 2 {
		t.Fatalf("expected 2 VCH branches, got %+v", branches)
	}

	// store-level first, matrix codes merged without duplicating I2
	got := branches[0].ExcludedItemIDs
	want := []string{"I2", "I3", "I1"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	// second branch shares the cell, matrix only
	if len(branches[1].ExcludedItemIDs) != 2 {
		t.Fatalf("unexpected exclusions %+v", branches[1])
	}
	if store.matrixCalls != 1 {
		t.Fatalf("matrix should be queried once per cell, got %d calls", store.matrixCalls)
	}
}

func TestBranchesEmptyExclusionsIsNotNil(t *testing.T) {
	store := &fakeLookupStore{
		stores: []models.Store{{StoreCode: "S-NORT002", ChainCode: "SMH", StoreClassification: "BSH"}},
	}
	svc := testFilterService(t, store, nil)
	branches, err := svc.Branches(context.Background(), BranchesInput{})
	if err != nil {
		t.Fatalf("branches failed: %v", err)
	}
	if branches[0].ExcludedItemIDs == nil {
		t.Fatal("excluded list must be empty, not nil")
	}
}

func TestBranchesNarrowsByCategory(t *testing.T) {
	store := &fakeLookupStore{
		stores: []models.Store{
			{StoreCode: "C-LAND001", ChainCode: "VCH", StoreClassification: "ASEH"},
			{StoreCode: "C-ROBN014", ChainCode: "VCH", StoreClassification: "ASEH"},
		},
		brandStores: map[string][]string{"brand_barbizon": {"C-LAND001"}},
	}
	svc := testFilterService(t, store, nil)

	branches, err := svc.Branches(context.Background(), BranchesInput{
		Chain:      "VCH",
		Category:   "Barbizon",
		StoreClass: "ASEH",
	})
	if err != nil {
		t.Fatalf("branches failed: %v", err)
	}
	if len(branches) != 1 || branches[0].BranchCode != "C-LAND001" {
		t.Fatalf("expected only the branch carrying the brand, got %+v", branches)
	}

	// Without the category the second branch comes back.
	branches, err = svc.Branches(context.Background(), BranchesInput{Chain: "VCH", StoreClass: "ASEH"})
	if err != nil {
		t.Fatalf("branches failed: %v", err)
	}
	if len(branches) != 2 {
		t.Fatalf("expected both branches without a category, got %+v", branches)
	}
}

func TestItemsCaseInsensitiveCategory(t *testing.T) {
	store := &fakeLookupStore{
		items: []models.Item{
			{ID: 1, ItemCode: "I1", ItemCategory: "Barbizon"},
			{ID: 2, ItemCode: "I2", ItemCategory: "Soen"},
		},
	}
	svc := testFilterService(t, store, nil)
	page, err := svc.Items(context.Background(), "barbizon", pagination.Params{})
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ItemCode != "I1" {
		t.Fatalf("unexpected items %+v", page.Items)
	}
	if page.NextCursor != "" {
		t.Fatalf("single page must not carry a cursor, got %q", page.NextCursor)
	}
}

func TestItemsCursorPaging(t *testing.T) {
	store := &fakeLookupStore{}
	for i := 1; i <= 5; i++ {
		store.items = append(store.items, models.Item{
			ID:       int64(i),
			ItemCode: fmt.Sprintf("I%d", i),
		})
	}
	svc := testFilterService(t, store, nil)
	ctx := context.Background()

	first, err := svc.Items(ctx, "", pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	if len(first.Items) != 2 || first.Items[1].ItemCode != "I2" {
		t.Fatalf("unexpected first page %+v", first.Items)
	}
	if first.NextCursor == "" {
		t.Fatal("expected a next-page cursor")
	}

	second, err := svc.Items(ctx, "", pagination.Params{Limit: 2, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}
	if len(second.Items) != 2 || second.Items[0].ItemCode != "I3" {
		t.Fatalf("unexpected second page %+v", second.Items)
	}

	last, err := svc.Items(ctx, "", pagination.Params{Limit: 2, Cursor: second.NextCursor})
	if err != nil {
		t.Fatalf("last page failed: %v", err)
	}
	if len(last.Items) != 1 || last.Items[0].ItemCode != "I5" || last.NextCursor != "" {
		t.Fatalf("unexpected last page %+v cursor %q", last.Items, last.NextCursor)
	}

	if _, err := svc.Items(ctx, "", pagination.Params{Cursor: "not-a-cursor"}); err == nil {
		t.Fatal("expected error for malformed cursor")
	}
}

func TestChainsReadThroughCache(t *testing.T) {
	store := &fakeLookupStore{
		chains: []models.Chain{{ID: 1, ChainCode: "VCH", ChainName: "VARIOUS CHAIN"}},
	}
	cache := &fakeCache{data: map[string]string{}}
	svc := testFilterService(t, store, cache)
	ctx := context.Background()

	first, err := svc.Chains(ctx)
	if err != nil {
		t.Fatalf("chains failed: %v", err)
	}
	second, err := svc.Chains(ctx)
	if err != nil {
		t.Fatalf("cached chains failed: %v", err)
	}
	if store.chainCalls != 1 {
		t.Fatalf("expected one db hit, got %d", store.chainCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Code != "VCH" {
		t.Fatalf("unexpected results %+v %+v", first, second)
	}
	if _, ok := cache.data["epc:lookup:nbfi:chains"]; !ok {
		t.Fatalf("cache key missing, have %v", cache.data)
	}
}

func TestStoresCascade(t *testing.T) {
	store := &fakeLookupStore{
		stores: []models.Store{
			{StoreCode: "C-LAND001", ChainCode: "VCH", StoreClassification: "ASEH"},
			{StoreCode: "S-NORT002", ChainCode: "SMH", StoreClassification: "BSH"},
		},
	}
	svc := testFilterService(t, store, nil)
	stores, err := svc.Stores(context.Background(), StoresInput{Chain: "SMH", StoreClass: "BSH"})
	if err != nil {
		t.Fatalf("stores failed: %v", err)
	}
	if len(stores) != 1 || stores[0].BranchCode != "S-NORT002" {
		t.Fatalf("unexpected stores %+v", stores)
	}
}
