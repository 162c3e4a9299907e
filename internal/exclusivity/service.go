package exclusivity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/epc-retail/exclusivity-backend/internal/audit"
	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	"github.com/epc-retail/exclusivity-backend/pkg/enums"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
	"github.com/epc-retail/exclusivity-backend/pkg/types"
)

// Service exposes NBFI exclusivity management plus the shared is-excluded
// predicate over both sources.
type Service interface {
	AddItems(ctx context.Context, input AddItemsInput) (*Outcome, error)
	RemoveItem(ctx context.Context, input RemoveItemInput) error
	MassUpload(ctx context.Context, file io.Reader) (*Outcome, error)
	ListExclusivityItems(ctx context.Context, input ListInput) ([]ItemDTO, error)
	ListItemsForAssignment(ctx context.Context, input ListInput) ([]ItemDTO, error)
	IsExcluded(ctx context.Context, storeCode, itemCode string) (bool, error)
}

type matrixStore interface {
	UpsertCell(ctx context.Context, table, cell, itemCode, value string) error
	ClearCell(ctx context.Context, table, cell, itemCode string) (int64, error)
	CellValue(ctx context.Context, table, cell, itemCode string) (*string, error)
	FindItemByCode(ctx context.Context, itemCode string) (*models.Item, error)
	ListMarked(ctx context.Context, table, cell, brand, chain, storeClass string) ([]models.Item, error)
	ListAvailable(ctx context.Context, table, cell, brand, chain, storeClass string) ([]models.Item, error)
	FindStore(ctx context.Context, storeCode string) (*models.Store, error)
	StoreExclusionExists(ctx context.Context, storeCode, itemCode string) (bool, error)
	ResolveChainName(ctx context.Context, name string) (string, error)
	ResolveBrandName(ctx context.Context, name string) (string, error)
	ResolveStoreClassName(ctx context.Context, name string) (string, error)
}

type service struct {
	repo    matrixStore
	auditor audit.Recorder
	logg    *logger.Logger
}

// NewService constructs the exclusivity service.
func NewService(repo matrixStore, auditor audit.Recorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("exclusivity repository required")
	}
	if auditor == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, auditor: auditor, logg: logg}, nil
}

// markedValue is what a fresh mark writes. Existing raw values are never
// rewritten to this; only new marks use it.
var markedValue = *enums.StoredFromCellState(enums.CellIncluded, "")

// AddItems marks each item code for the combination. Unknown codes and
// catalog mismatches become per-row failures; the rest of the batch
// continues.
func (s *service) AddItems(ctx context.Context, input AddItemsInput) (*Outcome, error) {
	cell, err := CellFor(input.Chain, input.StoreClass)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Total: len(input.ItemCodes)}
	for i, code := range input.ItemCodes {
		code = strings.TrimSpace(code)
		if reason := s.addOne(ctx, cell, code, input.Brand); reason != "" {
			outcome.Failed = append(outcome.Failed, types.BulkRowFailure{
				Row:      i + 1,
				ItemCode: code,
				Reason:   reason,
			})
			continue
		}
		outcome.Applied++
	}

	s.recordAudit(ctx, audit.Entry{
		EntityType: "nbfi_exclusivity",
		EntityID:   cell,
		Action:     "add_items",
		EntityName: fmt.Sprintf("%s / %s", input.Chain, input.StoreClass),
		Details: map[string]any{
			"brand":   input.Brand,
			"total":   outcome.Total,
			"applied": outcome.Applied,
			"failed":  len(outcome.Failed),
		},
	})
	return outcome, nil
}

func (s *service) addOne(ctx context.Context, cell, code, brand string) string {
	if code == "" {
		return "item code is empty"
	}
	item, err := s.repo.FindItemByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "item code not found in catalog"
		}
		return fmt.Sprintf("catalog lookup failed: %v", err)
	}
	if brand != "" && !strings.EqualFold(strings.TrimSpace(item.ItemCategory), strings.TrimSpace(brand)) {
		return fmt.Sprintf("item belongs to %s, not %s", item.ItemCategory, brand)
	}
	if err := s.repo.UpsertCell(ctx, NBFIMatrixTable, cell, code, markedValue); err != nil {
		return fmt.Sprintf("marking failed: %v", err)
	}
	return ""
}

// RemoveItem unmarks one item code for the combination.
func (s *service) RemoveItem(ctx context.Context, input RemoveItemInput) error {
	cell, err := CellFor(input.Chain, input.StoreClass)
	if err != nil {
		return err
	}

	affected, err := s.repo.ClearCell(ctx, NBFIMatrixTable, cell, strings.TrimSpace(input.ItemCode))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear matrix cell")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item is not marked for this combination")
	}

	s.recordAudit(ctx, audit.Entry{
		EntityType: "nbfi_exclusivity",
		EntityID:   cell,
		Action:     "remove_item",
		EntityName: fmt.Sprintf("%s / %s", input.Chain, input.StoreClass),
		Details:    map[string]any{"itemCode": input.ItemCode},
	})
	return nil
}

// MassUpload ingests a spreadsheet of display names plus item codes. Rows
// that fail to resolve are collected; the batch never aborts part-way.
func (s *service) MassUpload(ctx context.Context, file io.Reader) (*Outcome, error) {
	rows, err := ParseUploadRows(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workbook has no data rows")
	}

	outcome := &Outcome{Total: len(rows)}
	for _, row := range rows {
		if reason := s.applyUploadRow(ctx, row); reason != "" {
			outcome.Failed = append(outcome.Failed, types.BulkRowFailure{
				Row:      row.Row,
				ItemCode: row.ItemCode,
				Reason:   reason,
				Data:     row,
			})
			continue
		}
		outcome.Applied++
	}

	s.recordAudit(ctx, audit.Entry{
		EntityType: "nbfi_exclusivity",
		EntityID:   "mass_upload",
		Action:     "mass_upload",
		Details: map[string]any{
			"total":   outcome.Total,
			"applied": outcome.Applied,
			"failed":  len(outcome.Failed),
		},
	})
	return outcome, nil
}

func (s *service) applyUploadRow(ctx context.Context, row UploadRow) string {
	chainCode, err := s.repo.ResolveChainName(ctx, row.Chain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Sprintf("unknown chain %q", row.Chain)
		}
		return fmt.Sprintf("chain lookup failed: %v", err)
	}
	brandCode, err := s.repo.ResolveBrandName(ctx, row.Brand)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Sprintf("unknown brand %q", row.Brand)
		}
		return fmt.Sprintf("brand lookup failed: %v", err)
	}
	classCode, err := s.repo.ResolveStoreClassName(ctx, row.StoreClass)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Sprintf("unknown store class %q", row.StoreClass)
		}
		return fmt.Sprintf("store class lookup failed: %v", err)
	}

	cell, err := CellFor(chainCode, classCode)
	if err != nil {
		return fmt.Sprintf("no matrix cell for %s/%s", chainCode, classCode)
	}
	return s.addOne(ctx, cell, strings.TrimSpace(row.ItemCode), brandCode)
}

// ListExclusivityItems returns the brand catalog items excluded for the
// combination through either the matrix or a branch in its scope.
func (s *service) ListExclusivityItems(ctx context.Context, input ListInput) ([]ItemDTO, error) {
	cell, err := CellFor(input.Chain, input.StoreClass)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListMarked(ctx, NBFIMatrixTable, cell, input.Brand, input.Chain, input.StoreClass)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list marked items")
	}
	return NewItemDTOs(items), nil
}

// ListItemsForAssignment returns the brand catalog minus items already
// excluded for the exact combination through either source.
func (s *service) ListItemsForAssignment(ctx context.Context, input ListInput) ([]ItemDTO, error) {
	cell, err := CellFor(input.Chain, input.StoreClass)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListAvailable(ctx, NBFIMatrixTable, cell, input.Brand, input.Chain, input.StoreClass)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list available items")
	}
	return NewItemDTOs(items), nil
}

// IsExcluded is the single predicate over both exclusion sources: the
// chain-level matrix cell for the store's combination, or a store-level
// exclusion row. Callers must never query the sources separately.
func (s *service) IsExcluded(ctx context.Context, storeCode, itemCode string) (bool, error) {
	store, err := s.repo.FindStore(ctx, storeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load store")
	}

	if cell, err := CellFor(store.ChainCode, store.StoreClassification); err == nil {
		raw, err := s.repo.CellValue(ctx, LegacyMatrixTable, cell, itemCode)
		if err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: read matrix cell")
		}
		if enums.CellStateFromStored(raw) != enums.CellUnset {
			return true, nil
		}
	}
	// stores with no matrix combination (blank or alternate chain) still
	// have store-level rows

	exists, err := s.repo.StoreExclusionExists(ctx, storeCode, itemCode)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check store exclusion")
	}
	return exists, nil
}

func (s *service) recordAudit(ctx context.Context, entry audit.Entry) {
	if err := s.auditor.Record(ctx, entry); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("audit record skipped: %v", err))
	}
}
