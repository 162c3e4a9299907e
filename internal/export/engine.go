package export

import (
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
)

// Each empty-input case gets its own message so the client can tell the
// operator what to fix. The zero-row outcome after filtering keeps the
// wording the frontend already matches on.
const (
	msgNoBranches   = "No branches selected. Select at least one branch before exporting."
	msgNoItems      = "No items selected. Select at least one item before exporting."
	msgNoQuantities = "No quantities entered. Enter a quantity for at least one item."
	msgNoRows       = "No data to export. Every selected item has zero quantity or is excluded for the selected branches."
)

// QuantityKey builds the lookup key the quantity grid uses.
func QuantityKey(itemCode, itemDescription string) string {
	return itemCode + "|" + itemDescription
}

// GenerateRows cross-joins branches and items into transfer-order rows. A
// pair contributes a row iff its quantity is positive and the item is not
// excluded for the branch. Ordering is branch-major following input order;
// callers wanting a different order sort before calling.
func GenerateRows(branches []BranchInput, items []ItemInput, quantities map[string]float64, filters Filters, sourceWarehouse string) ([]Row, error) {
	if len(branches) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgNoBranches)
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgNoItems)
	}
	if len(quantities) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgNoQuantities)
	}

	rows := []Row{}
	for _, branch := range branches {
		excluded := make(map[string]struct{}, len(branch.ExcludedItemIDs))
		for _, id := range branch.ExcludedItemIDs {
			excluded[id] = struct{}{}
		}
		for _, item := range items {
			qty := quantities[QuantityKey(item.ItemCode, item.ItemDescription)]
			if qty <= 0 {
				continue
			}
			if _, ok := excluded[item.ItemCode]; ok {
				continue
			}
			rows = append(rows, Row{
				BranchCode:      branch.BranchCode,
				BranchName:      branch.BranchName,
				TransferType:    filters.Transaction,
				SourceWarehouse: sourceWarehouse,
				TargetWarehouse: targetWarehouse(branch.BranchCode),
				ItemCode:        item.ItemCode,
				Quantity:        qty,
			})
		}
	}

	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgNoRows)
	}
	return rows, nil
}

// targetWarehouse strips the 2-character chain prefix from a branch code,
// e.g. "C-LAND001" -> "LAND001".
func targetWarehouse(branchCode string) string {
	if len(branchCode) <= 2 {
		return branchCode
	}
	return branchCode[2:]
}
