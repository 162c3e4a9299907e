package filters

import "github.com/epc-retail/exclusivity-backend/pkg/db/models"

// BranchDTO is a store row enriched with the item codes excluded for it,
// from either exclusion source. The list is present even when empty so
// consumers can index it without nil checks.
type BranchDTO struct {
	BranchCode      string   `json:"branchCode"`
	BranchName      string   `json:"branchName"`
	Chain           string   `json:"chain"`
	StoreClass      string   `json:"storeClass"`
	ExcludedItemIDs []string `json:"excludedItemIds"`
}

// LookupDTO is a code/name pair for the cascade dropdowns.
type LookupDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ItemDTO is the catalog item shape for the filter endpoints.
type ItemDTO struct {
	ID              int64  `json:"id"`
	ItemCode        string `json:"itemCode"`
	ItemDescription string `json:"itemDescription"`
	ItemCategory    string `json:"itemCategory"`
}

// ItemsPage is one cursor page of catalog items. NextCursor is empty on the
// last page.
type ItemsPage struct {
	Items      []ItemDTO `json:"items"`
	NextCursor string    `json:"nextCursor,omitempty"`
}

func newItemDTOs(items []models.Item) []ItemDTO {
	out := make([]ItemDTO, len(items))
	for i, item := range items {
		out[i] = ItemDTO{
			ID:              item.ID,
			ItemCode:        item.ItemCode,
			ItemDescription: item.ItemDescription,
			ItemCategory:    item.ItemCategory,
		}
	}
	return out
}

// BranchesInput scopes the branch listing.
type BranchesInput struct {
	Chain      string `json:"chain"`
	Category   string `json:"category"`
	StoreClass string `json:"storeClass"`
}

// StoresInput scopes the cascade store listing.
type StoresInput struct {
	Chain      string `json:"chain"`
	StoreClass string `json:"storeClass"`
}
