package exclusivity

import (
	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	"github.com/epc-retail/exclusivity-backend/pkg/types"
)

// AddItemsInput marks item codes for one chain + store-class combination.
type AddItemsInput struct {
	Chain      string   `json:"chain" validate:"required"`
	Brand      string   `json:"brand" validate:"required"`
	StoreClass string   `json:"storeClass" validate:"required"`
	ItemCodes  []string `json:"itemCodes" validate:"required,min=1,dive,required"`
}

// RemoveItemInput unmarks one item code for a combination.
type RemoveItemInput struct {
	Chain      string `json:"chain" validate:"required"`
	StoreClass string `json:"storeClass" validate:"required"`
	ItemCode   string `json:"itemCode" validate:"required"`
}

// ListInput scopes the exclusivity listing queries.
type ListInput struct {
	Chain      string `json:"chain" validate:"required"`
	Brand      string `json:"brand" validate:"required"`
	StoreClass string `json:"storeClass" validate:"required"`
}

// ItemDTO is the list-endpoint item shape.
type ItemDTO struct {
	ID              int64  `json:"id"`
	ItemCode        string `json:"itemCode"`
	ItemDescription string `json:"itemDescription"`
	ItemCategory    string `json:"itemCategory"`
}

// NewItemDTO converts a catalog row.
func NewItemDTO(item models.Item) ItemDTO {
	return ItemDTO{
		ID:              item.ID,
		ItemCode:        item.ItemCode,
		ItemDescription: item.ItemDescription,
		ItemCategory:    item.ItemCategory,
	}
}

// NewItemDTOs converts a slice of catalog rows.
func NewItemDTOs(items []models.Item) []ItemDTO {
	out := make([]ItemDTO, len(items))
	for i, item := range items {
		out[i] = NewItemDTO(item)
	}
	return out
}

// Outcome summarizes a bulk mutation: totals plus itemized failures. A run
// with failures is still a success for the rows that went through.
type Outcome struct {
	Total   int
	Applied int
	Failed  []types.BulkRowFailure
}

// Envelope renders the outcome into the bulk response shape.
func (o Outcome) Envelope() types.BulkEnvelope {
	failed := o.Failed
	if failed == nil {
		failed = []types.BulkRowFailure{}
	}
	return types.BulkEnvelope{
		Success: len(o.Failed) == 0,
		Summary: types.BulkSummary{
			Total:   o.Total,
			Success: o.Applied,
			Failed:  len(o.Failed),
		},
		Results: types.BulkResults{Failed: failed},
	}
}
