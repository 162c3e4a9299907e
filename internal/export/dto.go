package export

// BranchInput is one branch selected for a transfer order, with the item
// codes excluded for it already resolved by the filter queries.
type BranchInput struct {
	BranchCode      string   `json:"branchCode" validate:"required"`
	BranchName      string   `json:"branchName" validate:"required"`
	ExcludedItemIDs []string `json:"excludedItemIds"`
}

// ItemInput is one catalog item selected for a transfer order.
type ItemInput struct {
	ItemCode        string `json:"itemCode" validate:"required"`
	ItemDescription string `json:"itemDescription"`
}

// Filters carries the dropdown context the transfer order was built under.
type Filters struct {
	Chain       string `json:"chain"`
	Category    string `json:"category"`
	StoreClass  string `json:"storeClass"`
	Transaction string `json:"transaction"`
}

// Request is the export endpoint payload. Quantities are keyed by
// "itemCode|itemDescription", matching the grid the client edits.
type Request struct {
	Branches   []BranchInput      `json:"branches"`
	Items      []ItemInput        `json:"items"`
	Quantities map[string]float64 `json:"quantities"`
	Filters    Filters            `json:"filters"`
}

// Row is one line of the generated worksheet. Field order mirrors the
// column order of the output file.
type Row struct {
	BranchCode      string
	BranchName      string
	TransferType    string
	SourceWarehouse string
	TargetWarehouse string
	ItemCode        string
	Quantity        float64
}

// Result carries the generated workbook bytes and the derived filename.
type Result struct {
	Filename string
	Content  []byte
	RowCount int
}
