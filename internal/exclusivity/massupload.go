package exclusivity

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
)

// UploadRow is one parsed spreadsheet row. Chain, Brand and StoreClass carry
// the human-readable names the template uses; resolution to codes happens in
// the service.
type UploadRow struct {
	Row        int    `json:"row"`
	Chain      string `json:"chain"`
	Brand      string `json:"brand"`
	StoreClass string `json:"storeClass"`
	ItemCode   string `json:"itemCode"`
}

// uploadHeaders maps accepted header spellings to field positions.
var uploadHeaders = map[string]string{
	"chain":       "chain",
	"brand":       "brand",
	"store class": "storeClass",
	"storeclass":  "storeClass",
	"item code":   "itemCode",
	"itemcode":    "itemCode",
}

// ParseUploadRows reads the first worksheet of a mass-upload workbook. The
// header row is matched case-insensitively; data rows keep their 1-based
// spreadsheet row number so failures point at the right line.
func ParseUploadRows(file io.Reader) ([]UploadRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file is not a readable xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workbook has no worksheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading worksheet")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "worksheet is empty")
	}

	columns, err := mapHeaderColumns(rows[0])
	if err != nil {
		return nil, err
	}

	parsed := []UploadRow{}
	for i, row := range rows[1:] {
		entry := UploadRow{
			Row:        i + 2,
			Chain:      cellAt(row, columns["chain"]),
			Brand:      cellAt(row, columns["brand"]),
			StoreClass: cellAt(row, columns["storeClass"]),
			ItemCode:   cellAt(row, columns["itemCode"]),
		}
		if entry.Chain == "" && entry.Brand == "" && entry.StoreClass == "" && entry.ItemCode == "" {
			continue
		}
		parsed = append(parsed, entry)
	}
	return parsed, nil
}

func mapHeaderColumns(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for idx, title := range header {
		key := strings.ToLower(strings.TrimSpace(title))
		if field, ok := uploadHeaders[key]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = idx
			}
		}
	}
	for _, field := range []string{"chain", "brand", "storeClass", "itemCode"} {
		if _, ok := columns[field]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("missing required column %q in header row", field))
		}
	}
	return columns, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
