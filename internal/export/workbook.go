package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
)

const sheetName = "Transfer Orders"

var headerColumns = []struct {
	title string
	width float64
}{
	{"Branch Code", 14},
	{"Branch Name", 32},
	{"Transfer Type", 18},
	{"Source Warehouse", 18},
	{"Target Warehouse", 18},
	{"16 Digit Item Code", 20},
	{"Quantity", 10},
}

// BuildWorkbook renders rows into a single-sheet xlsx file and returns the
// serialized bytes.
func BuildWorkbook(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating worksheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing default worksheet")
	}

	for i, col := range headerColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving header cell")
		}
		if err := f.SetCellValue(sheetName, cell, col.title); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing header")
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving column name")
		}
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "setting column width")
		}
	}

	for i, row := range rows {
		values := []any{
			row.BranchCode,
			row.BranchName,
			row.TransferType,
			row.SourceWarehouse,
			row.TargetWarehouse,
			row.ItemCode,
			row.Quantity,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving data cell")
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("writing row %d", i+1))
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing workbook")
	}
	return buf.Bytes(), nil
}
