package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/epc-retail/exclusivity-backend/pkg/config"
)

func TestBuildWorkbookLayout(t *testing.T) {
	rows := []Row{
		{
			BranchCode:      "C-LAND001",
			BranchName:      "Landmark",
			TransferType:    "CST-RepeatOrder",
			SourceWarehouse: "01-RLS",
			TargetWarehouse: "LAND001",
			ItemCode:        "1000000000000001",
			Quantity:        5,
		},
	}

	content, err := BuildWorkbook(rows)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Transfer Orders" {
		t.Fatalf("expected single sheet 'Transfer Orders', got %v", sheets)
	}

	wantHeaders := []string{
		"Branch Code", "Branch Name", "Transfer Type", "Source Warehouse",
		"Target Warehouse", "16 Digit Item Code", "Quantity",
	}
	for i, want := range wantHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("read header %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("header %d: expected %q, got %q", i, want, got)
		}
	}

	wantRow := []string{"C-LAND001", "Landmark", "CST-RepeatOrder", "01-RLS", "LAND001", "1000000000000001", "5"}
	for i, want := range wantRow {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("read cell %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s: expected %q, got %q", cell, want, got)
		}
	}
}

func TestServiceExportEndToEnd(t *testing.T) {
	svc, err := NewService(config.ExportConfig{SourceWarehouse: "01-RLS"}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Export(context.Background(), Request{
		Branches:   []BranchInput{{BranchCode: "C-LAND001", BranchName: "Landmark"}},
		Items:      []ItemInput{{ItemCode: "I1", ItemDescription: "Lamp"}},
		Quantities: map[string]float64{"I1|Lamp": 3},
		Filters:    Filters{Chain: "sm outright", Category: "Barbizon", StoreClass: "ASEH", Transaction: "CST-RepeatOrder"},
	})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if result.RowCount != 1 {
		t.Fatalf("expected 1 row, got %d", result.RowCount)
	}
	if len(result.Content) == 0 {
		t.Fatal("expected workbook bytes")
	}
	if result.Filename == "" || result.Filename[:15] != "EPC_SMOUTRIGHT_" {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
}

func TestServiceExportSurfacesEngineError(t *testing.T) {
	svc, err := NewService(config.ExportConfig{SourceWarehouse: "01-RLS"}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.Export(context.Background(), Request{}); err == nil {
		t.Fatal("expected validation error for empty request")
	}
}
