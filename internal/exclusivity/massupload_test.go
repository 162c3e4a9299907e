package exclusivity

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
)

func buildUploadWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestParseUploadRows(t *testing.T) {
	buf := buildUploadWorkbook(t, [][]string{
		{"Chain", "Brand", "Store Class", "Item Code"},
		{"Various Chain", "Barbizon", "A Stores - Extra High", "I1"},
		{"", "", "", ""},
		{"SM Homeworld", "Bench Body", "B Stores - High", " I2 "},
	})

	rows, err := ParseUploadRows(buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after skipping the blank, got %+v", rows)
	}
	if rows[0].Row != 2 || rows[0].ItemCode != "I1" {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Row != 4 || rows[1].ItemCode != "I2" {
		t.Fatalf("row numbers must track the spreadsheet, got %+v", rows[1])
	}
}

func TestParseUploadRowsHeaderVariants(t *testing.T) {
	buf := buildUploadWorkbook(t, [][]string{
		{"CHAIN", "brand", "StoreClass", "ItemCode"},
		{"Various Chain", "Barbizon", "A Stores - Extra High", "I1"},
	})
	rows, err := ParseUploadRows(buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rows) != 1 || rows[0].StoreClass != "A Stores - Extra High" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestParseUploadRowsMissingColumn(t *testing.T) {
	buf := buildUploadWorkbook(t, [][]string{
		{"Chain", "Brand", "Item Code"},
		{"Various Chain", "Barbizon", "I1"},
	})
	_, err := ParseUploadRows(buf)
	if err == nil {
		t.Fatal("expected missing-column error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if !strings.Contains(err.Error(), "storeClass") {
		t.Fatalf("error should name the missing column: %v", err)
	}
}

func TestParseUploadRowsRejectsGarbage(t *testing.T) {
	_, err := ParseUploadRows(bytes.NewBufferString("not a workbook"))
	if err == nil {
		t.Fatal("expected error for non-xlsx input")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestMassUploadAppliesRowsAndReportsFailures(t *testing.T) {
	store := newFakeMatrixStore()
	store.items["I1"] = models.Item{ID: 1, ItemCode: "I1", ItemCategory: "Barbizon"}
	auditor := &fakeAuditor{}
	svc := newTestService(t, store, auditor)

	buf := buildUploadWorkbook(t, [][]string{
		{"Chain", "Brand", "Store Class", "Item Code"},
		{"Various Chain", "Barbizon", "A Stores - Extra High", "I1"},
		{"Various Chain", "No Such Brand", "A Stores - Extra High", "I1"},
		{"Various Chain", "Barbizon", "A Stores - Extra High", "I9"},
	})

	outcome, err := svc.MassUpload(context.Background(), buf)
	if err != nil {
		t.Fatalf("mass upload failed: %v", err)
	}
	if outcome.Total != 3 || outcome.Applied != 1 {
		t.Fatalf("expected 1 of 3 applied, got %+v", outcome)
	}
	if len(outcome.Failed) != 2 {
		t.Fatalf("expected 2 failures, got %+v", outcome.Failed)
	}
	if outcome.Failed[0].Row != 3 || !strings.Contains(outcome.Failed[0].Reason, "unknown brand") {
		t.Fatalf("unexpected failure %+v", outcome.Failed[0])
	}
	if outcome.Failed[1].Row != 4 || !strings.Contains(outcome.Failed[1].Reason, "not found") {
		t.Fatalf("unexpected failure %+v", outcome.Failed[1])
	}
	if outcome.Failed[0].Data == nil {
		t.Fatal("failures must carry the offending row")
	}

	if store.cells[cellKey(NBFIMatrixTable, "vch_aseh", "I1")] != "1" {
		t.Fatalf("applied row did not mark the cell: %v", store.cells)
	}
	if len(auditor.entries) != 1 || auditor.entries[0].Action != "mass_upload" {
		t.Fatalf("expected mass_upload audit entry, got %+v", auditor.entries)
	}
}

func TestMassUploadEmptyWorkbook(t *testing.T) {
	svc := newTestService(t, newFakeMatrixStore(), &fakeAuditor{})
	buf := buildUploadWorkbook(t, [][]string{
		{"Chain", "Brand", "Store Class", "Item Code"},
	})
	_, err := svc.MassUpload(context.Background(), buf)
	if err == nil {
		t.Fatal("expected error for workbook with no data rows")
	}
	if !strings.Contains(err.Error(), "no data rows") {
		t.Fatalf("unexpected error: %v", err)
	}
}
