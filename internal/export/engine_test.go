package export

import (
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
)

const testSourceWarehouse = "01-RLS"

func TestGenerateRowsFiltersExcludedAndZeroQuantity(t *testing.T) {
	branches := []BranchInput{
		{BranchCode: "C-LAND001", BranchName: "Landmark", ExcludedItemIDs: []string{"I1"}},
	}
	items := []ItemInput{
		{ItemCode: "I1", ItemDescription: "Lamp"},
		{ItemCode: "I2", ItemDescription: "Clock"},
	}
	quantities := map[string]float64{
		"I1|Lamp":  5,
		"I2|Clock": 0,
	}

	_, err := GenerateRows(branches, items, quantities, Filters{Transaction: "CST-RepeatOrder"}, testSourceWarehouse)
	if err == nil {
		t.Fatal("expected zero-row error: I1 is excluded and I2 has zero quantity")
	}
	if !strings.Contains(err.Error(), "No data to export") {
		t.Fatalf("expected 'No data to export' in message, got %q", err.Error())
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestGenerateRowsProducesRowShape(t *testing.T) {
	branches := []BranchInput{
		{BranchCode: "C-LAND001", BranchName: "Landmark"},
	}
	items := []ItemInput{
		{ItemCode: "I1", ItemDescription: "Lamp"},
	}
	quantities := map[string]float64{"I1|Lamp": 5}

	rows, err := GenerateRows(branches, items, quantities, Filters{Transaction: "CST-RepeatOrder"}, testSourceWarehouse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.BranchCode != "C-LAND001" || row.BranchName != "Landmark" {
		t.Fatalf("unexpected branch fields %+v", row)
	}
	if row.TransferType != "CST-RepeatOrder" {
		t.Fatalf("expected transfer type from filters, got %q", row.TransferType)
	}
	if row.SourceWarehouse != "01-RLS" {
		t.Fatalf("expected source warehouse 01-RLS, got %q", row.SourceWarehouse)
	}
	if row.TargetWarehouse != "LAND001" {
		t.Fatalf("expected 2-char prefix stripped, got %q", row.TargetWarehouse)
	}
	if row.ItemCode != "I1" || row.Quantity != 5 {
		t.Fatalf("unexpected item fields %+v", row)
	}
}

func TestGenerateRowsBranchMajorInputOrder(t *testing.T) {
	branches := []BranchInput{
		{BranchCode: "C-BBBB01", BranchName: "Second In Alpha"},
		{BranchCode: "C-AAAA01", BranchName: "First In Alpha"},
	}
	items := []ItemInput{
		{ItemCode: "I2", ItemDescription: "Clock"},
		{ItemCode: "I1", ItemDescription: "Lamp"},
	}
	quantities := map[string]float64{
		"I1|Lamp":  1,
		"I2|Clock": 2,
	}

	rows, err := GenerateRows(branches, items, quantities, Filters{}, testSourceWarehouse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	// no sorting happens: input order preserved, branch-major
	wantOrder := []struct{ branch, item string }{
		{"C-BBBB01", "I2"},
		{"C-BBBB01", "I1"},
		{"C-AAAA01", "I2"},
		{"C-AAAA01", "I1"},
	}
	for i, want := range wantOrder {
		if rows[i].BranchCode != want.branch || rows[i].ItemCode != want.item {
			t.Fatalf("row %d: expected %s/%s, got %s/%s", i, want.branch, want.item, rows[i].BranchCode, rows[i].ItemCode)
		}
	}
}

func TestGenerateRowsDistinctEmptyInputMessages(t *testing.T) {
	branches := []BranchInput{{BranchCode: "C-LAND001", BranchName: "Landmark"}}
	items := []ItemInput{{ItemCode: "I1", ItemDescription: "Lamp"}}
	quantities := map[string]float64{"I1|Lamp": 1}

	cases := []struct {
		name     string
		branches []BranchInput
		items    []ItemInput
		qty      map[string]float64
		fragment string
	}{
		{"noBranches", nil, items, quantities, "branch"},
		{"noItems", branches, nil, quantities, "item"},
		{"noQuantities", branches, items, nil, "quantit"},
	}
	messages := map[string]bool{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateRows(tc.branches, tc.items, tc.qty, Filters{}, testSourceWarehouse)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tc.fragment) {
				t.Fatalf("expected %q in message, got %q", tc.fragment, err.Error())
			}
			if messages[err.Error()] {
				t.Fatalf("message %q reused across cases", err.Error())
			}
			messages[err.Error()] = true
		})
	}
}

func TestTargetWarehouseShortCodes(t *testing.T) {
	if got := targetWarehouse("AB"); got != "AB" {
		t.Fatalf("codes at or under prefix length pass through, got %q", got)
	}
	if got := targetWarehouse("S-NORT002"); got != "NORT002" {
		t.Fatalf("expected NORT002, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	date := time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)
	got := Filename(Filters{Chain: "sm outright", Category: "Barbizon", StoreClass: "ASEH"}, date)
	if got != "EPC_SMOUTRIGHT_BARBIZON_ASEH_11032025.xlsx" {
		t.Fatalf("unexpected filename %q", got)
	}
}

func TestFilenameBlankFiltersDefault(t *testing.T) {
	date := time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)
	got := Filename(Filters{}, date)
	if got != "EPC_ALL_ALL_ALL_01092026.xlsx" {
		t.Fatalf("unexpected filename %q", got)
	}
}
