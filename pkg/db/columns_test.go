package db

import "testing"

func TestSanitizeBrandCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BARBIZON", "barbizon"},
		{"  Levi's  ", "levis"},
		{"Mondo  Living", "mondo_living"},
		{"A&B Retail", "ab_retail"},
		{"", ""},
		{"ONE TWO THREE", "one_two_three"},
	}

	for _, tc := range cases {
		if got := SanitizeBrandCode(tc.in); got != tc.want {
			t.Errorf("SanitizeBrandCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeBrandCodeOverrides(t *testing.T) {
	cases := map[string]string{
		"Bench Body":      "benchbody",
		"  WORLD BALANCE": "worldbalance",
		"happy   feet":    "happyfeet",
	}
	for in, want := range cases {
		if got := SanitizeBrandCode(in); got != want {
			t.Errorf("SanitizeBrandCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeBrandCodeIdempotent(t *testing.T) {
	inputs := []string{"BARBIZON", "Bench Body", "Mondo  Living", "Levi's"}
	for _, in := range inputs {
		once := SanitizeBrandCode(in)
		twice := SanitizeBrandCode(once)
		if once != twice {
			t.Errorf("sanitizer not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestBrandColumn(t *testing.T) {
	if got := BrandColumn("Bench Body"); got != "brand_benchbody" {
		t.Fatalf("unexpected column %q", got)
	}
	if got := BrandColumn("BARBIZON"); got != "brand_barbizon" {
		t.Fatalf("unexpected column %q", got)
	}
}

func TestMatrixCell(t *testing.T) {
	if got := MatrixCell("VCH", "ASEH"); got != "vch_aseh" {
		t.Fatalf("unexpected cell %q", got)
	}
	if got := MatrixCell(" SMO ", "bsh"); got != "smo_bsh" {
		t.Fatalf("unexpected cell %q", got)
	}
}

func TestColumnIsSet(t *testing.T) {
	want := "(m.vch_aseh IS NOT NULL AND m.vch_aseh <> '' AND m.vch_aseh <> '0')"
	if got := ColumnIsSet("m.vch_aseh"); got != want {
		t.Fatalf("ColumnIsSet rendered %q, want %q", got, want)
	}
}
