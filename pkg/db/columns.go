package db

import (
	"fmt"
	"regexp"
	"strings"
)

// brandColumnOverrides maps normalized brand codes to their legacy column
// stems. These three brands predate the sanitizer and their columns were
// created with the words concatenated instead of underscore-joined; the data
// under those names cannot be renamed without a coordinated cutover, so every
// caller must keep producing the historical form.
var brandColumnOverrides = map[string]string{
	"bench body":    "benchbody",
	"world balance": "worldbalance",
	"happy feet":    "happyfeet",
}

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	invalidColChars = regexp.MustCompile(`[^a-z0-9_]`)
)

// SanitizeBrandCode derives the column-name stem for a brand code: trim,
// collapse internal whitespace to single underscores, strip anything outside
// [a-z0-9_], lowercase. Idempotent: sanitizing twice equals sanitizing once.
func SanitizeBrandCode(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	normalized = whitespaceRun.ReplaceAllString(normalized, " ")

	if override, ok := brandColumnOverrides[normalized]; ok {
		return override
	}

	s := strings.ReplaceAll(normalized, " ", "_")
	return invalidColChars.ReplaceAllString(s, "")
}

// BrandColumn returns the stores-table column name for a brand code.
func BrandColumn(code string) string {
	return "brand_" + SanitizeBrandCode(code)
}

// MatrixCell returns the exclusivity-matrix column for a chain + store class
// combination, e.g. ("VCH", "ASEH") -> "vch_aseh".
func MatrixCell(chainCode, storeClassCode string) string {
	chain := SanitizeBrandCode(chainCode)
	class := SanitizeBrandCode(storeClassCode)
	return chain + "_" + class
}

// ColumnIsSet renders the legacy "cell is set" rule for a column reference:
// NULL, the empty string and the literal "0" all read as unset. Every query
// that inspects a synthesized cell must go through this one rendering.
func ColumnIsSet(column string) string {
	return fmt.Sprintf("(%s IS NOT NULL AND %s <> '' AND %s <> '0')", column, column, column)
}
