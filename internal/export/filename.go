package export

import (
	"fmt"
	"strings"
	"time"
)

const (
	filenamePrefix     = "EPC"
	defaultPlaceholder = "ALL"
)

// Filename derives the workbook name:
//
//	EPC_<CHAIN>_<CATEGORY>_<STORECLASS>_<MMDDYYYY>.xlsx
//
// Placeholders are uppercased with all whitespace removed; blank filters
// fall back to ALL.
func Filename(filters Filters, date time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s_%s.xlsx",
		filenamePrefix,
		placeholder(filters.Chain),
		placeholder(filters.Category),
		placeholder(filters.StoreClass),
		date.Format("01022006"),
	)
}

func placeholder(value string) string {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(value), ""))
	if cleaned == "" {
		return defaultPlaceholder
	}
	return cleaned
}
