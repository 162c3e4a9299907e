package enums

// CellState is the application-boundary view of an exclusivity matrix cell.
// The stored representation is messy legacy data: NULL, empty string, the
// string "0" and the integer 0 all mean "unset"; any other non-empty value
// marks the item as included for that chain + store-class combination. The raw
// value is preserved at the persistence edge, CellState exists only so callers
// stop re-implementing the sentinel comparison.
type CellState string

const (
	CellUnset    CellState = "unset"
	CellIncluded CellState = "included"
)

// String implements fmt.Stringer.
func (c CellState) String() string {
	return string(c)
}

// CellStateFromStored translates the legacy stored value into a CellState.
func CellStateFromStored(raw *string) CellState {
	if raw == nil {
		return CellUnset
	}
	switch *raw {
	case "", "0":
		return CellUnset
	}
	return CellIncluded
}

// StoredFromCellState translates a CellState back to the legacy storage form.
// Unset maps to NULL; Included writes the provided raw value unchanged so the
// historical flag-vs-count ambiguity is never "corrected" in place.
func StoredFromCellState(state CellState, raw string) *string {
	if state == CellUnset {
		return nil
	}
	if raw == "" {
		raw = "1"
	}
	return &raw
}
