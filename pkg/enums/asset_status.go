package enums

import "fmt"

// AssetStatus tracks where an asset is in its checkout lifecycle.
type AssetStatus string

const (
	AssetStatusAvailable  AssetStatus = "available"
	AssetStatusCheckedOut AssetStatus = "checked_out"
	AssetStatusInRepair   AssetStatus = "in_repair"
	AssetStatusRetired    AssetStatus = "retired"
)

var validAssetStatuses = []AssetStatus{
	AssetStatusAvailable,
	AssetStatusCheckedOut,
	AssetStatusInRepair,
	AssetStatusRetired,
}

// String implements fmt.Stringer.
func (a AssetStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AssetStatus.
func (a AssetStatus) IsValid() bool {
	for _, candidate := range validAssetStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAssetStatus converts raw input into an AssetStatus.
func ParseAssetStatus(value string) (AssetStatus, error) {
	for _, candidate := range validAssetStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid asset status %q", value)
}
