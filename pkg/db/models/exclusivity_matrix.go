package models

// MatrixRow is the fixed part of an exclusivity matrix row. The chain ×
// store-class cells (vch_aseh .. smo_eses plus the ad-hoc sm/rds/wds columns)
// are dynamic and only touched through raw SQL keyed by db.MatrixCell; cell
// values are raw legacy strings and must never be normalized in place.
type MatrixRow struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ItemCode string `gorm:"column:item_code;not null"`
}

// ItemExclusivityMatrix is the legacy chain-based matrix.
type ItemExclusivityMatrix struct {
	MatrixRow
}

func (ItemExclusivityMatrix) TableName() string {
	return "item_exclusivity_matrix"
}

// NBFIItemExclusivityMatrix mirrors the matrix layout for the NBFI line.
type NBFIItemExclusivityMatrix struct {
	MatrixRow
}

func (NBFIItemExclusivityMatrix) TableName() string {
	return "nbfi_item_exclusivity_matrix"
}
