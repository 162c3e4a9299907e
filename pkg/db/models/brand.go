package models

// Brand is static reference data. Brand codes feed the stores-table column
// synthesizer, so edits here ripple into schema migrations.
type Brand struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	BrandCode string `gorm:"column:brand_code;not null;uniqueIndex"`
	BrandName string `gorm:"column:brand_name;not null"`
}

func (Brand) TableName() string {
	return "brands"
}
