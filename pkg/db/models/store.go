package models

// Store is a physical branch. Beyond the fixed columns below the table
// carries one brand_<code> VARCHAR(10) column per row in the brands lookup;
// those are synthesized by migrations and addressed through db.BrandColumn,
// never through this struct.
type Store struct {
	StoreCode           string `gorm:"column:store_code;primaryKey"`
	StoreName           string `gorm:"column:store_name;not null"`
	ChainCode           string `gorm:"column:chain_code"`
	StoreClassification string `gorm:"column:store_classification"`
}

func (Store) TableName() string {
	return "stores"
}
