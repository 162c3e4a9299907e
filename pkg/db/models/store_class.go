package models

// StoreClass is one of the five fixed store tiers (ASEH "A Stores - Extra
// High" through ESES "E Stores - Extra Small").
type StoreClass struct {
	ID                  int64  `gorm:"column:id;primaryKey;autoIncrement"`
	StoreClassCode      string `gorm:"column:store_class_code;not null;uniqueIndex"`
	StoreClassification string `gorm:"column:store_classification;not null"`
}

func (StoreClass) TableName() string {
	return "store_classes"
}
