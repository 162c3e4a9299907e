package models

// Item is a catalog SKU. Item codes are not globally unique across variants;
// uniqueness is only enforced on the exclusivity matrix, not here.
type Item struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ItemCode        string `gorm:"column:item_code;not null"`
	ItemDescription string `gorm:"column:item_description"`
	ItemCategory    string `gorm:"column:item_category"`
}

func (Item) TableName() string {
	return "item_list"
}
