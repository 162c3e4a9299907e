package models

import "time"

// StoreItemExclusivity records a store-level exclusion, independent of the
// chain-level matrix. Both sources feed the same is-excluded predicate.
type StoreItemExclusivity struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	StoreCode string    `gorm:"column:store_code;not null;uniqueIndex:uq_store_item"`
	ItemCode  string    `gorm:"column:item_code;not null;uniqueIndex:uq_store_item"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (StoreItemExclusivity) TableName() string {
	return "store_item_exclusivity"
}
