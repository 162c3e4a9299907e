package models

// Chain is static reference data for a retail banner (e.g. VCH "VARIOUS CHAIN").
type Chain struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ChainCode string `gorm:"column:chain_code;not null;uniqueIndex"`
	ChainName string `gorm:"column:chain_name;not null"`
}

func (Chain) TableName() string {
	return "chains"
}
