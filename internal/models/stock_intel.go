package models

import (
	"time"

	"gorm.io/datatypes"
)

// StockIntel is the per-symbol research aggregate. The three JSON column
// groups are opaque to the backend and upserted independently of each other;
// only SocialSentiment may be cleared on its own.
type StockIntel struct {
	Symbol          string          `gorm:"primaryKey;size:32"`
	Fundamentals    datatypes.JSON  `gorm:"type:json"`
	NewsSentiment   datatypes.JSON  `gorm:"type:json"`
	SocialSentiment *datatypes.JSON `gorm:"type:json"`
	UpdatedAt       time.Time
}

func (StockIntel) TableName() string {
	return "stock_intel"
}
