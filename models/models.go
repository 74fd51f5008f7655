package models

import "time"

// Transaction types.
const (
	TypeBuy  = "buy"
	TypeSell = "sell"
)

// Holding is one row per owned symbol. Symbols are stored uppercase.
// A holding is deleted outright when its full quantity is sold, never
// left at zero.
type Holding struct {
	Symbol        string `gorm:"primaryKey"`
	QuantityOwned int64
}

// Transaction records a single buy or sell execution. Rows are
// append-only: they are never updated or deleted, and they outlive the
// holding they reference.
type Transaction struct {
	ID          uint   `gorm:"primaryKey"`
	Symbol      string `gorm:"index"`
	Type        string
	Quantity    int64
	MarketPrice int64     // cents per share at execution time
	MarketDate  time.Time `gorm:"index"`
}

// TrendSample is one observed price for a symbol on a given day. The
// unique index enforces at most one sample per (symbol, date).
type TrendSample struct {
	ID          uint   `gorm:"primaryKey"`
	Symbol      string `gorm:"uniqueIndex:idx_trend_symbol_date"`
	MarketPrice int64
	MarketDate  time.Time `gorm:"uniqueIndex:idx_trend_symbol_date"`
}
