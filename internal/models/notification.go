package models

import "time"

// NotificationRecord is one sent (or attempted) notification, kept for
// history and for the API.
type NotificationRecord struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	Symbol    string    `json:"symbol" gorm:"column:symbol;index;not null"`
	Message   string    `json:"message" gorm:"column:message;not null"`
	Channel   string    `json:"channel" gorm:"column:channel;not null"` // telegram, email
	Status    string    `json:"status" gorm:"column:status;not null"`   // sent, failed
	SentAt    time.Time `json:"sent_at" gorm:"column:sent_at;index"`
	CreatedAt time.Time `json:"created_at"`
}

// MarketSnapshot is one persisted market observation for a symbol.
type MarketSnapshot struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Symbol    string    `json:"symbol" gorm:"column:symbol;index;not null"`
	PriceEUR  float64   `json:"price_eur" gorm:"column:price_eur"`
	PriceUSD  float64   `json:"price_usd" gorm:"column:price_usd"`
	Change24h float64   `json:"change_24h" gorm:"column:change_24h"`
	Volume24h float64   `json:"volume_24h" gorm:"column:volume_24h"`
	Timestamp time.Time `json:"timestamp" gorm:"column:timestamp;index"`
}
