package model

import (
	"time"
)

// CustodyBalance 金库托管余额，按资产一行
type CustodyBalance struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Asset   string `json:"asset" gorm:"not null;uniqueIndex"`
	Balance int64  `json:"balance" gorm:"not null;default:0"`
}
