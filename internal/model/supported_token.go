package model

import (
	"time"
)

// NativeAsset 原生资产的零地址标识
const NativeAsset = "0x0000000000000000000000000000000000000000"

// SupportedToken 受支持的捐赠代币
type SupportedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address  string `json:"address" gorm:"uniqueIndex;not null"`
	Symbol   string `json:"symbol" gorm:"not null"`
	Decimals uint8  `json:"decimals" gorm:"not null"`
}
