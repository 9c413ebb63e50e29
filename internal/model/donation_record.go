package model

import (
	"time"
)

// DonationRecord 捐赠流水
type DonationRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Donor  string `json:"donor" gorm:"not null;index"`
	Asset  string `json:"asset" gorm:"not null;index"` // 零地址表示原生资产
	Amount int64  `json:"amount" gorm:"not null"`      // 基础单位
	TxHash string `json:"tx_hash"`                     // 代币转入交易哈希（仅链上模式）
}
