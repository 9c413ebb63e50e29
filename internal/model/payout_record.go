package model

import (
	"time"
)

// PayoutKind 出金类型
type PayoutKind string

const (
	PayoutKindSettlement PayoutKind = "settlement" // 提案执行结算
	PayoutKindEmergency  PayoutKind = "emergency"  // 所有者紧急提取
)

// PayoutRecord 出金记录
type PayoutRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Kind       PayoutKind `json:"kind" gorm:"not null"`
	ProposalID uint       `json:"proposal_id" gorm:"index"` // 紧急提取为0
	Recipient  string     `json:"recipient" gorm:"not null"`
	Asset      string     `json:"asset" gorm:"not null"`
	Amount     int64      `json:"amount" gorm:"not null"`
	TxHash     string     `json:"tx_hash"`
}
