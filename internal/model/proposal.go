package model

import (
	"time"
)

// Proposal 资金使用提案
type Proposal struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	ContentHash string `json:"content_hash"` // 链下附件标识，不做解析
	Proposer    string `json:"proposer" gorm:"not null;index"`

	// 转账条款（原生金额与代币金额二选一）
	Recipient    string `json:"recipient" gorm:"not null"`
	EthAmount    int64  `json:"eth_amount" gorm:"default:0"`
	TokenAddress string `json:"token_address"`
	TokenAmount  int64  `json:"token_amount" gorm:"default:0"`

	// 投票
	VotingEndsAt time.Time `json:"voting_ends_at" gorm:"not null"`
	YesVotes     int64     `json:"yes_votes" gorm:"default:0"`
	NoVotes      int64     `json:"no_votes" gorm:"default:0"`

	// 状态
	Executed bool `json:"executed" gorm:"default:false"`
	IsActive bool `json:"is_active" gorm:"default:true"`
}
