package model

import (
	"time"
)

// 事件名称，供展示层订阅
const (
	EventEthDonationReceived   = "EthDonationReceived"
	EventTokenDonationReceived = "TokenDonationReceived"
	EventProposalCreated       = "ProposalCreated"
	EventVoteCast              = "VoteCast"
	EventProposalExecuted      = "ProposalExecuted"
	EventTokenAdded            = "TokenAdded"
	EventEmergencyWithdrawal   = "EmergencyWithdrawal"
)

// EventRecord 对外事件记录（状态提交后写入）
type EventRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Name string `json:"name" gorm:"not null;index"`
	Data string `json:"data" gorm:"type:text"` // JSON编码的事件字段
}
