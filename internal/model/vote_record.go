package model

import (
	"time"
)

// VoteRecord 投票回执，(proposal_id, voter) 唯一
type VoteRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProposalID uint   `json:"proposal_id" gorm:"not null;uniqueIndex:idx_proposal_voter"`
	Voter      string `json:"voter" gorm:"not null;uniqueIndex:idx_proposal_voter"`
	Approve    bool   `json:"approve" gorm:"not null"`
}
