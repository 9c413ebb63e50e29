package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/Dipraise1/publicfund/internal/notify"
	"gorm.io/gorm"
)

// VoteLogic 投票业务逻辑
type VoteLogic struct {
	db       *gorm.DB
	notifier *notify.Notifier
	now      func() time.Time
}

// NewVoteLogic 创建投票业务逻辑
func NewVoteLogic(db *gorm.DB, notifier *notify.Notifier) *VoteLogic {
	return &VoteLogic{db: db, notifier: notifier, now: time.Now}
}

// Vote 投票。一人一票：计票只按参与者人头加一，与捐赠规模无关。
func (v *VoteLogic) Vote(proposalID uint, voter string, approve bool) (*model.VoteRecord, error) {
	voter, err := normalizeAddress(voter)
	if err != nil {
		return nil, err
	}

	now := v.now()
	record := model.VoteRecord{ProposalID: proposalID, Voter: voter, Approve: approve}
	err = v.db.Transaction(func(tx *gorm.DB) error {
		var proposal model.Proposal
		if err := tx.First(&proposal, proposalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProposalNotFound
			}
			return fmt.Errorf("failed to get proposal: %w", err)
		}

		participant, err := isParticipant(tx, voter)
		if err != nil {
			return err
		}
		if !participant {
			return ErrNotAParticipant
		}

		if now.After(proposal.VotingEndsAt) {
			return ErrVotingClosed
		}

		var existing int64
		err = tx.Model(&model.VoteRecord{}).
			Where("proposal_id = ? AND voter = ?", proposalID, voter).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyVoted
		}

		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create vote record: %w", err)
		}

		column := "no_votes"
		if approve {
			column = "yes_votes"
		}
		return tx.Model(&proposal).Update(column, gorm.Expr(column+" + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	v.notifier.Publish(model.EventVoteCast, now, map[string]interface{}{
		"proposal_id": proposalID,
		"voter":       voter,
		"approve":     approve,
	})

	return &record, nil
}

// HasVoted 是否已对某提案投过票
func (v *VoteLogic) HasVoted(proposalID uint, voter string) (bool, error) {
	voter, err := normalizeAddress(voter)
	if err != nil {
		return false, err
	}
	var count int64
	err = v.db.Model(&model.VoteRecord{}).
		Where("proposal_id = ? AND voter = ?", proposalID, voter).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
