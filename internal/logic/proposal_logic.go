package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dipraise1/publicfund/internal/config"
	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/Dipraise1/publicfund/internal/notify"
	"gorm.io/gorm"
)

// ProposalLogic 提案业务逻辑
type ProposalLogic struct {
	db       *gorm.DB
	vault    config.VaultConfig
	notifier *notify.Notifier
	now      func() time.Time
}

// NewProposalLogic 创建提案业务逻辑
func NewProposalLogic(db *gorm.DB, vault config.VaultConfig, notifier *notify.Notifier) *ProposalLogic {
	return &ProposalLogic{db: db, vault: vault, notifier: notifier, now: time.Now}
}

// CreateProposalInput 创建提案入参
type CreateProposalInput struct {
	Proposer     string
	Title        string
	Description  string
	ContentHash  string // 链下附件标识，可为空
	Recipient    string
	EthAmount    int64
	TokenAddress string // 零地址或空串表示纯原生资产提案
	TokenAmount  int64
}

// CreateProposal 创建提案。提案人必须是参与者，且距其上一次提案
// 超过冷却间隔。投票窗口自创建时刻起算。
func (p *ProposalLogic) CreateProposal(input CreateProposalInput) (*model.Proposal, error) {
	proposer, err := normalizeAddress(input.Proposer)
	if err != nil {
		return nil, err
	}
	recipient, err := normalizeAddress(input.Recipient)
	if err != nil {
		return nil, err
	}
	if isNativeAsset(recipient) {
		return nil, ErrInvalidAddress
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if input.EthAmount <= 0 && input.TokenAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	tokenAddress := ""
	if input.TokenAmount > 0 {
		tokenAddress, err = normalizeAddress(input.TokenAddress)
		if err != nil {
			return nil, err
		}
		if isNativeAsset(tokenAddress) {
			return nil, ErrInvalidAmount
		}
	}

	now := p.now()
	proposal := model.Proposal{
		CreatedAt:    now,
		Title:        input.Title,
		Description:  input.Description,
		ContentHash:  input.ContentHash,
		Proposer:     proposer,
		Recipient:    recipient,
		EthAmount:    max64(input.EthAmount, 0),
		TokenAddress: tokenAddress,
		TokenAmount:  max64(input.TokenAmount, 0),
		VotingEndsAt: now.Add(p.vault.VotingWindow()),
		IsActive:     true,
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		participant, err := isParticipant(tx, proposer)
		if err != nil {
			return err
		}
		if !participant {
			return ErrNotAParticipant
		}

		if tokenAddress != "" {
			supported, err := tokenSupported(tx, tokenAddress)
			if err != nil {
				return err
			}
			// 未注册代币上的金额不构成有效的提案金额
			if !supported {
				return ErrInvalidAmount
			}
		}

		// 冷却检查：由提案人最近一次提案的创建时间派生
		var count int64
		err = tx.Model(&model.Proposal{}).
			Where("proposer = ? AND created_at > ?", proposer, now.Add(-p.vault.CooldownWindow())).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCooldownActive
		}

		if err := tx.Create(&proposal).Error; err != nil {
			return fmt.Errorf("failed to create proposal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.notifier.Publish(model.EventProposalCreated, now, map[string]interface{}{
		"proposal_id":    proposal.ID,
		"proposer":       proposer,
		"title":          proposal.Title,
		"recipient":      recipient,
		"eth_amount":     proposal.EthAmount,
		"token_address":  proposal.TokenAddress,
		"token_amount":   proposal.TokenAmount,
		"voting_ends_at": proposal.VotingEndsAt,
	})

	return &proposal, nil
}

// GetProposal 获取提案详情
func (p *ProposalLogic) GetProposal(id uint) (*model.Proposal, error) {
	var proposal model.Proposal
	if err := p.db.First(&proposal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return &proposal, nil
}

// GetProposals 全部提案（含已关闭和已执行），按ID升序
func (p *ProposalLogic) GetProposals() ([]model.Proposal, error) {
	var proposals []model.Proposal
	if err := p.db.Order("id ASC").Find(&proposals).Error; err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return proposals, nil
}

// GetActiveProposals 未执行且仍活跃的提案，按ID升序
func (p *ProposalLogic) GetActiveProposals() ([]model.Proposal, error) {
	var proposals []model.Proposal
	err := p.db.Where("is_active = ? AND executed = ?", true, false).
		Order("id ASC").
		Find(&proposals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active proposals: %w", err)
	}
	return proposals, nil
}

// GetTotalProposals 提案总数
func (p *ProposalLogic) GetTotalProposals() (int64, error) {
	var total int64
	if err := p.db.Model(&model.Proposal{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count proposals: %w", err)
	}
	return total, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
