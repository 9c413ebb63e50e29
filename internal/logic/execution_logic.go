package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dipraise1/publicfund/internal/chain"
	"github.com/Dipraise1/publicfund/internal/config"
	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/Dipraise1/publicfund/internal/notify"
	"gorm.io/gorm"
)

// ExecutionLogic 提案执行业务逻辑。
// 状态机：Active → 执行成功(executed) 或 未达标(终局失败，不退款)。
type ExecutionLogic struct {
	db       *gorm.DB
	vault    config.VaultConfig
	mover    chain.AssetMover
	notifier *notify.Notifier
	now      func() time.Time
}

// NewExecutionLogic 创建提案执行业务逻辑
func NewExecutionLogic(db *gorm.DB, vault config.VaultConfig, mover chain.AssetMover, notifier *notify.Notifier) *ExecutionLogic {
	return &ExecutionLogic{db: db, vault: vault, mover: mover, notifier: notifier, now: time.Now}
}

// ExecuteProposal 在投票窗口结束后结算提案。
// 法定参与率和多数票不达标是终局失败：提案被置为不活跃且提交落库，
// 因此对调用方返回错误的同时状态已变更。结算转账失败则整笔回滚，
// 提案保持活跃，可重试；只有外部转账成功后才标记 executed。
func (e *ExecutionLogic) ExecuteProposal(ctx context.Context, proposalID uint) (*model.Proposal, error) {
	now := e.now()

	var proposal model.Proposal
	var verdict error
	var payouts []model.PayoutRecord

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&proposal, proposalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProposalNotFound
			}
			return fmt.Errorf("failed to get proposal: %w", err)
		}

		if proposal.Executed {
			return ErrAlreadyExecuted
		}
		if !proposal.IsActive {
			return ErrProposalNotActive
		}
		if !now.After(proposal.VotingEndsAt) {
			return ErrVotingStillActive
		}

		donors, err := countDonors(tx)
		if err != nil {
			return err
		}

		// 法定参与率：按当前参与者人数、整数百分比向下取整
		votes := proposal.YesVotes + proposal.NoVotes
		if donors == 0 || votes*100/donors < e.vault.QuorumPercent {
			verdict = ErrQuorumNotReached
		} else if proposal.YesVotes <= proposal.NoVotes {
			verdict = ErrProposalRejected
		}
		if verdict != nil {
			// 终局失败：关闭提案但不标记已执行
			return tx.Model(&proposal).Updates(map[string]interface{}{
				"is_active": false,
				"executed":  false,
			}).Error
		}

		// 结算：先出账再触发外部转账，任一失败整体回滚
		if proposal.EthAmount > 0 {
			payout, err := e.settle(ctx, tx, &proposal, model.NativeAsset, proposal.EthAmount)
			if err != nil {
				return err
			}
			payouts = append(payouts, *payout)
		}
		if proposal.TokenAmount > 0 {
			payout, err := e.settle(ctx, tx, &proposal, proposal.TokenAddress, proposal.TokenAmount)
			if err != nil {
				return err
			}
			payouts = append(payouts, *payout)
		}

		return tx.Model(&proposal).Updates(map[string]interface{}{
			"is_active": false,
			"executed":  true,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	if verdict != nil {
		return nil, verdict
	}

	settlements := make([]map[string]interface{}, 0, len(payouts))
	for _, payout := range payouts {
		settlements = append(settlements, map[string]interface{}{
			"asset":   payout.Asset,
			"amount":  payout.Amount,
			"tx_hash": payout.TxHash,
		})
	}
	e.notifier.Publish(model.EventProposalExecuted, now, map[string]interface{}{
		"proposal_id":  proposal.ID,
		"recipient":    proposal.Recipient,
		"eth_amount":   proposal.EthAmount,
		"token_amount": proposal.TokenAmount,
		"token":        proposal.TokenAddress,
		"settlements":  settlements,
	})

	proposal.IsActive = false
	proposal.Executed = true
	return &proposal, nil
}

// settle 单笔资产结算：金库出账、外部转账、落出金记录
func (e *ExecutionLogic) settle(ctx context.Context, tx *gorm.DB, proposal *model.Proposal, asset string, amount int64) (*model.PayoutRecord, error) {
	if err := debitCustody(tx, asset, amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	var txHash string
	var err error
	if isNativeAsset(asset) {
		txHash, err = e.mover.PayNative(ctx, proposal.Recipient, amount)
	} else {
		txHash, err = e.mover.PayToken(ctx, asset, proposal.Recipient, amount)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	payout := model.PayoutRecord{
		Kind:       model.PayoutKindSettlement,
		ProposalID: proposal.ID,
		Recipient:  proposal.Recipient,
		Asset:      asset,
		Amount:     amount,
		TxHash:     txHash,
	}
	if err := tx.Create(&payout).Error; err != nil {
		return nil, fmt.Errorf("failed to create payout record: %w", err)
	}
	return &payout, nil
}
