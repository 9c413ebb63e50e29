package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/Dipraise1/publicfund/internal/chain"
	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/Dipraise1/publicfund/internal/notify"
	"gorm.io/gorm"
)

// CustodyLogic 金库托管业务逻辑
type CustodyLogic struct {
	db       *gorm.DB
	owner    string
	mover    chain.AssetMover
	notifier *notify.Notifier
	now      func() time.Time
}

// NewCustodyLogic 创建金库托管业务逻辑
func NewCustodyLogic(db *gorm.DB, owner string, mover chain.AssetMover, notifier *notify.Notifier) *CustodyLogic {
	return &CustodyLogic{db: db, owner: owner, mover: mover, notifier: notifier, now: time.Now}
}

// GetEthBalance 金库原生资产余额
func (c *CustodyLogic) GetEthBalance() (int64, error) {
	return custodyBalance(c.db, model.NativeAsset)
}

// GetTokenBalance 金库某代币余额
func (c *CustodyLogic) GetTokenBalance(token string) (int64, error) {
	token, err := normalizeAddress(token)
	if err != nil {
		return 0, err
	}
	return custodyBalance(c.db, token)
}

// EmergencyWithdraw 所有者紧急提取。
// 信任假设：该操作绕过提案和投票，直接把托管资产转给所有者，
// 是刻意保留的中心化后门，独立授权、独立审计，不混入正常结算。
func (c *CustodyLogic) EmergencyWithdraw(ctx context.Context, caller, asset string, amount int64) (*model.PayoutRecord, error) {
	caller, err := normalizeAddress(caller)
	if err != nil {
		return nil, err
	}
	if !sameAddress(caller, c.owner) {
		return nil, ErrUnauthorized
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	target := model.NativeAsset
	if !isNativeAsset(asset) {
		target, err = normalizeAddress(asset)
		if err != nil {
			return nil, err
		}
	}

	payout := model.PayoutRecord{
		Kind:      model.PayoutKindEmergency,
		Recipient: caller,
		Asset:     target,
		Amount:    amount,
	}
	err = c.db.Transaction(func(tx *gorm.DB) error {
		if err := debitCustody(tx, target, amount); err != nil {
			return err
		}

		var txHash string
		var err error
		if isNativeAsset(target) {
			txHash, err = c.mover.PayNative(ctx, caller, amount)
		} else {
			txHash, err = c.mover.PayToken(ctx, target, caller, amount)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSettlementFailed, err)
		}
		payout.TxHash = txHash

		if err := tx.Create(&payout).Error; err != nil {
			return fmt.Errorf("failed to create payout record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notifier.Publish(model.EventEmergencyWithdrawal, c.now(), map[string]interface{}{
		"owner":  caller,
		"asset":  target,
		"amount": amount,
	})

	return &payout, nil
}

// GetPayouts 出金记录查询
func (c *CustodyLogic) GetPayouts(kind model.PayoutKind, page, pageSize int) ([]model.PayoutRecord, int64, error) {
	var payouts []model.PayoutRecord
	var total int64

	query := c.db.Model(&model.PayoutRecord{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payouts: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("id DESC").Find(&payouts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payouts: %w", err)
	}

	return payouts, total, nil
}
