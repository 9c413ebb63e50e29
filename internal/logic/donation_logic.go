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

// DonationLogic 捐赠账本业务逻辑
type DonationLogic struct {
	db       *gorm.DB
	mover    chain.AssetMover
	notifier *notify.Notifier
	now      func() time.Time
}

// NewDonationLogic 创建捐赠账本业务逻辑
func NewDonationLogic(db *gorm.DB, mover chain.AssetMover, notifier *notify.Notifier) *DonationLogic {
	return &DonationLogic{db: db, mover: mover, notifier: notifier, now: time.Now}
}

// DonateEth 记录原生资产捐赠
func (d *DonationLogic) DonateEth(donor string, amount int64) (*model.DonationRecord, error) {
	donor, err := normalizeAddress(donor)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	record := model.DonationRecord{Donor: donor, Asset: model.NativeAsset, Amount: amount}
	err = d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create donation record: %w", err)
		}
		if err := creditDonor(tx, donor, model.NativeAsset, amount); err != nil {
			return err
		}
		return creditCustody(tx, model.NativeAsset, amount)
	})
	if err != nil {
		return nil, err
	}

	d.notifier.Publish(model.EventEthDonationReceived, d.now(), map[string]interface{}{
		"donor":  donor,
		"amount": amount,
	})

	return &record, nil
}

// DonateToken 记录代币捐赠。先从捐赠人划转代币（需事先授权额度），
// 划转失败时整笔回滚，不留下任何部分状态。
func (d *DonationLogic) DonateToken(ctx context.Context, donor, token string, amount int64) (*model.DonationRecord, error) {
	donor, err := normalizeAddress(donor)
	if err != nil {
		return nil, err
	}
	token, err = normalizeAddress(token)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	record := model.DonationRecord{Donor: donor, Asset: token, Amount: amount}
	err = d.db.Transaction(func(tx *gorm.DB) error {
		supported, err := tokenSupported(tx, token)
		if err != nil {
			return err
		}
		if !supported {
			return ErrUnsupportedToken
		}

		// 外部划转是入账前提
		txHash, err := d.mover.PullToken(ctx, token, donor, amount)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
		record.TxHash = txHash

		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create donation record: %w", err)
		}
		if err := creditDonor(tx, donor, token, amount); err != nil {
			return err
		}
		return creditCustody(tx, token, amount)
	})
	if err != nil {
		return nil, err
	}

	d.notifier.Publish(model.EventTokenDonationReceived, d.now(), map[string]interface{}{
		"donor":  donor,
		"token":  token,
		"amount": amount,
	})

	return &record, nil
}

// EthDonations 捐赠人的原生资产累计捐赠
func (d *DonationLogic) EthDonations(donor string) (int64, error) {
	donor, err := normalizeAddress(donor)
	if err != nil {
		return 0, err
	}
	return d.donorTotal(donor, model.NativeAsset)
}

// TokenDonations 捐赠人对某代币的累计捐赠
func (d *DonationLogic) TokenDonations(donor, token string) (int64, error) {
	donor, err := normalizeAddress(donor)
	if err != nil {
		return 0, err
	}
	token, err = normalizeAddress(token)
	if err != nil {
		return 0, err
	}
	return d.donorTotal(donor, token)
}

// GetVotingPower 资格标量：全部资产累计捐赠之和（基础单位）。
// 只用于参与资格判断和展示，计票时一人一票，与该值无关。
func (d *DonationLogic) GetVotingPower(donor string) (int64, error) {
	donor, err := normalizeAddress(donor)
	if err != nil {
		return 0, err
	}
	var power int64
	err = d.db.Model(&model.DonorBalance{}).
		Where("donor = ?", donor).
		Select("COALESCE(SUM(total), 0)").
		Scan(&power).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum voting power: %w", err)
	}
	return power, nil
}

// HasDonated 是否为参与者
func (d *DonationLogic) HasDonated(donor string) (bool, error) {
	donor, err := normalizeAddress(donor)
	if err != nil {
		return false, err
	}
	return isParticipant(d.db, donor)
}

// GetDonorTokens 捐赠人捐赠过的代币地址（按首次捐赠顺序）
func (d *DonationLogic) GetDonorTokens(donor string) ([]string, error) {
	donor, err := normalizeAddress(donor)
	if err != nil {
		return nil, err
	}
	var tokens []string
	err = d.db.Model(&model.DonorBalance{}).
		Where("donor = ? AND asset <> ? AND total > 0", donor, model.NativeAsset).
		Order("id ASC").
		Pluck("asset", &tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list donor tokens: %w", err)
	}
	return tokens, nil
}

// GetTotalDonors 参与者总数
func (d *DonationLogic) GetTotalDonors() (int64, error) {
	return countDonors(d.db)
}

// GetTotalEthDonations 原生资产累计捐赠总额
func (d *DonationLogic) GetTotalEthDonations() (int64, error) {
	return d.assetTotal(model.NativeAsset)
}

// GetTotalTokenDonations 某代币累计捐赠总额
func (d *DonationLogic) GetTotalTokenDonations(token string) (int64, error) {
	token, err := normalizeAddress(token)
	if err != nil {
		return 0, err
	}
	return d.assetTotal(token)
}

// donorTotal 单人单资产累计捐赠
func (d *DonationLogic) donorTotal(donor, asset string) (int64, error) {
	var total int64
	err := d.db.Model(&model.DonorBalance{}).
		Where("donor = ? AND asset = ?", donor, asset).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum donations: %w", err)
	}
	return total, nil
}

// assetTotal 单资产全局累计捐赠
func (d *DonationLogic) assetTotal(asset string) (int64, error) {
	var total int64
	err := d.db.Model(&model.DonorBalance{}).
		Where("asset = ?", asset).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum donations: %w", err)
	}
	return total, nil
}
