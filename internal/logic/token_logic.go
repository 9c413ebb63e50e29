package logic

import (
	"fmt"
	"time"

	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/Dipraise1/publicfund/internal/notify"
	"gorm.io/gorm"
)

// TokenLogic 代币注册表业务逻辑
type TokenLogic struct {
	db       *gorm.DB
	owner    string
	notifier *notify.Notifier
	now      func() time.Time
}

// NewTokenLogic 创建代币注册表业务逻辑
func NewTokenLogic(db *gorm.DB, owner string, notifier *notify.Notifier) *TokenLogic {
	return &TokenLogic{db: db, owner: owner, notifier: notifier, now: time.Now}
}

// AddSupportedToken 添加受支持的捐赠代币，仅所有者可调用
func (t *TokenLogic) AddSupportedToken(caller, address, symbol string, decimals uint8) (*model.SupportedToken, error) {
	caller, err := normalizeAddress(caller)
	if err != nil {
		return nil, err
	}
	if !sameAddress(caller, t.owner) {
		return nil, ErrUnauthorized
	}

	address, err = normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	if isNativeAsset(address) {
		return nil, ErrInvalidAddress
	}

	token := model.SupportedToken{Address: address, Symbol: symbol, Decimals: decimals}
	err = t.db.Transaction(func(tx *gorm.DB) error {
		supported, err := tokenSupported(tx, address)
		if err != nil {
			return err
		}
		if supported {
			return ErrAlreadySupported
		}
		if err := tx.Create(&token).Error; err != nil {
			return fmt.Errorf("failed to create supported token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.notifier.Publish(model.EventTokenAdded, t.now(), map[string]interface{}{
		"token":    token.Address,
		"symbol":   token.Symbol,
		"decimals": token.Decimals,
	})

	return &token, nil
}

// IsSupported 代币是否受支持
func (t *TokenLogic) IsSupported(address string) (bool, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return false, err
	}
	return tokenSupported(t.db, address)
}

// GetSupportedTokens 按添加顺序返回受支持代币列表
func (t *TokenLogic) GetSupportedTokens() ([]model.SupportedToken, error) {
	var tokens []model.SupportedToken
	if err := t.db.Order("id ASC").Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("failed to list supported tokens: %w", err)
	}
	return tokens, nil
}
