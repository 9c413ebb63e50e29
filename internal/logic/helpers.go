package logic

import (
	"errors"
	"strings"

	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// normalizeAddress 校验并规范化十六进制地址
func normalizeAddress(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", ErrInvalidAddress
	}
	return common.HexToAddress(addr).Hex(), nil
}

// isNativeAsset 零地址或空串视为原生资产
func isNativeAsset(asset string) bool {
	return asset == "" || strings.EqualFold(asset, model.NativeAsset)
}

// sameAddress 地址比较（忽略大小写）
func sameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// isParticipant 是否有过成功捐赠（派生谓词，不存独立标志位）
func isParticipant(tx *gorm.DB, donor string) (bool, error) {
	var count int64
	err := tx.Model(&model.DonorBalance{}).
		Where("donor = ? AND total > 0", donor).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// countDonors 参与者总数（任一资产累计捐赠为正的去重地址数）
func countDonors(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Model(&model.DonorBalance{}).
		Where("total > 0").
		Distinct("donor").
		Count(&count).Error
	return count, err
}

// tokenSupported 代币是否在注册表中
func tokenSupported(tx *gorm.DB, address string) (bool, error) {
	var count int64
	err := tx.Model(&model.SupportedToken{}).
		Where("address = ?", address).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// creditDonor 累加捐赠人对某资产的累计捐赠
func creditDonor(tx *gorm.DB, donor, asset string, amount int64) error {
	var balance model.DonorBalance
	err := tx.Where("donor = ? AND asset = ?", donor, asset).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&model.DonorBalance{Donor: donor, Asset: asset, Total: amount}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&balance).Update("total", gorm.Expr("total + ?", amount)).Error
}

// creditCustody 金库入账
func creditCustody(tx *gorm.DB, asset string, amount int64) error {
	var balance model.CustodyBalance
	err := tx.Where("asset = ?", asset).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&model.CustodyBalance{Asset: asset, Balance: amount}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&balance).Update("balance", gorm.Expr("balance + ?", amount)).Error
}

// debitCustody 金库出账，余额不足返回 ErrInsufficientBalance
func debitCustody(tx *gorm.DB, asset string, amount int64) error {
	var balance model.CustodyBalance
	err := tx.Where("asset = ?", asset).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInsufficientBalance
	}
	if err != nil {
		return err
	}
	if balance.Balance < amount {
		return ErrInsufficientBalance
	}
	return tx.Model(&balance).Update("balance", gorm.Expr("balance - ?", amount)).Error
}

// custodyBalance 金库当前余额
func custodyBalance(tx *gorm.DB, asset string) (int64, error) {
	var balance model.CustodyBalance
	err := tx.Where("asset = ?", asset).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance.Balance, nil
}
