package model

import (
	"time"
)

// DonorBalance 单个捐赠人对单一资产的累计捐赠
type DonorBalance struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Donor string `json:"donor" gorm:"not null;uniqueIndex:idx_donor_asset"`
	Asset string `json:"asset" gorm:"not null;uniqueIndex:idx_donor_asset"`
	Total int64  `json:"total" gorm:"not null;default:0"`
}
