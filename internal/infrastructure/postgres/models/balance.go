package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceModel struct {
	StaffID           string          `gorm:"primaryKey;type:uuid"`
	TotalEarned       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalDisbursed    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ManagementBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	GlowShare         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SalesAgencyShare  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	FranchiseShare    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (BalanceModel) TableName() string {
	return "balances"
}
