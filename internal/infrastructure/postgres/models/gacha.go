package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
)

type SpinBalanceModel struct {
	ConsumerID string          `gorm:"primaryKey;type:uuid"`
	StoreID    string          `gorm:"primaryKey;type:uuid"`
	TotalSpend decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	UsedSpend  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalSpin  int64           `gorm:"not null;default:0"`
	UsedSpin   int64           `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (SpinBalanceModel) TableName() string {
	return "spin_balances"
}

type GachaHistoryModel struct {
	ID         string           `gorm:"primaryKey;type:uuid"`
	ConsumerID string           `gorm:"type:uuid;not null;index:idx_consumer_store"`
	StoreID    string           `gorm:"type:uuid;not null;index:idx_consumer_store"`
	Kind       domain.GachaKind `gorm:"not null"`
	IsConsumed bool             `gorm:"not null;default:false;index"`
	ConsumedAt *time.Time
	CreatedAt  time.Time `gorm:"index"`
}

func (GachaHistoryModel) TableName() string {
	return "gacha_histories"
}
