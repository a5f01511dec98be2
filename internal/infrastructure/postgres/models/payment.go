package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
)

type PaymentModel struct {
	ID             string               `gorm:"primaryKey;type:uuid"`
	Amount         decimal.Decimal      `gorm:"type:decimal(15,2);not null;index:idx_amount"`
	NetAmount      decimal.Decimal      `gorm:"type:decimal(15,2);not null;default:0"`
	Currency       string               `gorm:"not null;default:'JPY'"`
	Status         domain.PaymentStatus `gorm:"index:idx_status_created"`
	PayeeID        string               `gorm:"type:uuid;not null;index"`
	PayerID        *string              `gorm:"type:uuid"`
	RestaurantID   *string              `gorm:"type:uuid;index"`
	StoreID        *string              `gorm:"type:uuid;index"`
	ExternalTxnID  string
	IsDistributed  bool                 `gorm:"not null;default:false;index"`
	ReviewRequired bool                 `gorm:"not null;default:false;index"`
	CreatedAt      time.Time            `gorm:"index:idx_status_created;index:idx_created_at"`
	UpdatedAt      time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}
