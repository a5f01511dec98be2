package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
)

type DisbursementRequestModel struct {
	ID            string                    `gorm:"primaryKey;type:uuid"`
	RequestNumber string                    `gorm:"uniqueIndex;not null"`
	StaffID       string                    `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal           `gorm:"type:decimal(15,2);not null"`
	Status        domain.DisbursementStatus `gorm:"not null;index"`
	ProcessedByID *string                   `gorm:"type:uuid"`
	CreatedAt     time.Time                 `gorm:"index"`
	UpdatedAt     time.Time
}

func (DisbursementRequestModel) TableName() string {
	return "disbursement_requests"
}
