package models

import (
	"time"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
)

type StaffModel struct {
	ID        string          `gorm:"primaryKey;type:uuid"`
	Name      string          `gorm:"not null"`
	Email     string          `gorm:"uniqueIndex;not null"`
	Kind      domain.RoleKind `gorm:"not null;index"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StaffModel) TableName() string {
	return "staffs"
}
