package models

import (
	"time"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
)

type RestaurantModel struct {
	ID           string  `gorm:"primaryKey;type:uuid"`
	Name         string  `gorm:"not null"`
	OwnerID      string  `gorm:"type:uuid;not null;index"`
	SalesAgentID *string `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (RestaurantModel) TableName() string {
	return "restaurants"
}

type StoreModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	Name          string          `gorm:"not null"`
	RestaurantID  string          `gorm:"type:uuid;not null;index"`
	Restaurant    RestaurantModel `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	BannerMessage string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (StoreModel) TableName() string {
	return "stores"
}

type StoreUserModel struct {
	StoreID   string          `gorm:"primaryKey;type:uuid"`
	StaffID   string          `gorm:"primaryKey;type:uuid;index"`
	Role      domain.RoleKind `gorm:"not null"`
	CreatedAt time.Time
}

func (StoreUserModel) TableName() string {
	return "store_users"
}

type RestaurantUserModel struct {
	RestaurantID string          `gorm:"primaryKey;type:uuid"`
	StaffID      string          `gorm:"primaryKey;type:uuid;index"`
	Role         domain.RoleKind `gorm:"not null"`
	CreatedAt    time.Time
}

func (RestaurantUserModel) TableName() string {
	return "restaurant_users"
}
