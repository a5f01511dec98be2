package repository

import (
	"context"

	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultOwnershipGraphReader answers the visibility engine's questions
// about the restaurant/store graph. Read-only.
type DefaultOwnershipGraphReader struct {
	DB *gorm.DB
}

func NewDefaultOwnershipGraphReader(db *gorm.DB) *DefaultOwnershipGraphReader {
	return &DefaultOwnershipGraphReader{DB: db}
}

func (r *DefaultOwnershipGraphReader) RestaurantIDsForSalesAgent(ctx context.Context, agentID string) ([]string, error) {
	var restaurantIDs []string
	err := r.DB.WithContext(ctx).Model(&models.RestaurantModel{}).
		Where("sales_agent_id = ?", agentID).
		Pluck("id", &restaurantIDs).Error
	return restaurantIDs, err
}

func (r *DefaultOwnershipGraphReader) RestaurantIDsForOwner(ctx context.Context, ownerID string) ([]string, error) {
	var restaurantIDs []string
	err := r.DB.WithContext(ctx).Model(&models.RestaurantModel{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &restaurantIDs).Error
	return restaurantIDs, err
}

func (r *DefaultOwnershipGraphReader) StoreIDsForRestaurants(ctx context.Context, restaurantIDs []string) ([]string, error) {
	if len(restaurantIDs) == 0 {
		return []string{}, nil
	}
	var storeIDs []string
	err := r.DB.WithContext(ctx).Model(&models.StoreModel{}).
		Where("restaurant_id IN (?)", restaurantIDs).
		Pluck("id", &storeIDs).Error
	return storeIDs, err
}
