package repository

import (
	"context"
	"errors"
	"time"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultStaffRepository struct {
	DB *gorm.DB
}

func NewDefaultStaffRepository(db *gorm.DB) *DefaultStaffRepository {
	return &DefaultStaffRepository{DB: db}
}

// CreateStaffWithBalance creates the staff row and its balance row in one
// transaction. Nothing is left for implicit hooks.
func (r *DefaultStaffRepository) CreateStaffWithBalance(ctx context.Context, staff *domain.Staff) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mappers.ToGORMStaff(staff)).Error; err != nil {
			return err
		}
		return tx.Exec(
			`INSERT INTO balances (staff_id, created_at, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT (staff_id) DO NOTHING`,
			staff.ID, time.Now(), time.Now(),
		).Error
	})
}

func (r *DefaultStaffRepository) GetStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	var staff models.StaffModel
	if err := r.DB.WithContext(ctx).First(&staff, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	return mappers.ToDomainStaff(&staff), nil
}
