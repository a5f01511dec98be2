package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDisbursementRepository struct {
	DB *gorm.DB
}

func NewDefaultDisbursementRepository(db *gorm.DB) *DefaultDisbursementRepository {
	return &DefaultDisbursementRepository{DB: db}
}

func (r *DefaultDisbursementRepository) CreateDisbursement(ctx context.Context, request *domain.DisbursementRequest) error {
	requestModel := mappers.ToGORMDisbursement(request)
	return r.DB.WithContext(ctx).Create(requestModel).Error
}

func (r *DefaultDisbursementRepository) GetDisbursementByID(ctx context.Context, requestID string) (*domain.DisbursementRequest, error) {
	var request models.DisbursementRequestModel
	if err := r.DB.WithContext(ctx).First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisbursementNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDisbursement(&request), nil
}

// UpdateStatusFrom is a guarded transition: the WHERE clause pins the
// current status, so a concurrent transition leaves zero rows affected.
func (r *DefaultDisbursementRepository) UpdateStatusFrom(ctx context.Context, requestID string, from, to domain.DisbursementStatus, processedByID string) error {
	transition := r.DB.WithContext(ctx).Exec(
		`UPDATE disbursement_requests SET status = ?, processed_by_id = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		to, processedByID, time.Now(), requestID, from,
	)
	if transition.Error != nil {
		return transition.Error
	}
	if transition.RowsAffected == 0 {
		return fmt.Errorf("%w: request %s is not %s", domain.ErrInvalidStatusTransition, requestID, from)
	}
	return nil
}

// CompleteWithLedger moves IN_PROGRESS -> COMPLETED and debits the staff
// balance in one transaction. If the balance no longer covers the amount
// the transaction rolls back and the request keeps its prior status.
func (r *DefaultDisbursementRepository) CompleteWithLedger(ctx context.Context, requestID string, processedByID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.DisbursementRequestModel
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDisbursementNotFound
			}
			return err
		}

		transition := tx.Exec(
			`UPDATE disbursement_requests SET status = ?, processed_by_id = ?, updated_at = ?
			 WHERE id = ? AND status = ?`,
			domain.DisbursementCompleted, processedByID, time.Now(), requestID, domain.DisbursementInProgress,
		)
		if transition.Error != nil {
			return transition.Error
		}
		if transition.RowsAffected == 0 {
			return fmt.Errorf("%w: request %s is not in progress", domain.ErrInvalidStatusTransition, requestID)
		}

		debit := tx.Exec(
			`UPDATE balances SET total_disbursed = total_disbursed + ?, updated_at = ?
			 WHERE staff_id = ? AND total_earned - total_disbursed >= ?`,
			request.Amount, time.Now(), request.StaffID, request.Amount,
		)
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			return fmt.Errorf("%w: staff %s amount %s", domain.ErrInsufficientBalance, request.StaffID, request.Amount)
		}
		return nil
	})
}

func (r *DefaultDisbursementRepository) ListDisbursementsByStaff(ctx context.Context, staffID string, page, limit int) ([]*domain.DisbursementRequest, int64, error) {
	var total int64
	baseQuery := r.DB.WithContext(ctx).Model(&models.DisbursementRequestModel{}).
		Where("staff_id = ?", staffID)
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requestModels []models.DisbursementRequestModel
	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requestModels).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*domain.DisbursementRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, mappers.ToDomainDisbursement(&requestModels[i]))
	}
	return requests, total, nil
}

func (r *DefaultDisbursementRepository) ListDisbursementsByStatus(ctx context.Context, status domain.DisbursementStatus) ([]*domain.DisbursementRequest, error) {
	var requestModels []models.DisbursementRequestModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*domain.DisbursementRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, mappers.ToDomainDisbursement(&requestModels[i]))
	}
	return requests, nil
}

func (r *DefaultDisbursementRepository) HasOpenDisbursement(ctx context.Context, staffID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.DisbursementRequestModel{}).
		Where("staff_id = ? AND status IN (?)", staffID,
			[]domain.DisbursementStatus{domain.DisbursementPending, domain.DisbursementInProgress}).
		Count(&count).Error
	return count > 0, err
}
