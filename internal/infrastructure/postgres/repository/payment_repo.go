package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

func (r *DefaultPaymentRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	paymentModel := mappers.ToGORMPayment(payment)
	if err := r.DB.WithContext(ctx).Create(paymentModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultPaymentRepository) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var payment models.PaymentModel
	if err := r.DB.WithContext(ctx).First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&payment), nil
}

func (r *DefaultPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, externalTxnID string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if externalTxnID != "" {
		updates["external_txn_id"] = externalTxnID
	}
	return r.DB.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("id = ?", paymentID).
		Updates(updates).Error
}

func (r *DefaultPaymentRepository) MarkReviewRequired(ctx context.Context, paymentID string) error {
	return r.DB.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{"review_required": true, "updated_at": time.Now()}).Error
}

func (r *DefaultPaymentRepository) ListReviewRequired(ctx context.Context) ([]*domain.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.DB.WithContext(ctx).
		Where("review_required = ? AND is_distributed = ?", true, false).
		Order("created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, mappers.ToDomainPayment(&paymentModels[i]))
	}
	return payments, nil
}

func (r *DefaultPaymentRepository) ListStalePending(ctx context.Context, olderThan time.Time) ([]*domain.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.DB.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.PaymentPending, olderThan).
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, mappers.ToDomainPayment(&paymentModels[i]))
	}
	return payments, nil
}

// scopedQuery narrows to successful JPY payments the scope allows, then
// ANDs the optional filters on top.
func (r *DefaultPaymentRepository) scopedQuery(ctx context.Context, scope domain.Scope, filters domain.PaymentFilters) *gorm.DB {
	query := r.DB.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("payments.status = ?", domain.PaymentSuccess).
		Where("payments.currency = ?", "JPY")

	if !scope.Unrestricted {
		query = query.Where("payments.restaurant_id IN (?)", scope.RestaurantIDs)
	}

	if filters.Year > 0 {
		query = query.Where("EXTRACT(YEAR FROM payments.created_at) = ?", filters.Year)
	}
	if filters.Month >= 1 && filters.Month <= 12 {
		query = query.Where("EXTRACT(MONTH FROM payments.created_at) = ?", filters.Month)
	}
	if filters.StoreID != "" {
		query = query.Where("payments.store_id = ?", filters.StoreID)
	}
	if filters.StaffID != "" {
		query = query.Where("payments.payee_id = ?", filters.StaffID)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("payments.created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		// Inclusive end of day.
		query = query.Where("payments.created_at < ?", filters.DateTo.AddDate(0, 0, 1))
	}
	return query
}

func (r *DefaultPaymentRepository) Aggregate(ctx context.Context, scope domain.Scope, filters domain.PaymentFilters) (*domain.PaymentAggregate, error) {
	type totalsRow struct {
		TotalAmount    decimal.Decimal
		TotalThrowins  int64
		PendingBalance decimal.Decimal
		StoreCount     int64
	}
	var totals totalsRow

	// Pending balance is the net of successful payments not yet sitting
	// in any staff balance. The per-payment net is clamped at zero so a
	// fee-exceeds-amount payment awaiting review cannot drag down the
	// genuine pending net of the others.
	err := r.scopedQuery(ctx, scope, filters).
		Select(`COALESCE(SUM(payments.amount), 0) AS total_amount,
			COUNT(*) AS total_throwins,
			COALESCE(SUM(CASE WHEN payments.is_distributed = false THEN GREATEST(payments.amount - (payments.amount * 0.036 + 40), 0) ELSE 0 END), 0) AS pending_balance,
			COUNT(DISTINCT payments.store_id) AS store_count`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	type dailyRow struct {
		Day         time.Time
		Throwins    int64
		TotalAmount decimal.Decimal
	}
	var days []dailyRow

	err = r.scopedQuery(ctx, scope, filters).
		Select(`DATE(payments.created_at) AS day,
			COUNT(*) AS throwins,
			COALESCE(SUM(payments.amount), 0) AS total_amount`).
		Group("DATE(payments.created_at)").
		Order("day ASC").
		Scan(&days).Error
	if err != nil {
		return nil, err
	}

	aggregate := &domain.PaymentAggregate{
		TotalAmount:    domain.MoneyFromDecimal(totals.TotalAmount),
		TotalThrowins:  totals.TotalThrowins,
		PendingBalance: domain.MoneyFromDecimal(totals.PendingBalance),
		StoreCount:     totals.StoreCount,
		Timeseries:     make([]domain.DailyThrowinStat, 0, len(days)),
	}
	for _, day := range days {
		aggregate.Timeseries = append(aggregate.Timeseries, domain.DailyThrowinStat{
			Date:         day.Day,
			ThrowinCount: day.Throwins,
			TotalAmount:  domain.MoneyFromDecimal(day.TotalAmount),
		})
	}
	return aggregate, nil
}

func (r *DefaultPaymentRepository) ListPayments(ctx context.Context, scope domain.Scope, filters domain.PaymentFilters, page, limit int) ([]*domain.Payment, int64, error) {
	var total int64
	baseQuery := r.scopedQuery(ctx, scope, filters)
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var paymentModels []models.PaymentModel
	offset := (page - 1) * limit
	if err := baseQuery.
		Order("payments.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*domain.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, mappers.ToDomainPayment(&paymentModels[i]))
	}
	return payments, total, nil
}
