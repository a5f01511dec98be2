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

type DefaultBalanceRepository struct {
	DB *gorm.DB
}

func NewDefaultBalanceRepository(db *gorm.DB) *DefaultBalanceRepository {
	return &DefaultBalanceRepository{DB: db}
}

func (r *DefaultBalanceRepository) GetBalanceByStaffID(ctx context.Context, staffID string) (*domain.Balance, error) {
	var balance models.BalanceModel
	if err := r.DB.WithContext(ctx).First(&balance, "staff_id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBalanceNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBalance(&balance), nil
}

func (r *DefaultBalanceRepository) CreateBalance(ctx context.Context, staffID string) error {
	return r.DB.WithContext(ctx).Exec(
		`INSERT INTO balances (staff_id, created_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (staff_id) DO NOTHING`,
		staffID, time.Now(), time.Now(),
	).Error
}

// ApplyDistribution marks the payment distributed and credits the balance
// columns in one transaction. The payment UPDATE is guarded by
// is_distributed = false, so a concurrent or repeated call hits zero rows
// and the whole transaction rolls back with ErrAlreadyDistributed.
func (r *DefaultBalanceRepository) ApplyDistribution(ctx context.Context, result *domain.DistributionResult, staffID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marked := tx.Exec(
			`UPDATE payments SET is_distributed = true, net_amount = ?, review_required = false, updated_at = ?
			 WHERE id = ? AND is_distributed = false`,
			result.Remaining.Decimal(), time.Now(), result.PaymentID,
		)
		if marked.Error != nil {
			return marked.Error
		}
		if marked.RowsAffected == 0 {
			return fmt.Errorf("%w: payment %s", domain.ErrAlreadyDistributed, result.PaymentID)
		}

		// Balance row is created lazily on first distribution.
		if err := tx.Exec(
			`INSERT INTO balances (staff_id, created_at, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT (staff_id) DO NOTHING`,
			staffID, time.Now(), time.Now(),
		).Error; err != nil {
			return err
		}

		return tx.Exec(
			`UPDATE balances SET
				total_earned = total_earned + ?,
				management_balance = management_balance + ?,
				glow_share = glow_share + ?,
				sales_agency_share = sales_agency_share + ?,
				franchise_share = franchise_share + ?,
				updated_at = ?
			 WHERE staff_id = ?`,
			result.StaffShare.Decimal(),
			result.ManagementShare.Decimal(),
			result.GlowShare.Decimal(),
			result.SalesAgencyShare.Decimal(),
			result.FranchiseShare.Decimal(),
			time.Now(),
			staffID,
		).Error
	})
}

// ApplyDisbursement debits total_disbursed with the sufficiency check in
// the same statement. Two concurrent approvals cannot both pass: the
// second one sees the already-debited balance.
func (r *DefaultBalanceRepository) ApplyDisbursement(ctx context.Context, staffID string, amount domain.Money) error {
	debit := r.DB.WithContext(ctx).Exec(
		`UPDATE balances SET total_disbursed = total_disbursed + ?, updated_at = ?
		 WHERE staff_id = ? AND total_earned - total_disbursed >= ?`,
		amount.Decimal(), time.Now(), staffID, amount.Decimal(),
	)
	if debit.Error != nil {
		return debit.Error
	}
	if debit.RowsAffected == 0 {
		return fmt.Errorf("%w: staff %s amount %s", domain.ErrInsufficientBalance, staffID, amount)
	}
	return nil
}

func (r *DefaultBalanceRepository) ListBalancesWithAvailableAtLeast(ctx context.Context, floor domain.Money) ([]*domain.Balance, error) {
	var balanceModels []models.BalanceModel
	if err := r.DB.WithContext(ctx).
		Where("total_earned - total_disbursed >= ?", floor.Decimal()).
		Find(&balanceModels).Error; err != nil {
		return nil, err
	}

	balances := make([]*domain.Balance, 0, len(balanceModels))
	for i := range balanceModels {
		balances = append(balances, mappers.ToDomainBalance(&balanceModels[i]))
	}
	return balances, nil
}
