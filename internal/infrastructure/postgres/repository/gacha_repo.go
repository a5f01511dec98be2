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

type DefaultGachaRepository struct {
	DB *gorm.DB
}

func NewDefaultGachaRepository(db *gorm.DB) *DefaultGachaRepository {
	return &DefaultGachaRepository{DB: db}
}

func (r *DefaultGachaRepository) GetSpinBalance(ctx context.Context, consumerID, storeID string) (*domain.SpinBalance, error) {
	var spinBalance models.SpinBalanceModel
	err := r.DB.WithContext(ctx).
		First(&spinBalance, "consumer_id = ? AND store_id = ?", consumerID, storeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No spend yet means a zero balance, not an error.
			return &domain.SpinBalance{ConsumerID: consumerID, StoreID: storeID}, nil
		}
		return nil, err
	}
	return mappers.ToDomainSpinBalance(&spinBalance), nil
}

// AccumulateSpend upserts the pair's balance. total_spin is recomputed as
// floor(total_spend/3000) in the same statement; used_spin is never
// written here, so consumed spins survive spend edits.
func (r *DefaultGachaRepository) AccumulateSpend(ctx context.Context, consumerID, storeID string, amount domain.Money) error {
	return r.DB.WithContext(ctx).Exec(
		`INSERT INTO spin_balances (consumer_id, store_id, total_spend, used_spend, total_spin, used_spin, created_at, updated_at)
		 VALUES (?, ?, ?, 0, FLOOR(? / ?), 0, ?, ?)
		 ON CONFLICT (consumer_id, store_id) DO UPDATE SET
			total_spend = spin_balances.total_spend + EXCLUDED.total_spend,
			total_spin = FLOOR((spin_balances.total_spend + EXCLUDED.total_spend) / ?),
			updated_at = EXCLUDED.updated_at`,
		consumerID, storeID, amount.Decimal(), amount.Decimal(), domain.SpendPerSpin,
		time.Now(), time.Now(), domain.SpendPerSpin,
	).Error
}

// ConsumeSpin decrements remaining spins and writes the history row in one
// transaction. The guard in the WHERE clause is what prevents two
// concurrent plays from sharing the last spin.
func (r *DefaultGachaRepository) ConsumeSpin(ctx context.Context, history *domain.GachaHistory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		consume := tx.Exec(
			`UPDATE spin_balances SET used_spin = used_spin + 1, updated_at = ?
			 WHERE consumer_id = ? AND store_id = ? AND total_spin - used_spin > 0`,
			time.Now(), history.ConsumerID, history.StoreID,
		)
		if consume.Error != nil {
			return consume.Error
		}
		if consume.RowsAffected == 0 {
			return fmt.Errorf("%w: consumer %s store %s", domain.ErrNoSpinsAvailable, history.ConsumerID, history.StoreID)
		}

		return tx.Create(mappers.ToGORMGachaHistory(history)).Error
	})
}

func (r *DefaultGachaRepository) GetHistoryByID(ctx context.Context, historyID string) (*domain.GachaHistory, error) {
	var history models.GachaHistoryModel
	if err := r.DB.WithContext(ctx).First(&history, "id = ?", historyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGachaHistoryNotFound
		}
		return nil, err
	}
	return mappers.ToDomainGachaHistory(&history), nil
}

func (r *DefaultGachaRepository) ListHistory(ctx context.Context, consumerID, storeID string, unconsumedOnly bool) ([]*domain.GachaHistory, error) {
	query := r.DB.WithContext(ctx).
		Where("consumer_id = ? AND store_id = ?", consumerID, storeID)
	if unconsumedOnly {
		query = query.Where("is_consumed = ?", false)
	}

	var historyModels []models.GachaHistoryModel
	if err := query.Order("created_at DESC").Find(&historyModels).Error; err != nil {
		return nil, err
	}

	histories := make([]*domain.GachaHistory, 0, len(historyModels))
	for i := range historyModels {
		histories = append(histories, mappers.ToDomainGachaHistory(&historyModels[i]))
	}
	return histories, nil
}

func (r *DefaultGachaRepository) MarkConsumed(ctx context.Context, historyID string) error {
	consume := r.DB.WithContext(ctx).Exec(
		`UPDATE gacha_histories SET is_consumed = true, consumed_at = ?
		 WHERE id = ? AND is_consumed = false`,
		time.Now(), historyID,
	)
	if consume.Error != nil {
		return consume.Error
	}
	if consume.RowsAffected == 0 {
		return fmt.Errorf("%w: history %s", domain.ErrAlreadyConsumed, historyID)
	}
	return nil
}
