package usecase

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/metrics"
	gachadto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/gacha"
)

const probabilityTolerance = 1e-6

// GachaProbability is one row of the weighted draw table.
type GachaProbability struct {
	Kind   domain.GachaKind
	Weight float64
}

// DefaultGachaTable is the production table: gold 5%, silver 20%, bronze 75%.
var DefaultGachaTable = []GachaProbability{
	{Kind: domain.GachaGold, Weight: 0.05},
	{Kind: domain.GachaSilver, Weight: 0.20},
	{Kind: domain.GachaBronze, Weight: 0.75},
}

type GachaUsecase interface {
	Play(ctx context.Context, consumerID, storeID string) (*gachadto.PlayOutput, error)
	RecordSpend(ctx context.Context, consumerID, storeID string, amount domain.Money) error
	GetSpinBalance(ctx context.Context, consumerID, storeID string) (*domain.SpinBalance, error)
	ListHistory(ctx context.Context, consumerID, storeID string, unconsumedOnly bool) ([]*domain.GachaHistory, error)
	ConsumeReward(ctx context.Context, historyID, consumerID string) error
}

type DefaultGachaUsecase struct {
	GachaRepo domain.GachaRepository
	Metrics   *metrics.PaymentMetrics

	table      []GachaProbability
	cumulative []float64
	// randFloat is swappable in tests; the package-level source is
	// goroutine-safe.
	randFloat func() float64
}

// NewDefaultGachaUsecase validates the probability table at construction:
// weights must be non-negative and sum to 1 within 1e-6.
func NewDefaultGachaUsecase(
	gachaRepo domain.GachaRepository,
	paymentMetrics *metrics.PaymentMetrics,
	table []GachaProbability) (*DefaultGachaUsecase, error) {

	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty table", domain.ErrInvalidProbabilityTable)
	}

	sum := 0.0
	cumulative := make([]float64, 0, len(table))
	for _, row := range table {
		if row.Weight < 0 {
			return nil, fmt.Errorf("%w: negative weight for %s", domain.ErrInvalidProbabilityTable, row.Kind)
		}
		sum += row.Weight
		cumulative = append(cumulative, sum)
	}
	if math.Abs(sum-1.0) > probabilityTolerance {
		return nil, fmt.Errorf("%w: sum=%v", domain.ErrInvalidProbabilityTable, sum)
	}

	return &DefaultGachaUsecase{
		GachaRepo:  gachaRepo,
		Metrics:    paymentMetrics,
		table:      table,
		cumulative: cumulative,
		randFloat:  rand.Float64,
	}, nil
}

// draw picks a kind by cumulative weight scan.
func (uc *DefaultGachaUsecase) draw() domain.GachaKind {
	r := uc.randFloat()
	for i, bound := range uc.cumulative {
		if r < bound {
			return uc.table[i].Kind
		}
	}
	// r landed beyond the last bound on float edge; last row wins.
	return uc.table[len(uc.table)-1].Kind
}

// Play spends one spin and records the result. The spin decrement is
// guarded inside the repository transaction, so two concurrent plays on
// the last spin cannot both succeed.
func (uc *DefaultGachaUsecase) Play(ctx context.Context, consumerID, storeID string) (*gachadto.PlayOutput, error) {
	spinBalance, err := uc.GachaRepo.GetSpinBalance(ctx, consumerID, storeID)
	if err != nil {
		return nil, err
	}
	if spinBalance.RemainingSpin() <= 0 {
		return nil, fmt.Errorf("%w: consumer %s store %s", domain.ErrNoSpinsAvailable, consumerID, storeID)
	}

	kind := uc.draw()
	history := &domain.GachaHistory{
		ID:         uuid.New().String(),
		ConsumerID: consumerID,
		StoreID:    storeID,
		Kind:       kind,
		CreatedAt:  time.Now(),
	}

	if err := uc.GachaRepo.ConsumeSpin(ctx, history); err != nil {
		return nil, err
	}

	uc.Metrics.RecordGachaPlay(string(kind))
	return &gachadto.PlayOutput{
		Kind:          kind,
		HistoryID:     history.ID,
		RemainingSpin: spinBalance.RemainingSpin() - 1,
	}, nil
}

// RecordSpend accumulates spend towards spins. total_spin is recomputed
// from total_spend by the repository; used_spin is never reduced.
func (uc *DefaultGachaUsecase) RecordSpend(ctx context.Context, consumerID, storeID string, amount domain.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: spend must be positive", domain.ErrInvalidAmount)
	}
	if err := uc.GachaRepo.AccumulateSpend(ctx, consumerID, storeID, amount); err != nil {
		return fmt.Errorf("failed to accumulate spend: %w", err)
	}
	spend, _ := amount.Decimal().Float64()
	uc.Metrics.RecordSpinSpend(storeID, spend)
	return nil
}

func (uc *DefaultGachaUsecase) GetSpinBalance(ctx context.Context, consumerID, storeID string) (*domain.SpinBalance, error) {
	return uc.GachaRepo.GetSpinBalance(ctx, consumerID, storeID)
}

func (uc *DefaultGachaUsecase) ListHistory(ctx context.Context, consumerID, storeID string, unconsumedOnly bool) ([]*domain.GachaHistory, error) {
	return uc.GachaRepo.ListHistory(ctx, consumerID, storeID, unconsumedOnly)
}

// ConsumeReward marks the reward used. The history must belong to the
// requesting consumer; anyone else gets not-found rather than a hint
// that the ID exists.
func (uc *DefaultGachaUsecase) ConsumeReward(ctx context.Context, historyID, consumerID string) error {
	history, err := uc.GachaRepo.GetHistoryByID(ctx, historyID)
	if err != nil {
		return err
	}
	if history.ConsumerID != consumerID {
		return fmt.Errorf("%w: history %s", domain.ErrGachaHistoryNotFound, historyID)
	}
	return uc.GachaRepo.MarkConsumed(ctx, historyID)
}
