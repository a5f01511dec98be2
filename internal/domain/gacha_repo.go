package domain

import "context"

type GachaRepository interface {
	GetSpinBalance(ctx context.Context, consumerID, storeID string) (*SpinBalance, error)
	// AccumulateSpend upserts the (consumer, store) spin balance, adding
	// the spend and recomputing total_spin = floor(total_spend/3000) in
	// the same statement. UsedSpin is never touched.
	AccumulateSpend(ctx context.Context, consumerID, storeID string, amount Money) error
	// ConsumeSpin increments used_spin by one and inserts the history row
	// in a single transaction. The increment is guarded by
	// remaining_spin > 0; zero rows affected means ErrNoSpinsAvailable
	// and no history row is written.
	ConsumeSpin(ctx context.Context, history *GachaHistory) error
	GetHistoryByID(ctx context.Context, historyID string) (*GachaHistory, error)
	ListHistory(ctx context.Context, consumerID, storeID string, unconsumedOnly bool) ([]*GachaHistory, error)
	// MarkConsumed sets is_consumed and consumed_at once; a second call
	// fails with ErrAlreadyConsumed.
	MarkConsumed(ctx context.Context, historyID string) error
}
