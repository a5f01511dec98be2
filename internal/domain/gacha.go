package domain

import "time"

type GachaKind string

const (
	GachaGold   GachaKind = "gold"
	GachaSilver GachaKind = "silver"
	GachaBronze GachaKind = "bronze"
)

// SpendPerSpin is how much accumulated spend earns one gacha spin.
const SpendPerSpin int64 = 3000

// SpinBalance tracks spend-to-spin conversion per (consumer, store) pair.
// TotalSpin is recomputed as floor(TotalSpend/3000) whenever spend changes
// and never decreases UsedSpin.
type SpinBalance struct {
	ConsumerID string
	StoreID    string
	TotalSpend Money
	UsedSpend  Money
	TotalSpin  int64
	UsedSpin   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *SpinBalance) RemainingSpin() int64 {
	return s.TotalSpin - s.UsedSpin
}

// GachaHistory is one gacha play. Immutable once created, except for the
// consumption mark.
type GachaHistory struct {
	ID         string
	ConsumerID string
	StoreID    string
	Kind       GachaKind
	IsConsumed bool
	ConsumedAt *time.Time
	CreatedAt  time.Time
}
