package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
)

func TestGachaTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		table   []GachaProbability
		wantErr bool
	}{
		{name: "default table", table: DefaultGachaTable},
		{name: "empty", table: nil, wantErr: true},
		{name: "sum below one", table: []GachaProbability{
			{Kind: domain.GachaGold, Weight: 0.1},
			{Kind: domain.GachaBronze, Weight: 0.8},
		}, wantErr: true},
		{name: "sum above one", table: []GachaProbability{
			{Kind: domain.GachaGold, Weight: 0.5},
			{Kind: domain.GachaBronze, Weight: 0.6},
		}, wantErr: true},
		{name: "negative weight", table: []GachaProbability{
			{Kind: domain.GachaGold, Weight: -0.1},
			{Kind: domain.GachaBronze, Weight: 1.1},
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefaultGachaUsecase(newFakeGachaRepo(), testMetrics, tt.table)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidProbabilityTable) {
					t.Fatalf("expected ErrInvalidProbabilityTable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGachaDrawIsDeterministicUnderFixedRand(t *testing.T) {
	uc, err := NewDefaultGachaUsecase(newFakeGachaRepo(), testMetrics, DefaultGachaTable)
	if err != nil {
		t.Fatalf("ctor: %v", err)
	}

	tests := []struct {
		r    float64
		want domain.GachaKind
	}{
		{0.0, domain.GachaGold},
		{0.049, domain.GachaGold},
		{0.05, domain.GachaSilver},
		{0.249, domain.GachaSilver},
		{0.25, domain.GachaBronze},
		{0.999, domain.GachaBronze},
	}
	for _, tt := range tests {
		uc.randFloat = func() float64 { return tt.r }
		if got := uc.draw(); got != tt.want {
			t.Errorf("r=%v: expected %s, got %s", tt.r, tt.want, got)
		}
	}
}

func TestSpendAccumulatesSpins(t *testing.T) {
	repo := newFakeGachaRepo()
	uc, _ := NewDefaultGachaUsecase(repo, testMetrics, DefaultGachaTable)
	ctx := context.Background()

	// 2999 is not enough for a spin; 3000 total is exactly one.
	spend, _ := domain.ParseMoney("2999")
	if err := uc.RecordSpend(ctx, "c1", "s1", spend); err != nil {
		t.Fatalf("record spend: %v", err)
	}
	spin, _ := uc.GetSpinBalance(ctx, "c1", "s1")
	if spin.TotalSpin != 0 {
		t.Errorf("expected 0 spins at 2999 spend, got %d", spin.TotalSpin)
	}

	one := domain.MoneyFromInt(1)
	if err := uc.RecordSpend(ctx, "c1", "s1", one); err != nil {
		t.Fatalf("record spend: %v", err)
	}
	spin, _ = uc.GetSpinBalance(ctx, "c1", "s1")
	if spin.TotalSpin != 1 {
		t.Errorf("expected 1 spin at 3000 spend, got %d", spin.TotalSpin)
	}

	// 9000 total spend is three spins.
	more, _ := domain.ParseMoney("6000")
	uc.RecordSpend(ctx, "c1", "s1", more)
	spin, _ = uc.GetSpinBalance(ctx, "c1", "s1")
	if spin.TotalSpin != 3 {
		t.Errorf("expected 3 spins at 9000 spend, got %d", spin.TotalSpin)
	}
}

func TestRecordSpendRejectsNonPositive(t *testing.T) {
	uc, _ := NewDefaultGachaUsecase(newFakeGachaRepo(), testMetrics, DefaultGachaTable)
	if err := uc.RecordSpend(context.Background(), "c1", "s1", domain.Zero); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestPlaySpendsSpinsAndStops(t *testing.T) {
	repo := newFakeGachaRepo()
	uc, _ := NewDefaultGachaUsecase(repo, testMetrics, DefaultGachaTable)
	uc.randFloat = func() float64 { return 0.5 } // always bronze
	ctx := context.Background()

	spend, _ := domain.ParseMoney("9000")
	uc.RecordSpend(ctx, "c1", "s1", spend)

	for i := 0; i < 3; i++ {
		out, err := uc.Play(ctx, "c1", "s1")
		if err != nil {
			t.Fatalf("play %d: %v", i+1, err)
		}
		if out.Kind != domain.GachaBronze {
			t.Errorf("play %d: expected bronze, got %s", i+1, out.Kind)
		}
		if out.RemainingSpin != int64(2-i) {
			t.Errorf("play %d: expected %d remaining, got %d", i+1, 2-i, out.RemainingSpin)
		}
	}

	_, err := uc.Play(ctx, "c1", "s1")
	if !errors.Is(err, domain.ErrNoSpinsAvailable) {
		t.Fatalf("expected ErrNoSpinsAvailable, got %v", err)
	}

	histories, _ := uc.ListHistory(ctx, "c1", "s1", false)
	if len(histories) != 3 {
		t.Errorf("expected 3 history rows, got %d", len(histories))
	}
}

func TestConsumeRewardIsOneShot(t *testing.T) {
	repo := newFakeGachaRepo()
	uc, _ := NewDefaultGachaUsecase(repo, testMetrics, DefaultGachaTable)
	ctx := context.Background()

	spend, _ := domain.ParseMoney("3000")
	uc.RecordSpend(ctx, "c1", "s1", spend)
	out, err := uc.Play(ctx, "c1", "s1")
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	if err := uc.ConsumeReward(ctx, out.HistoryID, "c1"); err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if err := uc.ConsumeReward(ctx, out.HistoryID, "c1"); !errors.Is(err, domain.ErrAlreadyConsumed) {
		t.Fatalf("expected ErrAlreadyConsumed, got %v", err)
	}

	unconsumed, _ := uc.ListHistory(ctx, "c1", "s1", true)
	if len(unconsumed) != 0 {
		t.Errorf("expected no unconsumed histories, got %d", len(unconsumed))
	}
}

func TestConsumeRewardChecksOwnership(t *testing.T) {
	repo := newFakeGachaRepo()
	uc, _ := NewDefaultGachaUsecase(repo, testMetrics, DefaultGachaTable)
	ctx := context.Background()

	spend, _ := domain.ParseMoney("3000")
	uc.RecordSpend(ctx, "c1", "s1", spend)
	out, err := uc.Play(ctx, "c1", "s1")
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	// Another consumer cannot tell the ID exists, let alone consume it.
	if err := uc.ConsumeReward(ctx, out.HistoryID, "c2"); !errors.Is(err, domain.ErrGachaHistoryNotFound) {
		t.Fatalf("expected ErrGachaHistoryNotFound for foreign consumer, got %v", err)
	}
	if err := uc.ConsumeReward(ctx, "no-such-history", "c1"); !errors.Is(err, domain.ErrGachaHistoryNotFound) {
		t.Fatalf("expected ErrGachaHistoryNotFound for unknown id, got %v", err)
	}

	// The owner still can.
	if err := uc.ConsumeReward(ctx, out.HistoryID, "c1"); err != nil {
		t.Fatalf("owner consume: %v", err)
	}
}
