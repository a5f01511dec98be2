package background

import (
	"context"
	"log"
	"time"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/usecase"
)

type BackgroundTasks struct {
	PaymentUsecase      usecase.PaymentUsecase
	DisbursementUsecase usecase.DisbursementUsecase
	MonthlyPayoutFloor  domain.Money

	stalePaymentAge time.Duration
}

func NewBackgroundTasks(paymentUC usecase.PaymentUsecase, disbursementUC usecase.DisbursementUsecase, payoutFloor domain.Money) *BackgroundTasks {
	return &BackgroundTasks{
		PaymentUsecase:      paymentUC,
		DisbursementUsecase: disbursementUC,
		MonthlyPayoutFloor:  payoutFloor,
		stalePaymentAge:     24 * time.Hour,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startStalePaymentCancel(ctx)
	go bt.startMonthlyPayouts(ctx)
}

func (bt *BackgroundTasks) startStalePaymentCancel(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.PaymentUsecase.CancelStalePayments(ctx, bt.stalePaymentAge); err != nil {
				log.Printf("Stale payment cancel error: %v\n", err)
			}
		}
	}
}

// startMonthlyPayouts fires on the first day of each month. The check
// runs hourly; CreateMonthlyPayouts itself skips staff with an open
// request, so repeated fires inside the day are harmless.
func (bt *BackgroundTasks) startMonthlyPayouts(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	var lastRun time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Day() != 1 {
				continue
			}
			if lastRun.Year() == now.Year() && lastRun.Month() == now.Month() {
				continue
			}
			if err := bt.DisbursementUsecase.CreateMonthlyPayouts(ctx, bt.MonthlyPayoutFloor); err != nil {
				log.Printf("Monthly payout error: %v\n", err)
				continue
			}
			lastRun = now
		}
	}
}
