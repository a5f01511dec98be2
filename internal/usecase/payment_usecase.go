package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/metrics"
	paymentdto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/payment"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	settlementCurrency = "JPY"
	captureTimeout     = 15 * time.Second
)

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.PaymentOutput, error)
	CapturePayment(ctx context.Context, paymentID, token string) (*paymentdto.PaymentOutput, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListReviewRequired(ctx context.Context) ([]*domain.Payment, error)
	CancelStalePayments(ctx context.Context, olderThan time.Duration) error
}

type DefaultPaymentUsecase struct {
	PaymentRepo     domain.PaymentRepository
	CaptureProvider domain.CaptureProvider
	Distribution    DistributionUsecase
	GachaUsecase    GachaUsecase
	Metrics         *metrics.PaymentMetrics
}

func NewDefaultPaymentUsecase(
	paymentRepo domain.PaymentRepository,
	captureProvider domain.CaptureProvider,
	distribution DistributionUsecase,
	gachaUsecase GachaUsecase,
	paymentMetrics *metrics.PaymentMetrics) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		PaymentRepo:     paymentRepo,
		CaptureProvider: captureProvider,
		Distribution:    distribution,
		GachaUsecase:    gachaUsecase,
		Metrics:         paymentMetrics,
	}
}

func (uc *DefaultPaymentUsecase) CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.PaymentOutput, error) {
	amount, err := domain.ParseMoney(input.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	if input.PayeeID == "" {
		return nil, status.Error(codes.InvalidArgument, "payee_id is required")
	}

	payment := &domain.Payment{
		ID:           uuid.New().String(),
		Amount:       amount,
		Currency:     settlementCurrency,
		Status:       domain.PaymentPending,
		PayeeID:      input.PayeeID,
		PayerID:      input.PayerID, // empty is fine, anonymous throwin
		RestaurantID: input.RestaurantID,
		StoreID:      input.StoreID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uc.PaymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	uc.Metrics.RecordPaymentCreated(payment.StoreID, payment.Currency)
	return &paymentdto.PaymentOutput{Payment: payment}, nil
}

// CapturePayment calls the provider with a bounded timeout. On provider
// failure the payment is marked FAILED and no balance is touched. On
// success it is marked SUCCESS, distributed, and the payer's spin spend is
// accumulated.
func (uc *DefaultPaymentUsecase) CapturePayment(ctx context.Context, paymentID, token string) (*paymentdto.PaymentOutput, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentPending {
		return nil, status.Error(codes.FailedPrecondition, "payment is not pending")
	}

	captureCtx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	result, err := uc.CaptureProvider.Capture(captureCtx, payment.ID, payment.Amount, token)
	if err != nil {
		slog.Error("payment capture failed", "payment_id", payment.ID, "error", err.Error())
		if updErr := uc.PaymentRepo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentFailed, ""); updErr != nil {
			slog.Error("failed to mark payment failed", "payment_id", payment.ID, "error", updErr.Error())
		}
		uc.Metrics.RecordPaymentFailed(payment.StoreID, "provider_error")
		return nil, fmt.Errorf("%w: %v", domain.ErrCaptureFailed, err)
	}
	if !result.Success {
		if updErr := uc.PaymentRepo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentFailed, result.ExternalTxnID); updErr != nil {
			slog.Error("failed to mark payment failed", "payment_id", payment.ID, "error", updErr.Error())
		}
		uc.Metrics.RecordPaymentFailed(payment.StoreID, "declined")
		return nil, fmt.Errorf("%w: %s", domain.ErrCaptureFailed, result.FailureReason)
	}

	if err := uc.PaymentRepo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentSuccess, result.ExternalTxnID); err != nil {
		return nil, fmt.Errorf("failed to mark payment success: %w", err)
	}
	payment.Status = domain.PaymentSuccess
	payment.ExternalTxnID = result.ExternalTxnID
	uc.Metrics.RecordPaymentCaptured(payment.StoreID, payment.Currency)

	if _, err := uc.Distribution.Distribute(ctx, payment.ID); err != nil {
		// Distribution failures leave the payment eligible for manual
		// redrive; the capture itself stands.
		slog.Error("distribution failed after capture", "payment_id", payment.ID, "error", err.Error())
	}

	// Identified payers earn spin spend towards the gacha.
	if payment.PayerID != "" && payment.StoreID != "" {
		if err := uc.GachaUsecase.RecordSpend(ctx, payment.PayerID, payment.StoreID, payment.Amount); err != nil {
			slog.Error("failed to accumulate spin spend", "payment_id", payment.ID, "error", err.Error())
		}
	}

	return &paymentdto.PaymentOutput{Payment: payment}, nil
}

func (uc *DefaultPaymentUsecase) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return uc.PaymentRepo.GetPaymentByID(ctx, paymentID)
}

func (uc *DefaultPaymentUsecase) ListReviewRequired(ctx context.Context) ([]*domain.Payment, error) {
	return uc.PaymentRepo.ListReviewRequired(ctx)
}

// CancelStalePayments cancels pending payments that never completed
// capture. Runs from the background worker.
func (uc *DefaultPaymentUsecase) CancelStalePayments(ctx context.Context, olderThan time.Duration) error {
	stale, err := uc.PaymentRepo.ListStalePending(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return err
	}
	for _, payment := range stale {
		if err := uc.PaymentRepo.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentCanceled, ""); err != nil {
			slog.Error("failed to cancel stale payment", "payment_id", payment.ID, "error", err.Error())
			continue
		}
	}
	return nil
}
