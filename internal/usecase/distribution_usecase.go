package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	publisher "github.com/throwin-app/throwin-payment-service/internal/infrastructure/kafka"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/metrics"
	paymentdto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/payment"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Fixed distribution constants. All splits are floor-rounded through Money
// so the credited total never exceeds the remainder.
var (
	processorFeeRate  = decimal.NewFromFloat(0.036)
	processorFeeFixed = domain.MoneyFromInt(40)
	staffShareRate    = decimal.NewFromFloat(0.75)
	managementRate    = decimal.NewFromFloat(0.25)
	glowRate          = decimal.NewFromFloat(0.30)
	salesAgencyRate   = decimal.NewFromFloat(0.40)
	franchiseRate     = decimal.NewFromFloat(0.30)
)

type DistributionUsecase interface {
	Distribute(ctx context.Context, paymentID string) (*paymentdto.DistributionOutput, error)
	RedriveReviewRequired(ctx context.Context, paymentID string, adminID string) (*paymentdto.DistributionOutput, error)
}

type DefaultDistributionUsecase struct {
	PaymentRepo domain.PaymentRepository
	BalanceRepo domain.BalanceRepository
	Publisher   domain.PublisherPort
	Metrics     *metrics.PaymentMetrics
}

func NewDefaultDistributionUsecase(
	paymentRepo domain.PaymentRepository,
	balanceRepo domain.BalanceRepository,
	pub domain.PublisherPort,
	paymentMetrics *metrics.PaymentMetrics) *DefaultDistributionUsecase {

	return &DefaultDistributionUsecase{
		PaymentRepo: paymentRepo,
		BalanceRepo: balanceRepo,
		Publisher:   pub,
		Metrics:     paymentMetrics,
	}
}

// ComputeSplit derives the full fee/share breakdown for a gross amount.
// Pure function; the persistence side effects live in Distribute.
func ComputeSplit(paymentID string, amount domain.Money) (*domain.DistributionResult, error) {
	fee := amount.MulRate(processorFeeRate).Add(processorFeeFixed)
	remaining := amount.Sub(fee)
	if remaining.IsNegative() {
		return nil, fmt.Errorf("%w: amount=%s fee=%s", domain.ErrNegativeRemainder, amount, fee)
	}

	management := remaining.MulRate(managementRate)
	return &domain.DistributionResult{
		PaymentID:        paymentID,
		ProcessorFee:     fee,
		Remaining:        remaining,
		StaffShare:       remaining.MulRate(staffShareRate),
		ManagementShare:  management,
		GlowShare:        management.MulRate(glowRate),
		SalesAgencyShare: management.MulRate(salesAgencyRate),
		FranchiseShare:   management.MulRate(franchiseRate),
	}, nil
}

func (uc *DefaultDistributionUsecase) Distribute(ctx context.Context, paymentID string) (*paymentdto.DistributionOutput, error) {
	start := time.Now()

	payment, err := uc.PaymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status != domain.PaymentSuccess {
		uc.Metrics.RecordError("distribute", "invalid_state")
		return nil, fmt.Errorf("%w: payment %s is %s", domain.ErrInvalidPaymentState, paymentID, payment.Status)
	}
	if payment.IsDistributed {
		return nil, fmt.Errorf("%w: payment %s", domain.ErrAlreadyDistributed, paymentID)
	}

	result, err := ComputeSplit(payment.ID, payment.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrNegativeRemainder) {
			// Fee ate the whole amount. Flag for a human, never touch
			// the ledger.
			slog.Error("distribution remainder negative, flagging payment for review",
				"payment_id", payment.ID, "amount", payment.Amount.String())
			if markErr := uc.PaymentRepo.MarkReviewRequired(ctx, payment.ID); markErr != nil {
				slog.Error("failed to flag payment for review", "payment_id", payment.ID, "error", markErr.Error())
			}
			uc.Metrics.RecordReviewRequired(payment.StoreID)
		}
		return nil, err
	}

	// Mark-distributed and balance increments are one transaction inside
	// the repository; a retry after success comes back as AlreadyDistributed.
	if err := uc.BalanceRepo.ApplyDistribution(ctx, result, payment.PayeeID); err != nil {
		if errors.Is(err, domain.ErrAlreadyDistributed) {
			return nil, err
		}
		uc.Metrics.RecordError("distribute", "ledger_apply")
		return nil, status.Error(codes.Internal, err.Error())
	}

	uc.recordDistributionMetrics(payment, result, time.Since(start).Seconds())
	uc.publishDistributedEvent(payment, result)

	balance, err := uc.BalanceRepo.GetBalanceByStaffID(ctx, payment.PayeeID)
	if err != nil {
		return nil, err
	}

	return &paymentdto.DistributionOutput{Result: result, Balance: balance}, nil
}

// RedriveReviewRequired re-runs distribution for a payment that was flagged
// for manual review. Only admins drive this; the same idempotency guard
// applies.
func (uc *DefaultDistributionUsecase) RedriveReviewRequired(ctx context.Context, paymentID string, adminID string) (*paymentdto.DistributionOutput, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.ReviewRequired {
		return nil, status.Error(codes.FailedPrecondition, "payment is not flagged for review")
	}

	slog.Info("manual redrive of flagged payment", "payment_id", paymentID, "admin_id", adminID)
	return uc.Distribute(ctx, paymentID)
}

func (uc *DefaultDistributionUsecase) recordDistributionMetrics(payment *domain.Payment, result *domain.DistributionResult, seconds float64) {
	gross, _ := payment.Amount.Decimal().Float64()
	fee, _ := result.ProcessorFee.Decimal().Float64()
	staff, _ := result.StaffShare.Decimal().Float64()
	uc.Metrics.RecordDistribution(payment.StoreID, payment.Currency, gross, fee, staff, seconds)

	glow, _ := result.GlowShare.Decimal().Float64()
	sales, _ := result.SalesAgencyShare.Decimal().Float64()
	franchise, _ := result.FranchiseShare.Decimal().Float64()
	uc.Metrics.RecordManagementShare("glow", payment.Currency, glow)
	uc.Metrics.RecordManagementShare("sales_agency", payment.Currency, sales)
	uc.Metrics.RecordManagementShare("franchise", payment.Currency, franchise)
}

func (uc *DefaultDistributionUsecase) publishDistributedEvent(payment *domain.Payment, result *domain.DistributionResult) {
	event := publisher.PaymentEvent{
		PaymentID:       payment.ID,
		PayeeID:         payment.PayeeID,
		StoreID:         payment.StoreID,
		Amount:          payment.Amount.String(),
		StaffShare:      result.StaffShare.String(),
		ManagementShare: result.ManagementShare.String(),
		Status:          "DISTRIBUTED",
		OccurredAt:      time.Now(),
	}
	v, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal payment event", "payment_id", payment.ID, "error", err.Error())
		return
	}
	go func() {
		if err := uc.Publisher.Publish(publisher.TopicPaymentEvents, domain.Message{Key: []byte(payment.PayeeID), Value: v}); err != nil {
			slog.Error("failed to publish payment event", "payment_id", payment.ID, "error", err.Error())
		}
	}()
}
