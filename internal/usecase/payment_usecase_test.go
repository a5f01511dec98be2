package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
	paymentdto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/payment"
)

func newPaymentFixture(provider *fakeCaptureProvider) (*DefaultPaymentUsecase, *fakePaymentRepo, *fakeBalanceRepo, *fakeGachaRepo) {
	paymentRepo := newFakePaymentRepo()
	balanceRepo := newFakeBalanceRepo(paymentRepo)
	gachaRepo := newFakeGachaRepo()
	distribution := NewDefaultDistributionUsecase(paymentRepo, balanceRepo, &fakePublisher{}, testMetrics)
	gacha, _ := NewDefaultGachaUsecase(gachaRepo, testMetrics, DefaultGachaTable)
	uc := NewDefaultPaymentUsecase(paymentRepo, provider, distribution, gacha, testMetrics)
	return uc, paymentRepo, balanceRepo, gachaRepo
}

func TestCreatePaymentDefaults(t *testing.T) {
	uc, _, _, _ := newPaymentFixture(&fakeCaptureProvider{})

	out, err := uc.CreatePayment(context.Background(), &paymentdto.CreatePaymentInput{
		Amount:  "10000",
		PayeeID: "staff-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Payment.Status != domain.PaymentPending {
		t.Errorf("expected PENDING, got %s", out.Payment.Status)
	}
	if out.Payment.Currency != "JPY" {
		t.Errorf("expected JPY, got %s", out.Payment.Currency)
	}
	if out.Payment.PayerID != "" {
		t.Errorf("expected anonymous payer, got %q", out.Payment.PayerID)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	uc, _, _, _ := newPaymentFixture(&fakeCaptureProvider{})
	ctx := context.Background()

	if _, err := uc.CreatePayment(ctx, &paymentdto.CreatePaymentInput{Amount: "abc", PayeeID: "staff-1"}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("garbage amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := uc.CreatePayment(ctx, &paymentdto.CreatePaymentInput{Amount: "-100", PayeeID: "staff-1"}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("negative amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := uc.CreatePayment(ctx, &paymentdto.CreatePaymentInput{Amount: "100"}); err == nil {
		t.Error("missing payee: expected error")
	}
}

func TestCapturePaymentSuccessDistributesAndAccumulatesSpend(t *testing.T) {
	provider := &fakeCaptureProvider{result: &domain.CaptureResult{Success: true, ExternalTxnID: "txn-123"}}
	uc, paymentRepo, balanceRepo, gachaRepo := newPaymentFixture(provider)
	ctx := context.Background()

	created, err := uc.CreatePayment(ctx, &paymentdto.CreatePaymentInput{
		Amount:  "10000",
		PayeeID: "staff-1",
		PayerID: "consumer-1",
		StoreID: "store-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := uc.CapturePayment(ctx, created.Payment.ID, "tok")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if out.Payment.Status != domain.PaymentSuccess {
		t.Errorf("expected SUCCESS, got %s", out.Payment.Status)
	}
	if out.Payment.ExternalTxnID != "txn-123" {
		t.Errorf("expected txn-123, got %s", out.Payment.ExternalTxnID)
	}

	stored, _ := paymentRepo.GetPaymentByID(ctx, created.Payment.ID)
	if !stored.IsDistributed {
		t.Error("payment should be distributed after capture")
	}

	balance, err := balanceRepo.GetBalanceByStaffID(ctx, "staff-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.TotalEarned.String() != "7200.00" {
		t.Errorf("expected total_earned 7200.00, got %s", balance.TotalEarned)
	}

	spin, _ := gachaRepo.GetSpinBalance(ctx, "consumer-1", "store-1")
	if spin.TotalSpend.String() != "10000.00" {
		t.Errorf("expected spend 10000.00, got %s", spin.TotalSpend)
	}
	if spin.TotalSpin != 3 {
		t.Errorf("expected 3 spins from 10000 spend, got %d", spin.TotalSpin)
	}
}

func TestCapturePaymentProviderErrorMarksFailed(t *testing.T) {
	provider := &fakeCaptureProvider{err: errors.New("gateway unreachable")}
	uc, paymentRepo, balanceRepo, _ := newPaymentFixture(provider)
	ctx := context.Background()

	created, _ := uc.CreatePayment(ctx, &paymentdto.CreatePaymentInput{Amount: "10000", PayeeID: "staff-1"})
	_, err := uc.CapturePayment(ctx, created.Payment.ID, "tok")
	if !errors.Is(err, domain.ErrCaptureFailed) {
		t.Fatalf("expected ErrCaptureFailed, got %v", err)
	}

	stored, _ := paymentRepo.GetPaymentByID(ctx, created.Payment.ID)
	if stored.Status != domain.PaymentFailed {
		t.Errorf("expected FAILED, got %s", stored.Status)
	}
	if _, err := balanceRepo.GetBalanceByStaffID(ctx, "staff-1"); !errors.Is(err, domain.ErrBalanceNotFound) {
		t.Error("no balance mutation may happen on a failed capture")
	}
}

func TestCapturePaymentDeclined(t *testing.T) {
	provider := &fakeCaptureProvider{result: &domain.CaptureResult{Success: false, FailureReason: "card declined"}}
	uc, paymentRepo, _, _ := newPaymentFixture(provider)
	ctx := context.Background()

	created, _ := uc.CreatePayment(ctx, &paymentdto.CreatePaymentInput{Amount: "10000", PayeeID: "staff-1"})
	_, err := uc.CapturePayment(ctx, created.Payment.ID, "tok")
	if !errors.Is(err, domain.ErrCaptureFailed) {
		t.Fatalf("expected ErrCaptureFailed, got %v", err)
	}

	stored, _ := paymentRepo.GetPaymentByID(ctx, created.Payment.ID)
	if stored.Status != domain.PaymentFailed {
		t.Errorf("expected FAILED, got %s", stored.Status)
	}
}

func TestCapturePaymentOnlyOnce(t *testing.T) {
	provider := &fakeCaptureProvider{result: &domain.CaptureResult{Success: true, ExternalTxnID: "txn-1"}}
	uc, _, _, _ := newPaymentFixture(provider)
	ctx := context.Background()

	created, _ := uc.CreatePayment(ctx, &paymentdto.CreatePaymentInput{Amount: "10000", PayeeID: "staff-1"})
	if _, err := uc.CapturePayment(ctx, created.Payment.ID, "tok"); err != nil {
		t.Fatalf("first capture: %v", err)
	}
	if _, err := uc.CapturePayment(ctx, created.Payment.ID, "tok"); err == nil {
		t.Fatal("second capture must fail")
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, expected 1", provider.calls)
	}
}

func TestAnonymousCaptureSkipsSpinSpend(t *testing.T) {
	provider := &fakeCaptureProvider{result: &domain.CaptureResult{Success: true}}
	uc, _, _, gachaRepo := newPaymentFixture(provider)
	ctx := context.Background()

	created, _ := uc.CreatePayment(ctx, &paymentdto.CreatePaymentInput{Amount: "10000", PayeeID: "staff-1", StoreID: "store-1"})
	if _, err := uc.CapturePayment(ctx, created.Payment.ID, "tok"); err != nil {
		t.Fatalf("capture: %v", err)
	}

	gachaRepo.mu.Lock()
	defer gachaRepo.mu.Unlock()
	if len(gachaRepo.spins) != 0 {
		t.Errorf("anonymous payment accumulated spend: %v", gachaRepo.spins)
	}
}

func TestCancelStalePayments(t *testing.T) {
	uc, paymentRepo, _, _ := newPaymentFixture(&fakeCaptureProvider{})
	ctx := context.Background()

	old := &domain.Payment{
		ID:        "stale-1",
		Amount:    domain.MoneyFromInt(500),
		Status:    domain.PaymentPending,
		PayeeID:   "staff-1",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	fresh := &domain.Payment{
		ID:        "fresh-1",
		Amount:    domain.MoneyFromInt(500),
		Status:    domain.PaymentPending,
		PayeeID:   "staff-1",
		CreatedAt: time.Now(),
	}
	paymentRepo.CreatePayment(ctx, old)
	paymentRepo.CreatePayment(ctx, fresh)

	if err := uc.CancelStalePayments(ctx, 24*time.Hour); err != nil {
		t.Fatalf("cancel stale: %v", err)
	}

	stale, _ := paymentRepo.GetPaymentByID(ctx, "stale-1")
	if stale.Status != domain.PaymentCanceled {
		t.Errorf("expected CANCELED, got %s", stale.Status)
	}
	kept, _ := paymentRepo.GetPaymentByID(ctx, "fresh-1")
	if kept.Status != domain.PaymentPending {
		t.Errorf("expected PENDING, got %s", kept.Status)
	}
}
