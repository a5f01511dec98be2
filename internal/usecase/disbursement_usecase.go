package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	publisher "github.com/throwin-app/throwin-payment-service/internal/infrastructure/kafka"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/metrics"
	disbursementdto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/disbursement"
)

type DisbursementUsecase interface {
	CreateDisbursement(ctx context.Context, input *disbursementdto.CreateDisbursementInput) (*domain.DisbursementRequest, error)
	StartProcessing(ctx context.Context, input *disbursementdto.ProcessDisbursementInput) error
	CompleteDisbursement(ctx context.Context, input *disbursementdto.ProcessDisbursementInput) error
	RejectDisbursement(ctx context.Context, input *disbursementdto.ProcessDisbursementInput) error
	GetDisbursementByID(ctx context.Context, requestID string) (*domain.DisbursementRequest, error)
	ListDisbursementsByStaff(ctx context.Context, staffID string, page, limit int) ([]*domain.DisbursementRequest, int64, error)
	ListDisbursementsByStatus(ctx context.Context, status domain.DisbursementStatus) ([]*domain.DisbursementRequest, error)
	CreateMonthlyPayouts(ctx context.Context, floor domain.Money) error
}

type DefaultDisbursementUsecase struct {
	DisbursementRepo domain.DisbursementRepository
	BalanceRepo      domain.BalanceRepository
	StaffRepo        domain.StaffRepository
	Publisher        domain.PublisherPort
	MailSender       domain.MailSender
	Metrics          *metrics.PaymentMetrics
}

func NewDefaultDisbursementUsecase(
	disbursementRepo domain.DisbursementRepository,
	balanceRepo domain.BalanceRepository,
	staffRepo domain.StaffRepository,
	pub domain.PublisherPort,
	mailSender domain.MailSender,
	paymentMetrics *metrics.PaymentMetrics) *DefaultDisbursementUsecase {

	return &DefaultDisbursementUsecase{
		DisbursementRepo: disbursementRepo,
		BalanceRepo:      balanceRepo,
		StaffRepo:        staffRepo,
		Publisher:        pub,
		MailSender:       mailSender,
		Metrics:          paymentMetrics,
	}
}

func (uc *DefaultDisbursementUsecase) CreateDisbursement(ctx context.Context, input *disbursementdto.CreateDisbursementInput) (*domain.DisbursementRequest, error) {
	amount, err := domain.ParseMoney(input.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: disbursement amount must be positive", domain.ErrInvalidAmount)
	}

	balance, err := uc.BalanceRepo.GetBalanceByStaffID(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}
	// Creation-time check only; the completion transition re-validates
	// atomically against whatever the balance is by then.
	if amount.GreaterThan(balance.Available()) {
		return nil, fmt.Errorf("%w: requested %s, available %s",
			domain.ErrInsufficientBalance, amount, balance.Available())
	}

	idGenerator, err := nanoid.Standard(12)
	if err != nil {
		return nil, err
	}

	request := &domain.DisbursementRequest{
		ID:            uuid.New().String(),
		RequestNumber: idGenerator(),
		StaffID:       input.StaffID,
		Amount:        amount,
		Status:        domain.DisbursementPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uc.DisbursementRepo.CreateDisbursement(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create disbursement request: %w", err)
	}

	uc.Metrics.RecordDisbursementCreated()
	uc.publishDisbursementEvent(request, "")
	return request, nil
}

func (uc *DefaultDisbursementUsecase) StartProcessing(ctx context.Context, input *disbursementdto.ProcessDisbursementInput) error {
	request, err := uc.DisbursementRepo.GetDisbursementByID(ctx, input.RequestID)
	if err != nil {
		return err
	}
	if !request.CanTransition(domain.DisbursementInProgress) {
		return fmt.Errorf("%w: %s -> IN_PROGRESS", domain.ErrInvalidStatusTransition, request.Status)
	}

	if err := uc.DisbursementRepo.UpdateStatusFrom(ctx, input.RequestID,
		domain.DisbursementPending, domain.DisbursementInProgress, input.AdminID); err != nil {
		return err
	}

	request.Status = domain.DisbursementInProgress
	request.ProcessedByID = input.AdminID
	uc.publishDisbursementEvent(request, input.AdminID)
	return nil
}

// CompleteDisbursement is the only transition that removes money from the
// ledger. The conditional debit and the status change commit together; if
// the balance no longer covers the amount the request stays IN_PROGRESS
// and the admin sees the error.
func (uc *DefaultDisbursementUsecase) CompleteDisbursement(ctx context.Context, input *disbursementdto.ProcessDisbursementInput) error {
	request, err := uc.DisbursementRepo.GetDisbursementByID(ctx, input.RequestID)
	if err != nil {
		return err
	}
	if !request.CanTransition(domain.DisbursementCompleted) {
		return fmt.Errorf("%w: %s -> COMPLETED", domain.ErrInvalidStatusTransition, request.Status)
	}

	if err := uc.DisbursementRepo.CompleteWithLedger(ctx, input.RequestID, input.AdminID); err != nil {
		uc.Metrics.RecordError("disbursement_complete", "ledger_debit")
		return err
	}

	amount, _ := request.Amount.Decimal().Float64()
	uc.Metrics.RecordDisbursementCompleted(settlementCurrency, amount)

	request.Status = domain.DisbursementCompleted
	request.ProcessedByID = input.AdminID
	uc.publishDisbursementEvent(request, input.AdminID)
	uc.notifyStaff(ctx, request, "Your disbursement has been completed")
	return nil
}

func (uc *DefaultDisbursementUsecase) RejectDisbursement(ctx context.Context, input *disbursementdto.ProcessDisbursementInput) error {
	request, err := uc.DisbursementRepo.GetDisbursementByID(ctx, input.RequestID)
	if err != nil {
		return err
	}
	if !request.CanTransition(domain.DisbursementRejected) {
		return fmt.Errorf("%w: %s -> REJECTED", domain.ErrInvalidStatusTransition, request.Status)
	}

	if err := uc.DisbursementRepo.UpdateStatusFrom(ctx, input.RequestID,
		domain.DisbursementPending, domain.DisbursementRejected, input.AdminID); err != nil {
		return err
	}

	uc.Metrics.RecordDisbursementRejected()
	request.Status = domain.DisbursementRejected
	request.ProcessedByID = input.AdminID
	uc.publishDisbursementEvent(request, input.AdminID)
	uc.notifyStaff(ctx, request, "Your disbursement request was rejected")
	return nil
}

func (uc *DefaultDisbursementUsecase) GetDisbursementByID(ctx context.Context, requestID string) (*domain.DisbursementRequest, error) {
	return uc.DisbursementRepo.GetDisbursementByID(ctx, requestID)
}

func (uc *DefaultDisbursementUsecase) ListDisbursementsByStaff(ctx context.Context, staffID string, page, limit int) ([]*domain.DisbursementRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.DisbursementRepo.ListDisbursementsByStaff(ctx, staffID, page, limit)
}

// ListDisbursementsByStatus is the admin work-queue view.
func (uc *DefaultDisbursementUsecase) ListDisbursementsByStatus(ctx context.Context, status domain.DisbursementStatus) ([]*domain.DisbursementRequest, error) {
	return uc.DisbursementRepo.ListDisbursementsByStatus(ctx, status)
}

// CreateMonthlyPayouts auto-creates pending requests for every staff
// balance at or above the floor, skipping staff who already have an open
// request. Runs from the background worker.
func (uc *DefaultDisbursementUsecase) CreateMonthlyPayouts(ctx context.Context, floor domain.Money) error {
	balances, err := uc.BalanceRepo.ListBalancesWithAvailableAtLeast(ctx, floor)
	if err != nil {
		return err
	}

	for _, balance := range balances {
		open, err := uc.DisbursementRepo.HasOpenDisbursement(ctx, balance.StaffID)
		if err != nil {
			slog.Error("failed to check open disbursements", "staff_id", balance.StaffID, "error", err.Error())
			continue
		}
		if open {
			continue
		}

		_, err = uc.CreateDisbursement(ctx, &disbursementdto.CreateDisbursementInput{
			StaffID: balance.StaffID,
			Amount:  balance.Available().String(),
		})
		if err != nil {
			slog.Error("failed to create monthly payout", "staff_id", balance.StaffID, "error", err.Error())
		}
	}
	return nil
}

func (uc *DefaultDisbursementUsecase) publishDisbursementEvent(request *domain.DisbursementRequest, adminID string) {
	event := publisher.DisbursementEvent{
		RequestID:   request.ID,
		StaffID:     request.StaffID,
		Amount:      request.Amount.String(),
		Status:      string(request.Status),
		ProcessedBy: adminID,
		OccurredAt:  time.Now(),
	}
	v, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal disbursement event", "request_id", request.ID, "error", err.Error())
		return
	}
	go func() {
		if err := uc.Publisher.Publish(publisher.TopicDisbursementEvents, domain.Message{Key: []byte(request.StaffID), Value: v}); err != nil {
			slog.Error("failed to publish disbursement event", "request_id", request.ID, "error", err.Error())
		}
	}()
}

// notifyStaff is a non-critical side channel; failures are logged and
// swallowed.
func (uc *DefaultDisbursementUsecase) notifyStaff(ctx context.Context, request *domain.DisbursementRequest, subject string) {
	staff, err := uc.StaffRepo.GetStaffByID(ctx, request.StaffID)
	if err != nil {
		slog.Error("failed to load staff for notification", "staff_id", request.StaffID, "error", err.Error())
		return
	}
	body := fmt.Sprintf("Request %s for %s JPY is now %s", request.RequestNumber, request.Amount, request.Status)
	go func() {
		if err := uc.MailSender.Send(subject, body, staff.Email); err != nil {
			slog.Error("failed to send disbursement mail", "staff_id", request.StaffID, "error", err.Error())
		}
	}()
}
