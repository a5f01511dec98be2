package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type StaffUsecase interface {
	CreateStaff(ctx context.Context, name, email string, kind domain.RoleKind) (*domain.Staff, error)
	GetStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)
	GetStaffBalance(ctx context.Context, staffID string) (*domain.Balance, error)
}

type DefaultStaffUsecase struct {
	StaffRepo   domain.StaffRepository
	BalanceRepo domain.BalanceRepository
}

func NewDefaultStaffUsecase(staffRepo domain.StaffRepository, balanceRepo domain.BalanceRepository) *DefaultStaffUsecase {
	return &DefaultStaffUsecase{
		StaffRepo:   staffRepo,
		BalanceRepo: balanceRepo,
	}
}

// CreateStaff creates the staff row and its balance row together. The
// ledger row is part of the same transaction, no post-creation hooks.
func (uc *DefaultStaffUsecase) CreateStaff(ctx context.Context, name, email string, kind domain.RoleKind) (*domain.Staff, error) {
	if name == "" || email == "" {
		return nil, status.Error(codes.InvalidArgument, "name and email are required")
	}

	staff := &domain.Staff{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Kind:      kind,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.StaffRepo.CreateStaffWithBalance(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (uc *DefaultStaffUsecase) GetStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	return uc.StaffRepo.GetStaffByID(ctx, staffID)
}

// GetStaffBalance returns the ledger row for an existing staff member,
// creating an empty row for staff imported before lazy balance creation.
func (uc *DefaultStaffUsecase) GetStaffBalance(ctx context.Context, staffID string) (*domain.Balance, error) {
	balance, err := uc.BalanceRepo.GetBalanceByStaffID(ctx, staffID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, domain.ErrBalanceNotFound) {
		return nil, err
	}

	if _, err := uc.StaffRepo.GetStaffByID(ctx, staffID); err != nil {
		return nil, err
	}
	if err := uc.BalanceRepo.CreateBalance(ctx, staffID); err != nil {
		return nil, err
	}
	return uc.BalanceRepo.GetBalanceByStaffID(ctx, staffID)
}
