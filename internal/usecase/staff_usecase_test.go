package usecase

import (
	"context"
	"testing"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
)

func TestCreateStaff(t *testing.T) {
	staffRepo := newFakeStaffRepo()
	balanceRepo := newFakeBalanceRepo(nil)
	uc := NewDefaultStaffUsecase(staffRepo, balanceRepo)
	ctx := context.Background()

	staff, err := uc.CreateStaff(ctx, "Hanako", "hanako@example.com", domain.RoleRestaurantStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staff.ID == "" {
		t.Error("expected generated staff id")
	}
	if !staff.IsActive {
		t.Error("new staff should be active")
	}

	loaded, err := uc.GetStaffByID(ctx, staff.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Email != "hanako@example.com" {
		t.Errorf("unexpected email %s", loaded.Email)
	}
}

func TestCreateStaffRequiresNameAndEmail(t *testing.T) {
	uc := NewDefaultStaffUsecase(newFakeStaffRepo(), newFakeBalanceRepo(nil))
	if _, err := uc.CreateStaff(context.Background(), "", "a@b.c", domain.RoleConsumer); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := uc.CreateStaff(context.Background(), "A", "", domain.RoleConsumer); err == nil {
		t.Error("expected error for empty email")
	}
}

func TestGetStaffBalanceCreatesMissingRow(t *testing.T) {
	staffRepo := newFakeStaffRepo()
	balanceRepo := newFakeBalanceRepo(nil)
	uc := NewDefaultStaffUsecase(staffRepo, balanceRepo)
	ctx := context.Background()

	staff, err := uc.CreateStaff(ctx, "Taro", "taro@example.com", domain.RoleRestaurantStaff)
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}

	// Staff exists but carries no ledger row yet; the read creates an
	// empty one instead of erroring.
	balance, err := uc.GetStaffBalance(ctx, staff.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if !balance.TotalEarned.IsZero() || !balance.Available().IsZero() {
		t.Errorf("expected zero balance, got earned=%s available=%s", balance.TotalEarned, balance.Available())
	}

	if _, err := balanceRepo.GetBalanceByStaffID(ctx, staff.ID); err != nil {
		t.Errorf("balance row should persist after the first read: %v", err)
	}
}

func TestGetStaffBalanceUnknownStaff(t *testing.T) {
	uc := NewDefaultStaffUsecase(newFakeStaffRepo(), newFakeBalanceRepo(nil))
	if _, err := uc.GetStaffBalance(context.Background(), "no-such-staff"); err == nil {
		t.Error("expected error for unknown staff")
	}
}
