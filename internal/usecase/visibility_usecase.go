package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	analyticsdto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/analytics"
)

type VisibilityUsecase interface {
	ScopeFor(ctx context.Context, actor domain.Actor) (domain.Scope, error)
	ThrowinSummary(ctx context.Context, actor domain.Actor, input *analyticsdto.ThrowinSummaryInput) (*analyticsdto.ThrowinSummaryOutput, error)
	ListVisiblePayments(ctx context.Context, actor domain.Actor, input *analyticsdto.ThrowinSummaryInput, page, limit int) ([]*domain.Payment, int64, error)
}

type DefaultVisibilityUsecase struct {
	PaymentRepo domain.PaymentRepository
	Ownership   domain.OwnershipGraphReader
}

func NewDefaultVisibilityUsecase(
	paymentRepo domain.PaymentRepository,
	ownership domain.OwnershipGraphReader) *DefaultVisibilityUsecase {

	return &DefaultVisibilityUsecase{
		PaymentRepo: paymentRepo,
		Ownership:   ownership,
	}
}

// ScopeFor resolves the actor's role into a visibility scope. Roles are
// mutually exclusive; anything unrecognized falls through to deny-all
// rather than an error.
func (uc *DefaultVisibilityUsecase) ScopeFor(ctx context.Context, actor domain.Actor) (domain.Scope, error) {
	switch {
	case actor.Kind.IsAdmin():
		return domain.Scope{Unrestricted: true}, nil

	case actor.Kind == domain.RoleSalesAgent:
		restaurantIDs, err := uc.Ownership.RestaurantIDsForSalesAgent(ctx, actor.ID)
		if err != nil {
			return domain.DenyAllScope, fmt.Errorf("failed to resolve sales agent restaurants: %w", err)
		}
		return domain.Scope{RestaurantIDs: restaurantIDs}, nil

	case actor.Kind == domain.RoleRestaurantOwner:
		restaurantIDs, err := uc.Ownership.RestaurantIDsForOwner(ctx, actor.ID)
		if err != nil {
			return domain.DenyAllScope, fmt.Errorf("failed to resolve owned restaurants: %w", err)
		}
		return domain.Scope{RestaurantIDs: restaurantIDs}, nil

	default:
		return domain.DenyAllScope, nil
	}
}

// parseFilters applies the soft-fail policy: anything unparseable is
// dropped, and filters_applied records only what actually took effect.
func parseFilters(input *analyticsdto.ThrowinSummaryInput) (domain.PaymentFilters, map[string]string) {
	filters := domain.PaymentFilters{}
	applied := map[string]string{}
	if input == nil {
		return filters, applied
	}

	if input.Year != "" {
		if year, err := strconv.Atoi(input.Year); err == nil && year > 0 {
			filters.Year = year
			applied["year"] = input.Year
		}
	}
	if input.Month != "" {
		if month, err := strconv.Atoi(input.Month); err == nil && month >= 1 && month <= 12 {
			filters.Month = month
			applied["month"] = input.Month
		}
	}
	if input.StoreID != "" {
		if _, err := uuid.Parse(input.StoreID); err == nil {
			filters.StoreID = input.StoreID
			applied["store_id"] = input.StoreID
		}
	}
	if input.StaffID != "" {
		if _, err := uuid.Parse(input.StaffID); err == nil {
			filters.StaffID = input.StaffID
			applied["staff_id"] = input.StaffID
		}
	}
	if input.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", input.DateFrom); err == nil {
			filters.DateFrom = from
			applied["date_from"] = input.DateFrom
		}
	}
	if input.DateTo != "" {
		if to, err := time.Parse("2006-01-02", input.DateTo); err == nil {
			filters.DateTo = to
			applied["date_to"] = input.DateTo
		}
	}
	return filters, applied
}

// restrictStoreFilter drops a store_id filter that points outside the
// actor's restaurants. Same soft-fail policy as unparseable input: the
// filter vanishes from filters_applied instead of erroring.
func (uc *DefaultVisibilityUsecase) restrictStoreFilter(ctx context.Context, scope domain.Scope, filters *domain.PaymentFilters, applied map[string]string) {
	if scope.Unrestricted || filters.StoreID == "" {
		return
	}

	storeIDs, err := uc.Ownership.StoreIDsForRestaurants(ctx, scope.RestaurantIDs)
	if err != nil {
		slog.Error("failed to resolve stores for scope, dropping store filter",
			"store_id", filters.StoreID, "error", err.Error())
	}
	for _, storeID := range storeIDs {
		if storeID == filters.StoreID {
			return
		}
	}

	filters.StoreID = ""
	delete(applied, "store_id")
}

func (uc *DefaultVisibilityUsecase) ThrowinSummary(ctx context.Context, actor domain.Actor, input *analyticsdto.ThrowinSummaryInput) (*analyticsdto.ThrowinSummaryOutput, error) {
	scope, err := uc.ScopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	filters, applied := parseFilters(input)

	if scope.AllowsNothing() {
		slog.Info("deny-all scope, returning empty summary", "actor_id", actor.ID, "actor_kind", string(actor.Kind))
		return emptySummary(applied), nil
	}
	uc.restrictStoreFilter(ctx, scope, &filters, applied)

	aggregate, err := uc.PaymentRepo.Aggregate(ctx, scope, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}

	out := &analyticsdto.ThrowinSummaryOutput{
		FiltersApplied:   applied,
		TotalAmountJPY:   aggregate.TotalAmount.String(),
		TotalThrowins:    aggregate.TotalThrowins,
		LatestBalanceJPY: aggregate.PendingBalance.String(),
		TotalStores:      aggregate.StoreCount,
		Timeseries:       make([]analyticsdto.DailyStat, 0, len(aggregate.Timeseries)),
	}
	for _, day := range aggregate.Timeseries {
		out.Timeseries = append(out.Timeseries, analyticsdto.DailyStat{
			Date:         day.Date.Format("2006-01-02"),
			ThrowinCount: day.ThrowinCount,
			TotalAmount:  day.TotalAmount.String(),
		})
	}
	return out, nil
}

func (uc *DefaultVisibilityUsecase) ListVisiblePayments(ctx context.Context, actor domain.Actor, input *analyticsdto.ThrowinSummaryInput, page, limit int) ([]*domain.Payment, int64, error) {
	scope, err := uc.ScopeFor(ctx, actor)
	if err != nil {
		return nil, 0, err
	}
	if scope.AllowsNothing() {
		return []*domain.Payment{}, 0, nil
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	filters, applied := parseFilters(input)
	uc.restrictStoreFilter(ctx, scope, &filters, applied)
	return uc.PaymentRepo.ListPayments(ctx, scope, filters, page, limit)
}

func emptySummary(applied map[string]string) *analyticsdto.ThrowinSummaryOutput {
	return &analyticsdto.ThrowinSummaryOutput{
		FiltersApplied:   applied,
		TotalAmountJPY:   domain.Zero.String(),
		TotalThrowins:    0,
		LatestBalanceJPY: domain.Zero.String(),
		TotalStores:      0,
		Timeseries:       []analyticsdto.DailyStat{},
	}
}
