package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/metrics"
)

// promauto registers on the default registry, so all tests in this package
// share a single metrics instance.
var testMetrics = metrics.NewPaymentMetrics()

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*domain.Payment{}}
}

func (r *fakePaymentRepo) CreatePayment(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[paymentID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	cp := *payment
	return &cp, nil
}

func (r *fakePaymentRepo) UpdatePaymentStatus(_ context.Context, paymentID string, status domain.PaymentStatus, externalTxnID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[paymentID]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	payment.Status = status
	if externalTxnID != "" {
		payment.ExternalTxnID = externalTxnID
	}
	return nil
}

func (r *fakePaymentRepo) MarkReviewRequired(_ context.Context, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[paymentID]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	payment.ReviewRequired = true
	return nil
}

func (r *fakePaymentRepo) ListReviewRequired(_ context.Context) ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.ReviewRequired {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListStalePending(_ context.Context, olderThan time.Time) ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.Status == domain.PaymentPending && p.CreatedAt.Before(olderThan) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) visible(p *domain.Payment, scope domain.Scope) bool {
	if p.Status != domain.PaymentSuccess {
		return false
	}
	if scope.Unrestricted {
		return true
	}
	for _, id := range scope.RestaurantIDs {
		if p.RestaurantID == id {
			return true
		}
	}
	return false
}

// matchFilters mirrors the SQL filter clauses, zero values meaning "not
// applied" and date_to being inclusive end of day.
func matchFilters(p *domain.Payment, filters domain.PaymentFilters) bool {
	if filters.Year > 0 && p.CreatedAt.Year() != filters.Year {
		return false
	}
	if filters.Month >= 1 && filters.Month <= 12 && int(p.CreatedAt.Month()) != filters.Month {
		return false
	}
	if filters.StoreID != "" && p.StoreID != filters.StoreID {
		return false
	}
	if filters.StaffID != "" && p.PayeeID != filters.StaffID {
		return false
	}
	if !filters.DateFrom.IsZero() && p.CreatedAt.Before(filters.DateFrom) {
		return false
	}
	if !filters.DateTo.IsZero() && !p.CreatedAt.Before(filters.DateTo.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func (r *fakePaymentRepo) Aggregate(_ context.Context, scope domain.Scope, filters domain.PaymentFilters) (*domain.PaymentAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg := &domain.PaymentAggregate{TotalAmount: domain.Zero, PendingBalance: domain.Zero}
	stores := map[string]bool{}
	days := map[string]*domain.DailyThrowinStat{}
	for _, p := range r.payments {
		if !r.visible(p, scope) || !matchFilters(p, filters) {
			continue
		}
		agg.TotalAmount = agg.TotalAmount.Add(p.Amount)
		agg.TotalThrowins++
		if p.StoreID != "" {
			stores[p.StoreID] = true
		}
		if !p.IsDistributed {
			// Same per-payment clamp as the SQL aggregate: a payment whose
			// fee exceeds its amount contributes nothing, not a negative.
			net := p.Amount.Sub(p.Amount.MulRate(processorFeeRate).Add(processorFeeFixed))
			if net.IsNegative() {
				net = domain.Zero
			}
			agg.PendingBalance = agg.PendingBalance.Add(net)
		}
		day := p.CreatedAt.Format("2006-01-02")
		stat, ok := days[day]
		if !ok {
			stat = &domain.DailyThrowinStat{Date: p.CreatedAt, TotalAmount: domain.Zero}
			days[day] = stat
		}
		stat.ThrowinCount++
		stat.TotalAmount = stat.TotalAmount.Add(p.Amount)
	}
	agg.StoreCount = int64(len(stores))
	keys := make([]string, 0, len(days))
	for key := range days {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		agg.Timeseries = append(agg.Timeseries, *days[key])
	}
	return agg, nil
}

func (r *fakePaymentRepo) ListPayments(_ context.Context, scope domain.Scope, filters domain.PaymentFilters, _, _ int) ([]*domain.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Payment
	for _, p := range r.payments {
		if r.visible(p, scope) && matchFilters(p, filters) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

type fakeBalanceRepo struct {
	mu          sync.Mutex
	balances    map[string]*domain.Balance
	distributed map[string]bool
	payments    *fakePaymentRepo
}

func newFakeBalanceRepo(payments *fakePaymentRepo) *fakeBalanceRepo {
	return &fakeBalanceRepo{
		balances:    map[string]*domain.Balance{},
		distributed: map[string]bool{},
		payments:    payments,
	}
}

func (r *fakeBalanceRepo) GetBalanceByStaffID(_ context.Context, staffID string) (*domain.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[staffID]
	if !ok {
		return nil, domain.ErrBalanceNotFound
	}
	cp := *balance
	return &cp, nil
}

func (r *fakeBalanceRepo) CreateBalance(_ context.Context, staffID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureBalance(staffID)
	return nil
}

func (r *fakeBalanceRepo) ensureBalance(staffID string) *domain.Balance {
	balance, ok := r.balances[staffID]
	if !ok {
		balance = &domain.Balance{
			StaffID:           staffID,
			TotalEarned:       domain.Zero,
			TotalDisbursed:    domain.Zero,
			ManagementBalance: domain.Zero,
			GlowShare:         domain.Zero,
			SalesAgencyShare:  domain.Zero,
			FranchiseShare:    domain.Zero,
		}
		r.balances[staffID] = balance
	}
	return balance
}

func (r *fakeBalanceRepo) ApplyDistribution(_ context.Context, result *domain.DistributionResult, staffID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.distributed[result.PaymentID] {
		return fmt.Errorf("%w: payment %s", domain.ErrAlreadyDistributed, result.PaymentID)
	}
	r.distributed[result.PaymentID] = true
	if r.payments != nil {
		r.payments.mu.Lock()
		if p, ok := r.payments.payments[result.PaymentID]; ok {
			p.IsDistributed = true
			p.NetAmount = result.Remaining
			p.ReviewRequired = false
		}
		r.payments.mu.Unlock()
	}
	balance := r.ensureBalance(staffID)
	balance.TotalEarned = balance.TotalEarned.Add(result.StaffShare)
	balance.ManagementBalance = balance.ManagementBalance.Add(result.ManagementShare)
	balance.GlowShare = balance.GlowShare.Add(result.GlowShare)
	balance.SalesAgencyShare = balance.SalesAgencyShare.Add(result.SalesAgencyShare)
	balance.FranchiseShare = balance.FranchiseShare.Add(result.FranchiseShare)
	return nil
}

func (r *fakeBalanceRepo) ApplyDisbursement(_ context.Context, staffID string, amount domain.Money) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[staffID]
	if !ok || amount.GreaterThan(balance.Available()) {
		return fmt.Errorf("%w: staff %s amount %s", domain.ErrInsufficientBalance, staffID, amount)
	}
	balance.TotalDisbursed = balance.TotalDisbursed.Add(amount)
	return nil
}

func (r *fakeBalanceRepo) ListBalancesWithAvailableAtLeast(_ context.Context, floor domain.Money) ([]*domain.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Balance
	for _, b := range r.balances {
		if !floor.GreaterThan(b.Available()) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeDisbursementRepo struct {
	mu       sync.Mutex
	requests map[string]*domain.DisbursementRequest
	balances *fakeBalanceRepo
}

func newFakeDisbursementRepo(balances *fakeBalanceRepo) *fakeDisbursementRepo {
	return &fakeDisbursementRepo{
		requests: map[string]*domain.DisbursementRequest{},
		balances: balances,
	}
}

func (r *fakeDisbursementRepo) CreateDisbursement(_ context.Context, request *domain.DisbursementRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeDisbursementRepo) GetDisbursementByID(_ context.Context, requestID string) (*domain.DisbursementRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return nil, domain.ErrDisbursementNotFound
	}
	cp := *request
	return &cp, nil
}

func (r *fakeDisbursementRepo) UpdateStatusFrom(_ context.Context, requestID string, from, to domain.DisbursementStatus, processedByID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return domain.ErrDisbursementNotFound
	}
	if request.Status != from {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, request.Status, to)
	}
	request.Status = to
	request.ProcessedByID = processedByID
	return nil
}

func (r *fakeDisbursementRepo) CompleteWithLedger(ctx context.Context, requestID string, processedByID string) error {
	r.mu.Lock()
	request, ok := r.requests[requestID]
	if !ok {
		r.mu.Unlock()
		return domain.ErrDisbursementNotFound
	}
	if request.Status != domain.DisbursementInProgress {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s -> COMPLETED", domain.ErrInvalidStatusTransition, request.Status)
	}
	staffID, amount := request.StaffID, request.Amount
	r.mu.Unlock()

	if err := r.balances.ApplyDisbursement(ctx, staffID, amount); err != nil {
		return err
	}

	r.mu.Lock()
	request.Status = domain.DisbursementCompleted
	request.ProcessedByID = processedByID
	r.mu.Unlock()
	return nil
}

func (r *fakeDisbursementRepo) ListDisbursementsByStaff(_ context.Context, staffID string, _, _ int) ([]*domain.DisbursementRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.DisbursementRequest
	for _, request := range r.requests {
		if request.StaffID == staffID {
			cp := *request
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeDisbursementRepo) ListDisbursementsByStatus(_ context.Context, status domain.DisbursementStatus) ([]*domain.DisbursementRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.DisbursementRequest
	for _, request := range r.requests {
		if request.Status == status {
			cp := *request
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDisbursementRepo) HasOpenDisbursement(_ context.Context, staffID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, request := range r.requests {
		if request.StaffID == staffID &&
			(request.Status == domain.DisbursementPending || request.Status == domain.DisbursementInProgress) {
			return true, nil
		}
	}
	return false, nil
}

type fakeGachaRepo struct {
	mu        sync.Mutex
	spins     map[string]*domain.SpinBalance
	histories map[string]*domain.GachaHistory
}

func newFakeGachaRepo() *fakeGachaRepo {
	return &fakeGachaRepo{
		spins:     map[string]*domain.SpinBalance{},
		histories: map[string]*domain.GachaHistory{},
	}
}

func spinKey(consumerID, storeID string) string {
	return consumerID + "/" + storeID
}

func (r *fakeGachaRepo) GetSpinBalance(_ context.Context, consumerID, storeID string) (*domain.SpinBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	spin, ok := r.spins[spinKey(consumerID, storeID)]
	if !ok {
		return &domain.SpinBalance{ConsumerID: consumerID, StoreID: storeID, TotalSpend: domain.Zero, UsedSpend: domain.Zero}, nil
	}
	cp := *spin
	return &cp, nil
}

func (r *fakeGachaRepo) AccumulateSpend(_ context.Context, consumerID, storeID string, amount domain.Money) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := spinKey(consumerID, storeID)
	spin, ok := r.spins[key]
	if !ok {
		spin = &domain.SpinBalance{ConsumerID: consumerID, StoreID: storeID, TotalSpend: domain.Zero, UsedSpend: domain.Zero}
		r.spins[key] = spin
	}
	spin.TotalSpend = spin.TotalSpend.Add(amount)
	spin.TotalSpin = spin.TotalSpend.Decimal().IntPart() / domain.SpendPerSpin
	return nil
}

func (r *fakeGachaRepo) ConsumeSpin(_ context.Context, history *domain.GachaHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	spin, ok := r.spins[spinKey(history.ConsumerID, history.StoreID)]
	if !ok || spin.RemainingSpin() <= 0 {
		return fmt.Errorf("%w: consumer %s store %s", domain.ErrNoSpinsAvailable, history.ConsumerID, history.StoreID)
	}
	spin.UsedSpin++
	cp := *history
	r.histories[history.ID] = &cp
	return nil
}

func (r *fakeGachaRepo) GetHistoryByID(_ context.Context, historyID string) (*domain.GachaHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	history, ok := r.histories[historyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGachaHistoryNotFound, historyID)
	}
	cp := *history
	return &cp, nil
}

func (r *fakeGachaRepo) ListHistory(_ context.Context, consumerID, storeID string, unconsumedOnly bool) ([]*domain.GachaHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.GachaHistory
	for _, history := range r.histories {
		if history.ConsumerID != consumerID || history.StoreID != storeID {
			continue
		}
		if unconsumedOnly && history.IsConsumed {
			continue
		}
		cp := *history
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeGachaRepo) MarkConsumed(_ context.Context, historyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	history, ok := r.histories[historyID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrGachaHistoryNotFound, historyID)
	}
	if history.IsConsumed {
		return fmt.Errorf("%w: history %s", domain.ErrAlreadyConsumed, historyID)
	}
	now := time.Now()
	history.IsConsumed = true
	history.ConsumedAt = &now
	return nil
}

type fakeStaffRepo struct {
	mu     sync.Mutex
	staffs map[string]*domain.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staffs: map[string]*domain.Staff{}}
}

func (r *fakeStaffRepo) CreateStaffWithBalance(_ context.Context, staff *domain.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *staff
	r.staffs[staff.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) GetStaffByID(_ context.Context, staffID string) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	staff, ok := r.staffs[staffID]
	if !ok {
		return nil, domain.ErrStaffNotFound
	}
	cp := *staff
	return &cp, nil
}

type fakeOwnership struct {
	agentRestaurants map[string][]string
	ownerRestaurants map[string][]string
	restaurantStores map[string][]string
}

func (o *fakeOwnership) RestaurantIDsForSalesAgent(_ context.Context, agentID string) ([]string, error) {
	return o.agentRestaurants[agentID], nil
}

func (o *fakeOwnership) RestaurantIDsForOwner(_ context.Context, ownerID string) ([]string, error) {
	return o.ownerRestaurants[ownerID], nil
}

func (o *fakeOwnership) StoreIDsForRestaurants(_ context.Context, restaurantIDs []string) ([]string, error) {
	var out []string
	for _, restaurantID := range restaurantIDs {
		out = append(out, o.restaurantStores[restaurantID]...)
	}
	return out, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (p *fakePublisher) Publish(_ string, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msgs...)
	return nil
}

type fakeMailSender struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailSender) Send(subject, _, recipient string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, recipient+": "+subject)
	return nil
}

type fakeCaptureProvider struct {
	result *domain.CaptureResult
	err    error
	calls  int
}

func (p *fakeCaptureProvider) Capture(_ context.Context, _ string, _ domain.Money, _ string) (*domain.CaptureResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}
