package domain

import (
	"context"
	"time"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *Payment) error
	GetPaymentByID(ctx context.Context, paymentID string) (*Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID string, status PaymentStatus, externalTxnID string) error
	// MarkReviewRequired flags a payment for manual re-drive without
	// touching any balance.
	MarkReviewRequired(ctx context.Context, paymentID string) error
	ListReviewRequired(ctx context.Context) ([]*Payment, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]*Payment, error)
	// Aggregate computes the analytics rollup for successful JPY payments
	// inside the given scope, narrowed by filters.
	Aggregate(ctx context.Context, scope Scope, filters PaymentFilters) (*PaymentAggregate, error)
	ListPayments(ctx context.Context, scope Scope, filters PaymentFilters, page, limit int) ([]*Payment, int64, error)
}
