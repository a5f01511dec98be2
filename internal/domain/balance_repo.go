package domain

import "context"

type BalanceRepository interface {
	GetBalanceByStaffID(ctx context.Context, staffID string) (*Balance, error)
	CreateBalance(ctx context.Context, staffID string) error
	// ApplyDistribution atomically credits the balance columns with the
	// computed split and marks the payment distributed, all in one
	// transaction. Returns ErrAlreadyDistributed if the payment was
	// already applied.
	ApplyDistribution(ctx context.Context, result *DistributionResult, staffID string) error
	// ApplyDisbursement debits total_disbursed only if the available
	// balance covers the amount; the check and the update happen in the
	// same statement. Returns ErrInsufficientBalance otherwise.
	ApplyDisbursement(ctx context.Context, staffID string, amount Money) error
	ListBalancesWithAvailableAtLeast(ctx context.Context, floor Money) ([]*Balance, error)
}
