package domain

import "context"

type DisbursementRepository interface {
	CreateDisbursement(ctx context.Context, request *DisbursementRequest) error
	GetDisbursementByID(ctx context.Context, requestID string) (*DisbursementRequest, error)
	// UpdateStatusFrom moves the request from one status to another with a
	// guarded UPDATE; zero rows affected means a concurrent transition won
	// and the caller gets ErrInvalidStatusTransition.
	UpdateStatusFrom(ctx context.Context, requestID string, from, to DisbursementStatus, processedByID string) error
	// CompleteWithLedger runs the IN_PROGRESS -> COMPLETED transition and
	// the balance debit in one transaction; if the debit fails the
	// transition rolls back and the request keeps its prior status.
	CompleteWithLedger(ctx context.Context, requestID string, processedByID string) error
	ListDisbursementsByStaff(ctx context.Context, staffID string, page, limit int) ([]*DisbursementRequest, int64, error)
	ListDisbursementsByStatus(ctx context.Context, status DisbursementStatus) ([]*DisbursementRequest, error)
	HasOpenDisbursement(ctx context.Context, staffID string) (bool, error)
}
