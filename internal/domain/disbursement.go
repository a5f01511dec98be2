package domain

import "time"

type DisbursementStatus string

const (
	DisbursementPending    DisbursementStatus = "PENDING"
	DisbursementInProgress DisbursementStatus = "IN_PROGRESS"
	DisbursementCompleted  DisbursementStatus = "COMPLETED"
	DisbursementRejected   DisbursementStatus = "REJECTED"
)

// Valid reports whether s is one of the known statuses.
func (s DisbursementStatus) Valid() bool {
	switch s {
	case DisbursementPending, DisbursementInProgress, DisbursementCompleted, DisbursementRejected:
		return true
	}
	return false
}

// DisbursementRequest is a staff withdrawal awaiting admin processing.
// Transitions only move forward; COMPLETED and REJECTED are sticky.
type DisbursementRequest struct {
	ID            string
	RequestNumber string
	StaffID       string
	Amount        Money
	Status        DisbursementStatus
	ProcessedByID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanTransition reports whether the status change is a legal forward move.
func (d *DisbursementRequest) CanTransition(next DisbursementStatus) bool {
	switch d.Status {
	case DisbursementPending:
		return next == DisbursementInProgress || next == DisbursementRejected
	case DisbursementInProgress:
		return next == DisbursementCompleted
	default:
		return false
	}
}
