package domain

import "errors"

var (
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidPaymentState     = errors.New("payment is not in success state")
	ErrAlreadyDistributed      = errors.New("payment already distributed")
	ErrNegativeRemainder       = errors.New("processor fee exceeds payment amount")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrNoSpinsAvailable        = errors.New("no spins available")
	ErrInvalidProbabilityTable = errors.New("probability table does not sum to 1")
	ErrAlreadyConsumed         = errors.New("gacha result already consumed")
	ErrGachaHistoryNotFound    = errors.New("gacha history not found")
	ErrBalanceNotFound         = errors.New("balance not found")
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrDisbursementNotFound    = errors.New("disbursement request not found")
	ErrStaffNotFound           = errors.New("staff not found")
	ErrCaptureFailed           = errors.New("payment capture failed")
)
