package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentSuccess  PaymentStatus = "SUCCESS"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentCanceled PaymentStatus = "CANCELED"
)

// Payment is one throwin transaction. Amount is gross; NetAmount is what is
// left after the processor fee and is filled in at distribution time.
type Payment struct {
	ID             string
	Amount         Money
	NetAmount      Money
	Currency       string
	Status         PaymentStatus
	PayeeID        string
	PayerID        string // empty for anonymous throwins
	RestaurantID   string
	StoreID        string
	ExternalTxnID  string
	IsDistributed  bool
	ReviewRequired bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DistributionResult is the computed split for one payment.
type DistributionResult struct {
	PaymentID        string
	ProcessorFee     Money
	Remaining        Money
	StaffShare       Money
	ManagementShare  Money
	GlowShare        Money
	SalesAgencyShare Money
	FranchiseShare   Money
}
