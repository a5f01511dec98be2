package domain

import "time"

// Balance is the running ledger for one staff member. Created lazily on the
// first distributed payment and mutated only through the repository's
// ApplyDistribution / ApplyDisbursement operations.
type Balance struct {
	StaffID           string
	TotalEarned       Money
	TotalDisbursed    Money
	ManagementBalance Money
	GlowShare         Money
	SalesAgencyShare  Money
	FranchiseShare    Money
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Available is what the staff member can still withdraw.
func (b *Balance) Available() Money {
	return b.TotalEarned.Sub(b.TotalDisbursed)
}
