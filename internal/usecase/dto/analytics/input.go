package analyticsdto

// ThrowinSummaryInput carries raw filter values as received from the
// caller. Unparseable values are dropped, not rejected.
type ThrowinSummaryInput struct {
	Year     string
	Month    string
	StoreID  string
	StaffID  string
	DateFrom string
	DateTo   string
}
