package domain

import "time"

// Scope is what an actor's role entitles them to see. It is a value object,
// not a query: repositories translate it into WHERE clauses and every
// further filter is combined with AND.
type Scope struct {
	// Unrestricted short-circuits restaurant filtering for admin roles.
	Unrestricted bool
	// RestaurantIDs limits visibility to these restaurants when not
	// unrestricted. Empty with Unrestricted=false means deny-all.
	RestaurantIDs []string
}

var DenyAllScope = Scope{}

// AllowsNothing reports whether the scope yields zero rows by construction.
func (s Scope) AllowsNothing() bool {
	return !s.Unrestricted && len(s.RestaurantIDs) == 0
}

// PaymentFilters are optional narrowing filters applied after role scoping.
// Zero values mean "not applied". Unparseable caller input never reaches
// this struct; the delivery layer drops bad values silently.
type PaymentFilters struct {
	Year     int
	Month    int
	StoreID  string
	StaffID  string
	DateFrom time.Time
	DateTo   time.Time
}

// DailyThrowinStat is one day of the analytics time series.
type DailyThrowinStat struct {
	Date         time.Time
	ThrowinCount int64
	TotalAmount  Money
}

// PaymentAggregate is what the payment repository computes for the
// analytics endpoint, before delivery-layer shaping.
type PaymentAggregate struct {
	TotalAmount    Money
	TotalThrowins  int64
	PendingBalance Money
	StoreCount     int64
	Timeseries     []DailyThrowinStat
}
