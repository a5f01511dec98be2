package analyticsdto

// ThrowinSummaryOutput is the analytics contract. Field names and shapes are
// pinned; clients parse this JSON directly.
type ThrowinSummaryOutput struct {
	FiltersApplied   map[string]string `json:"filters_applied"`
	TotalAmountJPY   string            `json:"total_amount_jpy"`
	TotalThrowins    int64             `json:"total_throwins"`
	LatestBalanceJPY string            `json:"latest_balance_jpy"`
	TotalStores      int64             `json:"total_stores"`
	Timeseries       []DailyStat       `json:"timeseries"`
}

type DailyStat struct {
	Date         string `json:"date"`
	ThrowinCount int64  `json:"throwin_count"`
	TotalAmount  string `json:"total_amount"`
}
