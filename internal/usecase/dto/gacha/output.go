package gachadto

import "github.com/throwin-app/throwin-payment-service/internal/domain"

type PlayOutput struct {
	Kind          domain.GachaKind
	HistoryID     string
	RemainingSpin int64
}

type SpinBalanceOutput struct {
	TotalSpend    domain.Money `json:"total_spend"`
	TotalSpin     int64        `json:"total_spin"`
	UsedSpin      int64        `json:"used_spin"`
	RemainingSpin int64        `json:"remaining_spin"`
}
