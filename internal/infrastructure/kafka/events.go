package publisher

import "time"

const (
	TopicPaymentEvents      = "payment-events"
	TopicDisbursementEvents = "disbursement-events"
)

type PaymentEvent struct {
	PaymentID       string    `json:"payment_id"`
	PayeeID         string    `json:"payee_id"`
	StoreID         string    `json:"store_id,omitempty"`
	Amount          string    `json:"amount"`
	StaffShare      string    `json:"staff_share,omitempty"`
	ManagementShare string    `json:"management_share,omitempty"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type DisbursementEvent struct {
	RequestID   string    `json:"request_id"`
	StaffID     string    `json:"staff_id"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	ProcessedBy string    `json:"processed_by,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
