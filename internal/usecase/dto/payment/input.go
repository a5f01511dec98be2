package paymentdto

type CreatePaymentInput struct {
	Amount       string `json:"amount"`
	PayeeID      string `json:"payee_id"`
	PayerID      string `json:"payer_id,omitempty"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	StoreID      string `json:"store_id,omitempty"`
	CaptureToken string `json:"capture_token"`
}
