package disbursementdto

type CreateDisbursementInput struct {
	StaffID string `json:"staff_id"`
	Amount  string `json:"amount"`
}

type ProcessDisbursementInput struct {
	RequestID string `json:"request_id"`
	AdminID   string `json:"admin_id"`
}
