package paymentdto

import "github.com/throwin-app/throwin-payment-service/internal/domain"

type PaymentOutput struct {
	Payment *domain.Payment
}

type DistributionOutput struct {
	Result  *domain.DistributionResult
	Balance *domain.Balance
}
