package mappers

import (
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainPayment(model *models.PaymentModel) *domain.Payment {
	payment := &domain.Payment{
		ID:             model.ID,
		Amount:         domain.MoneyFromDecimal(model.Amount),
		NetAmount:      domain.MoneyFromDecimal(model.NetAmount),
		Currency:       model.Currency,
		Status:         model.Status,
		PayeeID:        model.PayeeID,
		ExternalTxnID:  model.ExternalTxnID,
		IsDistributed:  model.IsDistributed,
		ReviewRequired: model.ReviewRequired,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
	if model.PayerID != nil {
		payment.PayerID = *model.PayerID
	}
	if model.RestaurantID != nil {
		payment.RestaurantID = *model.RestaurantID
	}
	if model.StoreID != nil {
		payment.StoreID = *model.StoreID
	}
	return payment
}

func ToGORMPayment(payment *domain.Payment) *models.PaymentModel {
	model := &models.PaymentModel{
		ID:             payment.ID,
		Amount:         payment.Amount.Decimal(),
		NetAmount:      payment.NetAmount.Decimal(),
		Currency:       payment.Currency,
		Status:         payment.Status,
		PayeeID:        payment.PayeeID,
		ExternalTxnID:  payment.ExternalTxnID,
		IsDistributed:  payment.IsDistributed,
		ReviewRequired: payment.ReviewRequired,
		CreatedAt:      payment.CreatedAt,
		UpdatedAt:      payment.UpdatedAt,
	}
	if payment.PayerID != "" {
		model.PayerID = &payment.PayerID
	}
	if payment.RestaurantID != "" {
		model.RestaurantID = &payment.RestaurantID
	}
	if payment.StoreID != "" {
		model.StoreID = &payment.StoreID
	}
	return model
}
