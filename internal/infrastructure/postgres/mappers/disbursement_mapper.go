package mappers

import (
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainDisbursement(model *models.DisbursementRequestModel) *domain.DisbursementRequest {
	request := &domain.DisbursementRequest{
		ID:            model.ID,
		RequestNumber: model.RequestNumber,
		StaffID:       model.StaffID,
		Amount:        domain.MoneyFromDecimal(model.Amount),
		Status:        model.Status,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	if model.ProcessedByID != nil {
		request.ProcessedByID = *model.ProcessedByID
	}
	return request
}

func ToGORMDisbursement(request *domain.DisbursementRequest) *models.DisbursementRequestModel {
	model := &models.DisbursementRequestModel{
		ID:            request.ID,
		RequestNumber: request.RequestNumber,
		StaffID:       request.StaffID,
		Amount:        request.Amount.Decimal(),
		Status:        request.Status,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}
	if request.ProcessedByID != "" {
		model.ProcessedByID = &request.ProcessedByID
	}
	return model
}
