package mappers

import (
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainStaff(model *models.StaffModel) *domain.Staff {
	return &domain.Staff{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Kind:      model.Kind,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMStaff(staff *domain.Staff) *models.StaffModel {
	return &models.StaffModel{
		ID:        staff.ID,
		Name:      staff.Name,
		Email:     staff.Email,
		Kind:      staff.Kind,
		IsActive:  staff.IsActive,
		CreatedAt: staff.CreatedAt,
		UpdatedAt: staff.UpdatedAt,
	}
}
