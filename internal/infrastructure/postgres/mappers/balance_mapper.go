package mappers

import (
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainBalance(model *models.BalanceModel) *domain.Balance {
	return &domain.Balance{
		StaffID:           model.StaffID,
		TotalEarned:       domain.MoneyFromDecimal(model.TotalEarned),
		TotalDisbursed:    domain.MoneyFromDecimal(model.TotalDisbursed),
		ManagementBalance: domain.MoneyFromDecimal(model.ManagementBalance),
		GlowShare:         domain.MoneyFromDecimal(model.GlowShare),
		SalesAgencyShare:  domain.MoneyFromDecimal(model.SalesAgencyShare),
		FranchiseShare:    domain.MoneyFromDecimal(model.FranchiseShare),
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
