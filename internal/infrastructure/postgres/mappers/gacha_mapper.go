package mappers

import (
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainSpinBalance(model *models.SpinBalanceModel) *domain.SpinBalance {
	return &domain.SpinBalance{
		ConsumerID: model.ConsumerID,
		StoreID:    model.StoreID,
		TotalSpend: domain.MoneyFromDecimal(model.TotalSpend),
		UsedSpend:  domain.MoneyFromDecimal(model.UsedSpend),
		TotalSpin:  model.TotalSpin,
		UsedSpin:   model.UsedSpin,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func ToDomainGachaHistory(model *models.GachaHistoryModel) *domain.GachaHistory {
	return &domain.GachaHistory{
		ID:         model.ID,
		ConsumerID: model.ConsumerID,
		StoreID:    model.StoreID,
		Kind:       model.Kind,
		IsConsumed: model.IsConsumed,
		ConsumedAt: model.ConsumedAt,
		CreatedAt:  model.CreatedAt,
	}
}

func ToGORMGachaHistory(history *domain.GachaHistory) *models.GachaHistoryModel {
	return &models.GachaHistoryModel{
		ID:         history.ID,
		ConsumerID: history.ConsumerID,
		StoreID:    history.StoreID,
		Kind:       history.Kind,
		IsConsumed: history.IsConsumed,
		ConsumedAt: history.ConsumedAt,
		CreatedAt:  history.CreatedAt,
	}
}
