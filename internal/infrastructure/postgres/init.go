package postgres

import (
	"log"

	"github.com/throwin-app/throwin-payment-service/internal/config"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	dsn := cfg.PaymentDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.StaffModel{},
		&models.RestaurantModel{},
		&models.StoreModel{},
		&models.StoreUserModel{},
		&models.RestaurantUserModel{},
		&models.PaymentModel{},
		&models.BalanceModel{},
		&models.DisbursementRequestModel{},
		&models.SpinBalanceModel{},
		&models.GachaHistoryModel{},
	)

	return db
}
