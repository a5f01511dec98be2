package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/throwin-app/throwin-payment-service/internal/app/background"
	"github.com/throwin-app/throwin-payment-service/internal/config"
	deliveryhttp "github.com/throwin-app/throwin-payment-service/internal/delivery/http"
	"github.com/throwin-app/throwin-payment-service/internal/delivery/http/handlers"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	publisher "github.com/throwin-app/throwin-payment-service/internal/infrastructure/kafka"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/metrics"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/migrate"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/notifier"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/paypal"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres"
	"github.com/throwin-app/throwin-payment-service/internal/infrastructure/postgres/repository"
	"github.com/throwin-app/throwin-payment-service/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.PaymentDB.MigrationPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentDB.MigrationPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)

	// Metrics
	paymentMetrics := metrics.NewPaymentMetrics()

	// Repositories
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	balanceRepo := repository.NewDefaultBalanceRepository(db)
	disbursementRepo := repository.NewDefaultDisbursementRepository(db)
	gachaRepo := repository.NewDefaultGachaRepository(db)
	staffRepo := repository.NewDefaultStaffRepository(db)
	ownershipReader := repository.NewDefaultOwnershipGraphReader(db)

	// External collaborators
	captureClient := paypal.NewHTTPCaptureClient(cfg.PayPal.BaseURL, cfg.PayPal.ClientID, cfg.PayPal.ClientSecret)
	mailSender := notifier.NewHTTPMailSender(fmt.Sprintf("%s:%s", cfg.MailService.Host, cfg.MailService.Port))

	// Usecases
	distributionUsecase := usecase.NewDefaultDistributionUsecase(paymentRepo, balanceRepo, pub, paymentMetrics)
	gachaUsecase, err := usecase.NewDefaultGachaUsecase(gachaRepo, paymentMetrics, usecase.DefaultGachaTable)
	if err != nil {
		log.Fatalf("failed to init gacha usecase: %v", err)
	}
	paymentUsecase := usecase.NewDefaultPaymentUsecase(paymentRepo, captureClient, distributionUsecase, gachaUsecase, paymentMetrics)
	disbursementUsecase := usecase.NewDefaultDisbursementUsecase(disbursementRepo, balanceRepo, staffRepo, pub, mailSender, paymentMetrics)
	visibilityUsecase := usecase.NewDefaultVisibilityUsecase(paymentRepo, ownershipReader)
	staffUsecase := usecase.NewDefaultStaffUsecase(staffRepo, balanceRepo)

	// HTTP delivery
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, distributionUsecase)
	disbursementHandler := handlers.NewDisbursementHandler(disbursementUsecase)
	analyticsHandler := handlers.NewAnalyticsHandler(visibilityUsecase)
	gachaHandler := handlers.NewGachaHandler(gachaUsecase)
	staffHandler := handlers.NewStaffHandler(staffUsecase)

	router := deliveryhttp.NewRouter(paymentHandler, disbursementHandler, analyticsHandler, gachaHandler, staffHandler)

	// Background workers
	payoutFloor, err := domain.ParseMoney(cfg.Payout.MonthlyFloor)
	if err != nil {
		log.Fatalf("invalid payout monthly_floor: %v", err)
	}
	tasks := background.NewBackgroundTasks(paymentUsecase, disbursementUsecase, payoutFloor)
	tasks.StartAll(context.Background())

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("payment service listening on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
