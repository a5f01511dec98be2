package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/throwin-app/throwin-payment-service/internal/delivery/http/handlers"
)

// NewRouter wires the delivery layer. Identity resolution happens
// upstream; handlers read the actor from trusted headers.
func NewRouter(
	paymentHandler *handlers.PaymentHandler,
	disbursementHandler *handlers.DisbursementHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	gachaHandler *handlers.GachaHandler,
	staffHandler *handlers.StaffHandler) *chi.Mux {

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", paymentHandler.CreatePayment)
		r.Get("/review", paymentHandler.ListReviewRequired)
		r.Get("/{paymentID}", paymentHandler.GetPayment)
		r.Post("/{paymentID}/capture", paymentHandler.CapturePayment)
		r.Post("/{paymentID}/redrive", paymentHandler.RedrivePayment)
	})

	r.Route("/disbursements", func(r chi.Router) {
		r.Post("/", disbursementHandler.CreateDisbursement)
		r.Get("/", disbursementHandler.ListByStatus)
		r.Get("/staff/{staffID}", disbursementHandler.ListByStaff)
		r.Post("/{requestID}/start", disbursementHandler.StartProcessing)
		r.Post("/{requestID}/complete", disbursementHandler.CompleteDisbursement)
		r.Post("/{requestID}/reject", disbursementHandler.RejectDisbursement)
	})

	r.Get("/analytics/throwins", analyticsHandler.ThrowinSummary)

	r.Route("/staffs", func(r chi.Router) {
		r.Post("/", staffHandler.CreateStaff)
		r.Get("/{staffID}", staffHandler.GetStaff)
		r.Get("/{staffID}/balance", staffHandler.GetBalance)
	})

	r.Route("/gacha", func(r chi.Router) {
		r.Post("/play", gachaHandler.Play)
		r.Get("/stores/{storeID}/spin-balance", gachaHandler.GetSpinBalance)
		r.Get("/stores/{storeID}/history", gachaHandler.ListHistory)
		r.Post("/history/{historyID}/consume", gachaHandler.ConsumeReward)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
