package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/throwin-app/throwin-payment-service/internal/usecase"
	paymentdto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/payment"
)

type PaymentHandler struct {
	PaymentUsecase      usecase.PaymentUsecase
	DistributionUsecase usecase.DistributionUsecase
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, distributionUsecase usecase.DistributionUsecase) *PaymentHandler {
	return &PaymentHandler{
		PaymentUsecase:      paymentUsecase,
		DistributionUsecase: distributionUsecase,
	}
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var input paymentdto.CreatePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	output, err := h.PaymentUsecase.CreatePayment(r.Context(), &input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, output.Payment)
}

func (h *PaymentHandler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	output, err := h.PaymentUsecase.CapturePayment(r.Context(), paymentID, body.Token)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output.Payment)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")
	payment, err := h.PaymentUsecase.GetPaymentByID(r.Context(), paymentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) ListReviewRequired(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if !actor.Kind.IsAdmin() {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	payments, err := h.PaymentUsecase.ListReviewRequired(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) RedrivePayment(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if !actor.Kind.IsAdmin() {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	paymentID := chi.URLParam(r, "paymentID")
	output, err := h.DistributionUsecase.RedriveReviewRequired(r.Context(), paymentID, actor.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output.Result)
}
