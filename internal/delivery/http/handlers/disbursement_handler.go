package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/usecase"
	disbursementdto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/disbursement"
)

type DisbursementHandler struct {
	DisbursementUsecase usecase.DisbursementUsecase
}

func NewDisbursementHandler(disbursementUsecase usecase.DisbursementUsecase) *DisbursementHandler {
	return &DisbursementHandler{DisbursementUsecase: disbursementUsecase}
}

func (h *DisbursementHandler) CreateDisbursement(w http.ResponseWriter, r *http.Request) {
	var input disbursementdto.CreateDisbursementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	request, err := h.DisbursementUsecase.CreateDisbursement(r.Context(), &input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, request)
}

func (h *DisbursementHandler) transitionInput(r *http.Request) *disbursementdto.ProcessDisbursementInput {
	return &disbursementdto.ProcessDisbursementInput{
		RequestID: chi.URLParam(r, "requestID"),
		AdminID:   actorFromRequest(r).ID,
	}
}

func (h *DisbursementHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !actorFromRequest(r).Kind.IsAdmin() {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return false
	}
	return true
}

func (h *DisbursementHandler) StartProcessing(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if err := h.DisbursementUsecase.StartProcessing(r.Context(), h.transitionInput(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "IN_PROGRESS"})
}

func (h *DisbursementHandler) CompleteDisbursement(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if err := h.DisbursementUsecase.CompleteDisbursement(r.Context(), h.transitionInput(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "COMPLETED"})
}

func (h *DisbursementHandler) RejectDisbursement(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if err := h.DisbursementUsecase.RejectDisbursement(r.Context(), h.transitionInput(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "REJECTED"})
}

// ListByStatus is the admin processing queue, defaulting to requests
// waiting for pickup.
func (h *DisbursementHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	status := domain.DisbursementStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.DisbursementPending
	}
	if !status.Valid() {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown disbursement status"})
		return
	}

	requests, err := h.DisbursementUsecase.ListDisbursementsByStatus(r.Context(), status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"total":    len(requests),
	})
}

func (h *DisbursementHandler) ListByStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	requests, total, err := h.DisbursementUsecase.ListDisbursementsByStaff(r.Context(), staffID, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"total":    total,
	})
}
