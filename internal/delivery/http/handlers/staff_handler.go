package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/throwin-app/throwin-payment-service/internal/domain"
	"github.com/throwin-app/throwin-payment-service/internal/usecase"
)

type StaffHandler struct {
	StaffUsecase usecase.StaffUsecase
}

func NewStaffHandler(staffUsecase usecase.StaffUsecase) *StaffHandler {
	return &StaffHandler{StaffUsecase: staffUsecase}
}

func (h *StaffHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if !actor.Kind.IsAdmin() {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
		return
	}

	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Kind  string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	staff, err := h.StaffUsecase.CreateStaff(r.Context(), body.Name, body.Email, domain.RoleKind(body.Kind))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, staff)
}

func (h *StaffHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")

	staff, err := h.StaffUsecase.GetStaffByID(r.Context(), staffID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, staff)
}

func (h *StaffHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")

	balance, err := h.StaffUsecase.GetStaffBalance(r.Context(), staffID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"staff_id":        balance.StaffID,
		"total_earned":    balance.TotalEarned,
		"total_disbursed": balance.TotalDisbursed,
		"available":       balance.Available(),
	})
}
