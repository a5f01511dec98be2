package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/throwin-app/throwin-payment-service/internal/usecase"
	gachadto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/gacha"
)

type GachaHandler struct {
	GachaUsecase usecase.GachaUsecase
}

func NewGachaHandler(gachaUsecase usecase.GachaUsecase) *GachaHandler {
	return &GachaHandler{GachaUsecase: gachaUsecase}
}

func (h *GachaHandler) Play(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StoreID string `json:"store_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	actor := actorFromRequest(r)
	if actor.ID == "" {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "authenticated consumer required"})
		return
	}

	output, err := h.GachaUsecase.Play(r.Context(), actor.ID, body.StoreID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":           output.Kind,
		"history_id":     output.HistoryID,
		"remaining_spin": output.RemainingSpin,
	})
}

func (h *GachaHandler) GetSpinBalance(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	storeID := chi.URLParam(r, "storeID")

	spinBalance, err := h.GachaUsecase.GetSpinBalance(r.Context(), actor.ID, storeID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, gachadto.SpinBalanceOutput{
		TotalSpend:    spinBalance.TotalSpend,
		TotalSpin:     spinBalance.TotalSpin,
		UsedSpin:      spinBalance.UsedSpin,
		RemainingSpin: spinBalance.RemainingSpin(),
	})
}

func (h *GachaHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	storeID := chi.URLParam(r, "storeID")
	unconsumedOnly := r.URL.Query().Get("unconsumed") == "true"

	histories, err := h.GachaUsecase.ListHistory(r.Context(), actor.ID, storeID, unconsumedOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, histories)
}

func (h *GachaHandler) ConsumeReward(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor.ID == "" {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "authenticated consumer required"})
		return
	}

	historyID := chi.URLParam(r, "historyID")
	if err := h.GachaUsecase.ConsumeReward(r.Context(), historyID, actor.ID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "consumed"})
}
