package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// Headers are gone already; nothing left to do.
			return
		}
	}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrDisbursementNotFound),
		errors.Is(err, domain.ErrBalanceNotFound),
		errors.Is(err, domain.ErrGachaHistoryNotFound),
		errors.Is(err, domain.ErrStaffNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrAlreadyDistributed),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrInvalidPaymentState),
		errors.Is(err, domain.ErrNoSpinsAvailable),
		errors.Is(err, domain.ErrAlreadyConsumed):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		// Internals stay inside; the caller sees a generic failure.
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// actorFromRequest trusts the identity headers set by the auth gateway.
// Missing headers resolve to the anonymous actor, which scopes to nothing.
func actorFromRequest(r *http.Request) domain.Actor {
	actorID := r.Header.Get("X-Actor-ID")
	actorKind := r.Header.Get("X-Actor-Kind")
	if actorID == "" || actorKind == "" {
		return domain.AnonymousActor
	}
	return domain.Actor{ID: actorID, Kind: domain.RoleKind(actorKind)}
}
