package handlers

import (
	"net/http"

	"github.com/throwin-app/throwin-payment-service/internal/usecase"
	analyticsdto "github.com/throwin-app/throwin-payment-service/internal/usecase/dto/analytics"
)

type AnalyticsHandler struct {
	VisibilityUsecase usecase.VisibilityUsecase
}

func NewAnalyticsHandler(visibilityUsecase usecase.VisibilityUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{VisibilityUsecase: visibilityUsecase}
}

// ThrowinSummary serves the analytics rollup. Filter values are passed
// through raw; the usecase drops whatever does not parse.
func (h *AnalyticsHandler) ThrowinSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := &analyticsdto.ThrowinSummaryInput{
		Year:     query.Get("year"),
		Month:    query.Get("month"),
		StoreID:  query.Get("store_id"),
		StaffID:  query.Get("staff_id"),
		DateFrom: query.Get("date_from"),
		DateTo:   query.Get("date_to"),
	}

	output, err := h.VisibilityUsecase.ThrowinSummary(r.Context(), actorFromRequest(r), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}
