package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/internal/screening"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// ScreeningHandler runs the wheel screening pipeline
type ScreeningHandler struct {
	orchestrator *screening.Orchestrator
	logger       *logger.Logger
}

func NewScreeningHandler(orch *screening.Orchestrator, log *logger.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		orchestrator: orch,
		logger:       log,
	}
}

// Screen scores the universe against the request criteria and returns
// the ranked matches. All criteria fields are optional.
// POST /api/screening
func (h *ScreeningHandler) Screen(w http.ResponseWriter, r *http.Request) {
	var criteria market.FilterCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.orchestrator.Screen(r.Context(), &criteria)
	if err != nil {
		h.logger.WithError(err).Error("Screening failed")
		respondError(w, http.StatusInternalServerError, "Screening failed")
		return
	}

	respondJSON(w, http.StatusOK, response)
}
