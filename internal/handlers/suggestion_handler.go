package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/white/lead-management/internal/models"
	"go.uber.org/zap"
)

// Suggester produces follow-up suggestions for a lead. Implementations never
// return an error; failures degrade to a single fallback line. Implemented by
// gemini.Client.
type Suggester interface {
	Suggest(ctx context.Context, lead *models.Lead) []string
}

// SuggestionHandler serves AI follow-up suggestions for a lead.
type SuggestionHandler struct {
	store     LeadStore
	suggester Suggester
	log       *zap.Logger
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(store LeadStore, suggester Suggester, log *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		store:     store,
		suggester: suggester,
		log:       log,
	}
}

// SuggestionResponse carries the transient suggestion list. Suggestions are
// never persisted; each request produces a fresh set from the lead's current
// snapshot.
type SuggestionResponse struct {
	LeadID      string   `json:"lead_id"`
	Suggestions []string `json:"suggestions"`
}

// GetSuggestions godoc
// @Summary AI follow-up suggestions
// @Description Generates follow-up suggestions for a lead from its current field snapshot and conversation history. The count is advisory; a service failure yields a single fallback line.
// @Tags Suggestions
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} SuggestionResponse
// @Failure 400 {object} map[string]string "Invalid lead ID"
// @Failure 404 {object} map[string]string "Lead not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leads/{id}/suggestions [post]
func (h *SuggestionHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	lead, err := h.store.GetByID(ctx, id)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	suggestions := h.suggester.Suggest(ctx, lead)
	h.log.Info("Generated suggestions",
		zap.String("lead_id", id),
		zap.Int("count", len(suggestions)),
	)

	respondWithJSON(w, http.StatusOK, SuggestionResponse{
		LeadID:      id,
		Suggestions: suggestions,
	})
}
