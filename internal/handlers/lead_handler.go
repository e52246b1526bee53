package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/white/lead-management/internal/cache"
	"github.com/white/lead-management/internal/events"
	"github.com/white/lead-management/internal/models"
	"github.com/white/lead-management/internal/services"
	"go.uber.org/zap"
)

// LeadStore is the persistence surface the lead handlers require. It is
// implemented by repositories.MongoLeadRepository.
type LeadStore interface {
	List(ctx context.Context) ([]models.Lead, error)
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, id string, update models.UpdateLeadRequest) (*models.Lead, error)
	Delete(ctx context.Context, id string) error
	AppendConversation(ctx context.Context, id string, message string) (*models.Lead, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByPriority(ctx context.Context) (map[string]int64, error)
}

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	store  LeadStore
	cache  *cache.LeadCache
	events *events.Publisher
	log    *zap.Logger
}

// NewLeadHandler creates a new lead handler. The cache may be nil, in which
// case every read goes to the store.
func NewLeadHandler(store LeadStore, leadCache *cache.LeadCache, publisher *events.Publisher, log *zap.Logger) *LeadHandler {
	return &LeadHandler{
		store:  store,
		cache:  leadCache,
		events: publisher,
		log:    log,
	}
}

// ListLeads godoc
// @Summary List leads
// @Description Returns all leads newest-created first, optionally filtered by a free-text query and re-sorted server-side.
// @Tags Leads
// @Produce json
// @Param q query string false "Case-insensitive substring match on name, company, or email"
// @Param sort_by query string false "Sort key: name, company, email, status, priority, lastContact"
// @Param sort_dir query string false "Sort direction: asc or desc" default(asc)
// @Success 200 {array} models.Lead
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leads [get]
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	leads, err := h.loadLeads(ctx)
	if err != nil {
		h.log.Error("Failed to list leads", zap.Error(err))
		respondWithStoreError(w, err)
		return
	}

	query := r.URL.Query().Get("q")
	sortBy := r.URL.Query().Get("sort_by")
	sortDir := r.URL.Query().Get("sort_dir")

	leads = services.FilterLeads(leads, query)
	if sortBy != "" {
		leads = services.SortLeads(leads, sortBy, sortDir)
	}

	respondWithJSON(w, http.StatusOK, leads)
}

// loadLeads reads the lead list through the cache when one is configured.
// Cache failures degrade to the store.
func (h *LeadHandler) loadLeads(ctx context.Context) ([]models.Lead, error) {
	if h.cache != nil {
		if leads, err := h.cache.GetList(ctx); err == nil {
			return leads, nil
		}
	}

	leads, err := h.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.RefreshList(ctx, leads); err != nil {
			h.log.Warn("Failed to refresh lead cache", zap.Error(err))
		}
	}

	return leads, nil
}

// GetLead godoc
// @Summary Get a lead
// @Description Returns a single lead by identifier.
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.Lead
// @Failure 400 {object} map[string]string "Invalid lead ID"
// @Failure 404 {object} map[string]string "Lead not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leads/{id} [get]
func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if h.cache != nil {
		if lead, err := h.cache.Get(ctx, id); err == nil {
			respondWithJSON(w, http.StatusOK, lead)
			return
		}
	}

	lead, err := h.store.GetByID(ctx, id)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, lead); err != nil {
			h.log.Warn("Failed to cache lead", zap.String("lead_id", id), zap.Error(err))
		}
	}

	respondWithJSON(w, http.StatusOK, lead)
}

// CreateLead godoc
// @Summary Create a lead
// @Description Creates a lead with defaults applied (status New, priority Medium, source Other) and a seed conversation entry.
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead body models.CreateLeadRequest true "Lead creation request"
// @Success 201 {object} models.Lead
// @Failure 400 {object} map[string]string "Invalid request payload or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leads [post]
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	lead := req.NewLead(time.Now().UTC())
	if err := h.store.Create(ctx, lead); err != nil {
		h.log.Error("Failed to create lead", zap.Error(err))
		respondWithStoreError(w, err)
		return
	}

	h.invalidate(ctx, lead.ID.Hex())
	h.events.LeadCreated(lead.ID.Hex())
	h.log.Info("Lead created", zap.String("lead_id", lead.ID.Hex()), zap.String("company", lead.Company))

	respondWithJSON(w, http.StatusCreated, lead)
}

// UpdateLead godoc
// @Summary Update a lead
// @Description Merge-updates the supplied fields only; omitted fields are untouched. The identifier field is ignored if present.
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param lead body models.UpdateLeadRequest true "Partial lead update"
// @Success 200 {object} models.Lead
// @Failure 400 {object} map[string]string "Invalid lead ID, payload, or validation error"
// @Failure 404 {object} map[string]string "Lead not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leads/{id} [patch]
func (h *LeadHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	// Unknown keys, including _id, are dropped by the decoder: the identifier
	// can never be merged.
	var req models.UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := h.store.Update(ctx, id, req)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	h.invalidate(ctx, id)
	h.events.LeadUpdated(id, req.ChangedFields())

	respondWithJSON(w, http.StatusOK, lead)
}

// DeleteLead godoc
// @Summary Delete a lead
// @Description Removes a lead. There is no cascade; the embedded conversation goes with the document.
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid lead ID"
// @Failure 404 {object} map[string]string "Lead not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leads/{id} [delete]
func (h *LeadHandler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(ctx, id); err != nil {
		respondWithStoreError(w, err)
		return
	}

	h.invalidate(ctx, id)
	h.events.LeadDeleted(id)
	h.log.Info("Lead deleted", zap.String("lead_id", id))

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Lead deleted successfully"})
}

// LogConversation godoc
// @Summary Log a conversation entry
// @Description Appends one timestamped entry to the lead's conversation log. The append is atomic; concurrent log actions cannot lose entries.
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param entry body models.LogConversationRequest true "Conversation entry"
// @Success 200 {object} models.Lead
// @Failure 400 {object} map[string]string "Invalid lead ID or payload"
// @Failure 404 {object} map[string]string "Lead not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leads/{id}/conversation [post]
func (h *LeadHandler) LogConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var req models.LogConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := h.store.AppendConversation(ctx, id, req.Message)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	h.invalidate(ctx, id)
	h.events.ConversationLogged(id)

	respondWithJSON(w, http.StatusOK, lead)
}

// GetBoard godoc
// @Summary Kanban board
// @Description Returns leads grouped into kanban columns, one per status in pipeline order.
// @Tags Leads
// @Produce json
// @Success 200 {array} services.BoardColumn
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leads/board [get]
func (h *LeadHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	leads, err := h.loadLeads(ctx)
	if err != nil {
		h.log.Error("Failed to load leads for board", zap.Error(err))
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, services.GroupByStatus(leads))
}

// LeadStats is the dashboard summary payload.
type LeadStats struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	ByPriority     map[string]int64 `json:"by_priority"`
	ConversionRate float64          `json:"conversion_rate"`
}

// GetStats godoc
// @Summary Lead statistics
// @Description Returns lead counts per status and priority plus the closed-deal conversion rate.
// @Tags Leads
// @Produce json
// @Success 200 {object} LeadStats
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leads/stats [get]
func (h *LeadHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	byStatus, err := h.store.CountByStatus(ctx)
	if err != nil {
		h.log.Error("Failed to count leads by status", zap.Error(err))
		respondWithStoreError(w, err)
		return
	}

	byPriority, err := h.store.CountByPriority(ctx)
	if err != nil {
		h.log.Error("Failed to count leads by priority", zap.Error(err))
		respondWithStoreError(w, err)
		return
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	stats := LeadStats{
		Total:      total,
		ByStatus:   byStatus,
		ByPriority: byPriority,
	}
	if total > 0 {
		stats.ConversionRate = float64(byStatus[models.StatusClosed]) / float64(total)
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func (h *LeadHandler) invalidate(ctx context.Context, id string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(ctx, id); err != nil {
		h.log.Warn("Failed to invalidate lead cache", zap.String("lead_id", id), zap.Error(err))
	}
}
