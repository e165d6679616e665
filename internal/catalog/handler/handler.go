package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vigia/internal/catalog/models"
	"vigia/internal/transport/http/shared"
	dErrors "vigia/pkg/domain-errors"
)

// Service defines the catalog operations the handler exposes.
type Service interface {
	Seed(ctx context.Context) error
	ListStates(ctx context.Context) ([]*models.ConditionState, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	StateByID(ctx context.Context, id uuid.UUID) (*models.ConditionState, error)
	CategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// Handler serves the catalog endpoints. Reads dominate; the only write is the
// idempotent seed.
type Handler struct {
	catalog Service
	logger  *slog.Logger
}

func New(catalog Service, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// Register registers the catalog routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/catalog/seed", h.handleSeed)
	r.Get("/catalog/states", h.handleListStates)
	r.Get("/catalog/states/{id}", h.handleGetState)
	r.Get("/catalog/categories", h.handleListCategories)
	r.Get("/catalog/categories/{id}", h.handleGetCategory)
}

func (h *Handler) handleSeed(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Seed(r.Context()); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.catalog.ListStates(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, states)
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid state id"))
		return
	}
	state, err := h.catalog.StateByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid category id"))
		return
	}
	category, err := h.catalog.CategoryByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, category)
}
