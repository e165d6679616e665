package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vigia/internal/report/models"
	"vigia/internal/transport/http/shared"
)

// Service defines the report operations the handler exposes.
type Service interface {
	ListPending(ctx context.Context) ([]*models.PendingEntry, error)
}

// Handler serves the reporting endpoints.
type Handler struct {
	reports Service
	logger  *slog.Logger
}

func New(reports Service, logger *slog.Logger) *Handler {
	return &Handler{reports: reports, logger: logger}
}

// Register registers the report routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reports/pending", h.handleListPending)
}

type pendingResponse struct {
	Total   int                    `json:"total"`
	Entries []*models.PendingEntry `json:"entries"`
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	entries, err := h.reports.ListPending(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.PendingEntry{}
	}
	shared.WriteJSON(w, http.StatusOK, pendingResponse{Total: len(entries), Entries: entries})
}
