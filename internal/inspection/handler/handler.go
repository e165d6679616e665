package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vigia/internal/inspection/models"
	"vigia/internal/transport/http/shared"
	dErrors "vigia/pkg/domain-errors"
)

// Service defines the inspection operations the handler exposes.
type Service interface {
	CreateInspection(ctx context.Context, target models.Target, checklistID uuid.UUID, inspector string, timestamp time.Time) (*models.Inspection, error)
	GetInspection(ctx context.Context, id uuid.UUID) (*models.Inspection, []*models.Detail, error)
	ListInspections(ctx context.Context) ([]*models.Inspection, error)
	DeleteInspection(ctx context.Context, id uuid.UUID) error
	AddDetail(ctx context.Context, inspectionID uuid.UUID, item models.ItemRef, conditionID uuid.UUID, note string, payload json.RawMessage) (*models.Detail, error)
}

// Handler serves the inspection endpoints. The wire format keeps the two
// reference columns callers are used to; the exactly-one rule is enforced
// here before anything reaches the service.
type Handler struct {
	inspections Service
	logger      *slog.Logger
}

func New(inspections Service, logger *slog.Logger) *Handler {
	return &Handler{inspections: inspections, logger: logger}
}

// Register registers the inspection routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/inspections", h.handleCreateInspection)
	r.Get("/inspections", h.handleListInspections)
	r.Get("/inspections/{id}", h.handleGetInspection)
	r.Delete("/inspections/{id}", h.handleDeleteInspection)
	r.Post("/inspections/{id}/details", h.handleAddDetail)
}

type createInspectionRequest struct {
	UnitID      *uuid.UUID `json:"unit_id"`
	ZoneID      *uuid.UUID `json:"zone_id"`
	ChecklistID uuid.UUID  `json:"checklist_id"`
	Inspector   string     `json:"inspector"`
	Timestamp   *time.Time `json:"timestamp"`
}

func (h *Handler) handleCreateInspection(w http.ResponseWriter, r *http.Request) {
	var req createInspectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	target, err := exactlyOne(req.UnitID, req.ZoneID, models.UnitTarget, models.ZoneTarget,
		"exactly one of unit_id or zone_id must be set")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var timestamp time.Time
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}
	inspection, err := h.inspections.CreateInspection(r.Context(), target, req.ChecklistID, req.Inspector, timestamp)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, inspection)
}

func (h *Handler) handleListInspections(w http.ResponseWriter, r *http.Request) {
	inspections, err := h.inspections.ListInspections(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, inspections)
}

type inspectionResponse struct {
	Inspection *models.Inspection `json:"inspection"`
	Details    []*models.Detail   `json:"details"`
}

func (h *Handler) handleGetInspection(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	inspection, details, err := h.inspections.GetInspection(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if details == nil {
		details = []*models.Detail{}
	}
	shared.WriteJSON(w, http.StatusOK, inspectionResponse{Inspection: inspection, Details: details})
}

func (h *Handler) handleDeleteInspection(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.inspections.DeleteInspection(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addDetailRequest struct {
	UnitItemID  *uuid.UUID      `json:"unit_item_id"`
	ZoneItemID  *uuid.UUID      `json:"zone_item_id"`
	ConditionID uuid.UUID       `json:"condition_id"`
	Note        string          `json:"note"`
	Payload     json.RawMessage `json:"payload"`
}

func (h *Handler) handleAddDetail(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req addDetailRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	item, err := exactlyOne(req.UnitItemID, req.ZoneItemID, models.UnitItemRef, models.ZoneItemRef,
		"exactly one of unit_item_id or zone_item_id must be set")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	detail, err := h.inspections.AddDetail(r.Context(), id, item, req.ConditionID, req.Note, req.Payload)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, detail)
}

// exactlyOne converts a pair of optional wire references into the
// corresponding tagged union, rejecting both-set and neither-set.
func exactlyOne[T any](a, b *uuid.UUID, fromA, fromB func(uuid.UUID) T, msg string) (T, error) {
	var zero T
	switch {
	case a != nil && b == nil:
		return fromA(*a), nil
	case b != nil && a == nil:
		return fromB(*b), nil
	default:
		return zero, dErrors.New(dErrors.CodeValidation, msg)
	}
}
