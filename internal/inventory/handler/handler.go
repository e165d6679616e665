package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vigia/internal/inventory/models"
	"vigia/internal/transport/http/shared"
	dErrors "vigia/pkg/domain-errors"
)

// Service defines the inventory operations the handler exposes.
type Service interface {
	CreateUnit(ctx context.Context, tower string, floor int, number string) (*models.Unit, error)
	GetUnit(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListUnits(ctx context.Context, filter models.UnitFilter) ([]*models.Unit, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error
	AddUnitItem(ctx context.Context, unitID uuid.UUID, fields models.ItemFields) (*models.UnitItem, error)
	GetUnitItem(ctx context.Context, id uuid.UUID) (*models.UnitItem, error)
	ListUnitItems(ctx context.Context, unitID uuid.UUID) ([]*models.UnitItem, error)
	CreateZone(ctx context.Context, name, location, zoneType string) (*models.Zone, error)
	GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	ListZones(ctx context.Context, filter models.ZoneFilter) ([]*models.Zone, error)
	DeleteZone(ctx context.Context, id uuid.UUID) error
	AddZoneItem(ctx context.Context, zoneID uuid.UUID, fields models.ItemFields) (*models.ZoneItem, error)
	GetZoneItem(ctx context.Context, id uuid.UUID) (*models.ZoneItem, error)
	ListZoneItems(ctx context.Context, zoneID uuid.UUID) ([]*models.ZoneItem, error)
}

// Handler serves the unit, zone and item endpoints.
type Handler struct {
	inventory Service
	logger    *slog.Logger
}

func New(inventory Service, logger *slog.Logger) *Handler {
	return &Handler{inventory: inventory, logger: logger}
}

// Register registers the inventory routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/units", h.handleCreateUnit)
	r.Get("/units", h.handleListUnits)
	r.Get("/units/{id}", h.handleGetUnit)
	r.Delete("/units/{id}", h.handleDeleteUnit)
	r.Post("/units/{id}/items", h.handleAddUnitItem)
	r.Get("/units/{id}/items", h.handleListUnitItems)
	r.Get("/unit-items/{id}", h.handleGetUnitItem)

	r.Post("/zones", h.handleCreateZone)
	r.Get("/zones", h.handleListZones)
	r.Get("/zones/{id}", h.handleGetZone)
	r.Delete("/zones/{id}", h.handleDeleteZone)
	r.Post("/zones/{id}/items", h.handleAddZoneItem)
	r.Get("/zones/{id}/items", h.handleListZoneItems)
	r.Get("/zone-items/{id}", h.handleGetZoneItem)
}

type createUnitRequest struct {
	Tower  string `json:"tower"`
	Floor  int    `json:"floor"`
	Number string `json:"number"`
}

func (h *Handler) handleCreateUnit(w http.ResponseWriter, r *http.Request) {
	var req createUnitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	unit, err := h.inventory.CreateUnit(r.Context(), req.Tower, req.Floor, req.Number)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, unit)
}

func (h *Handler) handleListUnits(w http.ResponseWriter, r *http.Request) {
	var filter models.UnitFilter
	if tower := r.URL.Query().Get("tower"); tower != "" {
		filter.Tower = &tower
	}
	if raw := r.URL.Query().Get("floor"); raw != "" {
		floor, err := strconv.Atoi(raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "floor must be an integer"))
			return
		}
		filter.Floor = &floor
	}
	units, err := h.inventory.ListUnits(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, units)
}

func (h *Handler) handleGetUnit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	unit, err := h.inventory.GetUnit(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, unit)
}

func (h *Handler) handleDeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.inventory.DeleteUnit(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddUnitItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var fields models.ItemFields
	if err := shared.DecodeJSON(r, &fields); err != nil {
		shared.WriteError(w, err)
		return
	}
	item, err := h.inventory.AddUnitItem(r.Context(), id, fields)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleListUnitItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	items, err := h.inventory.ListUnitItems(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGetUnitItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	item, err := h.inventory.GetUnitItem(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, item)
}

type createZoneRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Type     string `json:"type"`
}

func (h *Handler) handleCreateZone(w http.ResponseWriter, r *http.Request) {
	var req createZoneRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	zone, err := h.inventory.CreateZone(r.Context(), req.Name, req.Location, req.Type)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, zone)
}

func (h *Handler) handleListZones(w http.ResponseWriter, r *http.Request) {
	var filter models.ZoneFilter
	if zoneType := r.URL.Query().Get("type"); zoneType != "" {
		filter.Type = &zoneType
	}
	zones, err := h.inventory.ListZones(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, zones)
}

func (h *Handler) handleGetZone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	zone, err := h.inventory.GetZone(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, zone)
}

func (h *Handler) handleDeleteZone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.inventory.DeleteZone(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddZoneItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var fields models.ItemFields
	if err := shared.DecodeJSON(r, &fields); err != nil {
		shared.WriteError(w, err)
		return
	}
	item, err := h.inventory.AddZoneItem(r.Context(), id, fields)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleListZoneItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	items, err := h.inventory.ListZoneItems(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGetZoneItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	item, err := h.inventory.GetZoneItem(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, item)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return shared.PathID(r, "id")
}
