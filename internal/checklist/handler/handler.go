package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vigia/internal/checklist/models"
	"vigia/internal/transport/http/shared"
)

// Service defines the checklist operations the handler exposes.
type Service interface {
	CreateChecklist(ctx context.Context, name, version string, scope models.Scope) (*models.Checklist, error)
	GetChecklist(ctx context.Context, id uuid.UUID) (*models.Checklist, error)
	ListChecklists(ctx context.Context) ([]*models.Checklist, error)
	DeleteChecklist(ctx context.Context, id uuid.UUID) error
	AddQuestion(ctx context.Context, checklistID uuid.UUID, text string, kind models.AnswerKind, options string) (*models.Question, error)
	ListQuestions(ctx context.Context, checklistID uuid.UUID) ([]*models.Question, error)
}

// Handler serves the checklist template endpoints.
type Handler struct {
	checklists Service
	logger     *slog.Logger
}

func New(checklists Service, logger *slog.Logger) *Handler {
	return &Handler{checklists: checklists, logger: logger}
}

// Register registers the checklist routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/checklists", h.handleCreateChecklist)
	r.Get("/checklists", h.handleListChecklists)
	r.Get("/checklists/{id}", h.handleGetChecklist)
	r.Delete("/checklists/{id}", h.handleDeleteChecklist)
	r.Post("/checklists/{id}/questions", h.handleAddQuestion)
	r.Get("/checklists/{id}/questions", h.handleListQuestions)
}

type createChecklistRequest struct {
	Name    string       `json:"name"`
	Version string       `json:"version"`
	Scope   models.Scope `json:"scope"`
}

func (h *Handler) handleCreateChecklist(w http.ResponseWriter, r *http.Request) {
	var req createChecklistRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	checklist, err := h.checklists.CreateChecklist(r.Context(), req.Name, req.Version, req.Scope)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, checklist)
}

func (h *Handler) handleListChecklists(w http.ResponseWriter, r *http.Request) {
	checklists, err := h.checklists.ListChecklists(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, checklists)
}

func (h *Handler) handleGetChecklist(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	checklist, err := h.checklists.GetChecklist(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, checklist)
}

func (h *Handler) handleDeleteChecklist(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.checklists.DeleteChecklist(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addQuestionRequest struct {
	Text    string            `json:"text"`
	Kind    models.AnswerKind `json:"kind"`
	Options string            `json:"options"`
}

func (h *Handler) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req addQuestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	question, err := h.checklists.AddQuestion(r.Context(), id, req.Text, req.Kind, req.Options)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, question)
}

func (h *Handler) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	questions, err := h.checklists.ListQuestions(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, questions)
}
