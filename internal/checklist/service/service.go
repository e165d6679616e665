package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"vigia/internal/checklist/models"
	dErrors "vigia/pkg/domain-errors"
	"vigia/pkg/platform/sentinel"
)

// Store abstracts checklist persistence.
type Store interface {
	CreateChecklist(ctx context.Context, checklist *models.Checklist) error
	FindChecklistByID(ctx context.Context, id uuid.UUID) (*models.Checklist, error)
	ListChecklists(ctx context.Context) ([]*models.Checklist, error)
	DeleteChecklistCascade(ctx context.Context, id uuid.UUID) error
	CreateQuestion(ctx context.Context, question *models.Question) error
	ListQuestions(ctx context.Context, checklistID uuid.UUID) ([]*models.Question, error)
}

// Service owns checklist templates. Checklists are master data: created,
// occasionally extended with questions, never restructured.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateChecklist registers a template. Version defaults to "1.0".
func (s *Service) CreateChecklist(ctx context.Context, name, version string, scope models.Scope) (*models.Checklist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "checklist name must be non-empty")
	}
	if !scope.Valid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "checklist scope must be %s or %s", models.ScopeUnit, models.ScopeZone)
	}
	if version == "" {
		version = "1.0"
	}

	checklist := &models.Checklist{
		ID:        uuid.New(),
		Name:      name,
		Version:   version,
		Scope:     scope,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateChecklist(ctx, checklist); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create checklist")
	}
	s.logger.InfoContext(ctx, "checklist created", "checklist_id", checklist.ID, "scope", scope)
	return checklist, nil
}

func (s *Service) GetChecklist(ctx context.Context, id uuid.UUID) (*models.Checklist, error) {
	checklist, err := s.store.FindChecklistByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "checklist %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load checklist")
	}
	return checklist, nil
}

func (s *Service) ListChecklists(ctx context.Context) ([]*models.Checklist, error) {
	checklists, err := s.store.ListChecklists(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list checklists")
	}
	return checklists, nil
}

// DeleteChecklist removes the template and cascades over its questions.
func (s *Service) DeleteChecklist(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteChecklistCascade(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "checklist %s not found", id)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete checklist")
	}
	return nil
}

// AddQuestion appends a question to an existing checklist. Options is a
// comma-delimited list; it is not validated for non-emptiness even when the
// kind is OPTIONS.
func (s *Service) AddQuestion(ctx context.Context, checklistID uuid.UUID, text string, kind models.AnswerKind, options string) (*models.Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "question text must be non-empty")
	}
	if kind == "" {
		kind = models.AnswerYesNo
	}
	if !kind.Valid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown answer kind %q", kind)
	}
	if _, err := s.GetChecklist(ctx, checklistID); err != nil {
		return nil, err
	}

	question := &models.Question{
		ID:          uuid.New(),
		ChecklistID: checklistID,
		Text:        strings.TrimSpace(text),
		Kind:        kind,
		Options:     options,
		CreatedAt:   s.now(),
	}
	if err := s.store.CreateQuestion(ctx, question); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "checklist %s not found", checklistID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create question")
	}
	return question, nil
}

func (s *Service) ListQuestions(ctx context.Context, checklistID uuid.UUID) ([]*models.Question, error) {
	if _, err := s.GetChecklist(ctx, checklistID); err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestions(ctx, checklistID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list questions")
	}
	return questions, nil
}
