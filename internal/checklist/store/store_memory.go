package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"vigia/internal/checklist/models"
	"vigia/pkg/platform/sentinel"
)

// InMemory keeps checklist templates in process.
type InMemory struct {
	mu         sync.RWMutex
	seq        uint64
	checklists map[uuid.UUID]seqChecklist
	questions  map[uuid.UUID]seqQuestion
}

type seqChecklist struct {
	seq       uint64
	checklist models.Checklist
}

type seqQuestion struct {
	seq      uint64
	question models.Question
}

func NewInMemory() *InMemory {
	return &InMemory{
		checklists: make(map[uuid.UUID]seqChecklist),
		questions:  make(map[uuid.UUID]seqQuestion),
	}
}

func (s *InMemory) CreateChecklist(_ context.Context, checklist *models.Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.checklists[checklist.ID] = seqChecklist{seq: s.seq, checklist: *checklist}
	return nil
}

func (s *InMemory) FindChecklistByID(_ context.Context, id uuid.UUID) (*models.Checklist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.checklists[id]; ok {
		checklist := entry.checklist
		return &checklist, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListChecklists(_ context.Context) ([]*models.Checklist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]seqChecklist, 0, len(s.checklists))
	for _, entry := range s.checklists {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*models.Checklist, len(entries))
	for i := range entries {
		checklist := entries[i].checklist
		out[i] = &checklist
	}
	return out, nil
}

// DeleteChecklistCascade removes a checklist and its questions atomically.
func (s *InMemory) DeleteChecklistCascade(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.checklists[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.checklists, id)
	for questionID, entry := range s.questions {
		if entry.question.ChecklistID == id {
			delete(s.questions, questionID)
		}
	}
	return nil
}

func (s *InMemory) CreateQuestion(_ context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.checklists[question.ChecklistID]; !ok {
		return sentinel.ErrNotFound
	}
	s.seq++
	s.questions[question.ID] = seqQuestion{seq: s.seq, question: *question}
	return nil
}

func (s *InMemory) ListQuestions(_ context.Context, checklistID uuid.UUID) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]seqQuestion, 0)
	for _, entry := range s.questions {
		if entry.question.ChecklistID == checklistID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*models.Question, len(entries))
	for i := range entries {
		question := entries[i].question
		out[i] = &question
	}
	return out, nil
}
