package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"vigia/internal/inspection/models"
	"vigia/pkg/platform/sentinel"
)

// InMemory keeps inspections and their details in process. Detail inserts
// re-check the owning inspection under the same lock as the cascade delete,
// which closes the check-then-act race the service alone cannot.
type InMemory struct {
	mu          sync.RWMutex
	seq         uint64
	inspections map[uuid.UUID]seqInspection
	details     map[uuid.UUID]seqDetail
}

type seqInspection struct {
	seq        uint64
	inspection models.Inspection
}

type seqDetail struct {
	seq    uint64
	detail models.Detail
}

func NewInMemory() *InMemory {
	return &InMemory{
		inspections: make(map[uuid.UUID]seqInspection),
		details:     make(map[uuid.UUID]seqDetail),
	}
}

func (s *InMemory) CreateInspection(_ context.Context, inspection *models.Inspection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.inspections[inspection.ID] = seqInspection{seq: s.seq, inspection: *inspection}
	return nil
}

func (s *InMemory) FindInspectionByID(_ context.Context, id uuid.UUID) (*models.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.inspections[id]; ok {
		inspection := entry.inspection
		return &inspection, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListInspections(_ context.Context) ([]*models.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]seqInspection, 0, len(s.inspections))
	for _, entry := range s.inspections {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*models.Inspection, len(entries))
	for i := range entries {
		inspection := entries[i].inspection
		out[i] = &inspection
	}
	return out, nil
}

// DeleteInspectionCascade removes an inspection and its details atomically.
func (s *InMemory) DeleteInspectionCascade(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inspections[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.inspections, id)
	for detailID, entry := range s.details {
		if entry.detail.InspectionID == id {
			delete(s.details, detailID)
		}
	}
	return nil
}

func (s *InMemory) CreateDetail(_ context.Context, detail *models.Detail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inspections[detail.InspectionID]; !ok {
		return sentinel.ErrNotFound
	}
	s.seq++
	s.details[detail.ID] = seqDetail{seq: s.seq, detail: *detail}
	return nil
}

// ListDetailsByInspection returns a single inspection's details in creation
// order.
func (s *InMemory) ListDetailsByInspection(_ context.Context, inspectionID uuid.UUID) ([]*models.Detail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]seqDetail, 0)
	for _, entry := range s.details {
		if entry.detail.InspectionID == inspectionID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*models.Detail, len(entries))
	for i := range entries {
		detail := entries[i].detail
		out[i] = &detail
	}
	return out, nil
}

// ListAllDetails returns every detail in creation order, for the pending
// report scan.
func (s *InMemory) ListAllDetails(_ context.Context) ([]*models.Detail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]seqDetail, 0, len(s.details))
	for _, entry := range s.details {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*models.Detail, len(entries))
	for i := range entries {
		detail := entries[i].detail
		out[i] = &detail
	}
	return out, nil
}
