package models

import (
	"time"

	"github.com/google/uuid"
)

// Scope says what kind of inventory target a checklist applies to. Fixed at
// creation.
type Scope string

const (
	ScopeUnit Scope = "UNIT"
	ScopeZone Scope = "ZONE"
)

func (s Scope) Valid() bool {
	return s == ScopeUnit || s == ScopeZone
}

// AnswerKind tags how a question is answered.
type AnswerKind string

const (
	AnswerYesNo   AnswerKind = "YES_NO"
	AnswerOptions AnswerKind = "OPTIONS"
	AnswerNumeric AnswerKind = "NUMERIC"
	AnswerText    AnswerKind = "TEXT"
)

func (k AnswerKind) Valid() bool {
	switch k {
	case AnswerYesNo, AnswerOptions, AnswerNumeric, AnswerText:
		return true
	}
	return false
}

// Checklist is a reusable inspection template. It owns an ordered set of
// questions; deleting the checklist deletes them.
type Checklist struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Scope     Scope     `json:"scope"`
	CreatedAt time.Time `json:"created_at"`
}

// Question is one entry of a checklist. Options holds a comma-delimited list
// and is meaningful only when Kind is AnswerOptions; whether it is non-empty
// is the caller's concern.
type Question struct {
	ID          uuid.UUID  `json:"id"`
	ChecklistID uuid.UUID  `json:"checklist_id"`
	Text        string     `json:"text"`
	Kind        AnswerKind `json:"kind"`
	Options     string     `json:"options,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
