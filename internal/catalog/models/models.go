package models

import "github.com/google/uuid"

// GoodStateName is the display name of the distinguished "no action needed"
// condition state. The pending report classifies by this name, matching the
// historical behavior; renaming the seeded state changes what counts as
// pending.
const GoodStateName = "Good"

// ConditionState is an enumerated inspection outcome. Reference data: seeded
// once, never mutated by the engine.
//
// Invariants:
//   - Name is unique across all states
//   - SeverityRank orders states from best to worst; rank 1 is by convention
//     the single state requiring no remediation
type ConditionState struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	SeverityRank int       `json:"severity_rank"`
}

// Category groups inspectable items (environment, implement, furniture).
// Reference data like ConditionState.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}
