package models

import (
	"github.com/google/uuid"
)

// Scope says which side of the inventory a pending entry sits on.
type Scope string

const (
	ScopeUnit Scope = "UNIT"
	ScopeZone Scope = "ZONE"
)

// PendingEntry is one item observed in a non-acceptable condition, flattened
// for the remediation crew: the item, who owns it, and which inspection and
// condition flagged it.
type PendingEntry struct {
	Scope        Scope     `json:"scope"`
	OwnerID      uuid.UUID `json:"owner_id"`
	OwnerLabel   string    `json:"owner_label"`
	ItemID       uuid.UUID `json:"item_id"`
	ItemName     string    `json:"item_name"`
	InspectionID uuid.UUID `json:"inspection_id"`
	DetailID     uuid.UUID `json:"detail_id"`
	ConditionID  uuid.UUID `json:"condition_id"`
	Condition    string    `json:"condition"`
	Note         string    `json:"note,omitempty"`
}
