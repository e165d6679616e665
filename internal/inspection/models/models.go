package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TargetKind discriminates what an inspection is bound to.
type TargetKind string

const (
	TargetUnit TargetKind = "UNIT"
	TargetZone TargetKind = "ZONE"
)

// Target identifies the exactly-one unit or zone an inspection visits. The
// storage layer maps it back to two nullable columns plus the discriminator;
// in the domain it is a tagged union so "both" and "neither" are not
// representable through the constructors.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   uuid.UUID  `json:"id"`
}

// UnitTarget binds an inspection to a unit.
func UnitTarget(id uuid.UUID) Target {
	return Target{Kind: TargetUnit, ID: id}
}

// ZoneTarget binds an inspection to a zone.
func ZoneTarget(id uuid.UUID) Target {
	return Target{Kind: TargetZone, ID: id}
}

// Valid reports whether the target names exactly one existing kind with a
// real id. Catches zero values and hand-built structs that bypassed the
// constructors.
func (t Target) Valid() bool {
	return (t.Kind == TargetUnit || t.Kind == TargetZone) && t.ID != uuid.Nil
}

// ItemRefKind discriminates what kind of item a detail observed.
type ItemRefKind string

const (
	RefUnitItem ItemRefKind = "UNIT_ITEM"
	RefZoneItem ItemRefKind = "ZONE_ITEM"
)

// ItemRef identifies the exactly-one unit item or zone item a detail refers
// to, with the same exclusivity treatment as Target.
type ItemRef struct {
	Kind ItemRefKind `json:"kind"`
	ID   uuid.UUID   `json:"id"`
}

func UnitItemRef(id uuid.UUID) ItemRef {
	return ItemRef{Kind: RefUnitItem, ID: id}
}

func ZoneItemRef(id uuid.UUID) ItemRef {
	return ItemRef{Kind: RefZoneItem, ID: id}
}

func (r ItemRef) Valid() bool {
	return (r.Kind == RefUnitItem || r.Kind == RefZoneItem) && r.ID != uuid.Nil
}

// Inspection is one visit against exactly one unit or zone, using one
// checklist. Append-only: there is no update or finalization step; its state
// is implicit in which details exist.
type Inspection struct {
	ID          uuid.UUID `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Inspector   string    `json:"inspector"`
	ChecklistID uuid.UUID `json:"checklist_id"`
	Target      Target    `json:"target"`
}

// Detail is one recorded observation within an inspection. Owned by its
// inspection (cascades with it) and never updated in place; remediation is a
// new inspection, not a rewrite of history.
type Detail struct {
	ID           uuid.UUID       `json:"id"`
	InspectionID uuid.UUID       `json:"inspection_id"`
	Item         ItemRef         `json:"item"`
	ConditionID  uuid.UUID       `json:"condition_id"`
	Note         string          `json:"note,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
