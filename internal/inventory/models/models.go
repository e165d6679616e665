package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a privately owned dwelling. The (Tower, Floor, Number) triple is a
// natural key, unique across all units.
//
// Invariants:
//   - Tower and Number are non-empty
//   - a Unit exclusively owns its UnitItems; deleting the unit deletes them
type Unit struct {
	ID        uuid.UUID `json:"id"`
	Tower     string    `json:"tower"`
	Floor     int       `json:"floor"`
	Number    string    `json:"number"`
	CreatedAt time.Time `json:"created_at"`
}

// UnitItem is an inspectable fixture owned by exactly one unit. The owning
// unit is fixed at creation. Category and condition references are optional
// and deliberately unchecked here; they are validated only when an inspection
// detail references the item.
type UnitItem struct {
	ID          uuid.UUID  `json:"id"`
	UnitID      uuid.UUID  `json:"unit_id"`
	Name        string     `json:"name"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	ConditionID *uuid.UUID `json:"condition_id,omitempty"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Zone is a shared common-use space (terrace, game room). Unlike units, zones
// carry no uniqueness constraint.
type Zone struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Type      string    `json:"type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ZoneItem mirrors UnitItem for zones.
type ZoneItem struct {
	ID          uuid.UUID  `json:"id"`
	ZoneID      uuid.UUID  `json:"zone_id"`
	Name        string     `json:"name"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	ConditionID *uuid.UUID `json:"condition_id,omitempty"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ItemFields carries the caller-supplied part of a new item.
type ItemFields struct {
	Name        string     `json:"name"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	ConditionID *uuid.UUID `json:"condition_id,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// UnitFilter restricts ListUnits. Nil fields match everything.
type UnitFilter struct {
	Tower *string
	Floor *int
}

// ZoneFilter restricts ListZones.
type ZoneFilter struct {
	Type *string
}
