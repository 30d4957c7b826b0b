package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"event-rental/pkg/types"
)

// EmployeeRef is the natural-key view of a crew member.
type EmployeeRef struct {
	ID       uint64 `json:"-"`
	Username string `json:"username"`
}

// EquipmentRef is the natural-key view of an equipment unit.
type EquipmentRef struct {
	ID  uint64 `json:"-"`
	UID string `json:"uid"`
}

type Event struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	LoadInDate  time.Time   `json:"load_in_date"`
	LoadOutDate time.Time   `json:"load_out_date"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Comment     string      `json:"comment"`
	VenueID     null.Uint64 `json:"venue_id"`
	CustomerID  uint64      `json:"customer_id"`
	LeaderID    null.Uint64 `json:"leader_id"`

	types.BaseEntity

	// Loaded from joins and association tables
	Leader    *EmployeeRef   `db:"-"`
	Crew      []EmployeeRef  `db:"-"`
	Equipment []EquipmentRef `db:"-"`
}

// EventAttachmentKind separates event photos from other event files.
type EventAttachmentKind string

const (
	EventPhotoKind EventAttachmentKind = "photo"
	EventFileKind  EventAttachmentKind = "file"
)

// EventAttachment is a stored photo or file owned by an event.
type EventAttachment struct {
	ID      uint64              `json:"id"`
	Kind    EventAttachmentKind `json:"-"`
	EventID uint64              `json:"event"`
	Path    string              `json:"path"`

	types.BaseEntity
}
