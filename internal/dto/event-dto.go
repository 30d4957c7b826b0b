package dto

import (
	"time"

	"event-rental/internal/entities"
)

type IDRefDTO struct {
	ID uint64 `json:"id"`
}

type UsernameRefDTO struct {
	Username string `json:"username"`
}

type UIDRefDTO struct {
	UID string `json:"uid"`
}

// EventDTO mirrors the write payload so a read can be sent back unchanged.
type EventDTO struct {
	ID          uint64           `json:"id"`
	Name        string           `json:"name"`
	LoadInDate  time.Time        `json:"load_in_date"`
	LoadOutDate time.Time        `json:"load_out_date"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Comment     string           `json:"comment"`
	Venue       *IDRefDTO        `json:"venue"`
	Customer    IDRefDTO         `json:"customer"`
	Leader      *UsernameRefDTO  `json:"leader"`
	Crew        []UsernameRefDTO `json:"crew"`
	Equipment   []UIDRefDTO      `json:"equipment"`
}

func NewEventDTO(ev *entities.Event) EventDTO {
	out := EventDTO{
		ID:          ev.ID,
		Name:        ev.Name,
		LoadInDate:  ev.LoadInDate,
		LoadOutDate: ev.LoadOutDate,
		StartDate:   ev.StartDate,
		EndDate:     ev.EndDate,
		Comment:     ev.Comment,
		Customer:    IDRefDTO{ID: ev.CustomerID},
		Crew:        make([]UsernameRefDTO, 0, len(ev.Crew)),
		Equipment:   make([]UIDRefDTO, 0, len(ev.Equipment)),
	}
	if ev.VenueID.Valid {
		out.Venue = &IDRefDTO{ID: ev.VenueID.Uint64}
	}
	if ev.Leader != nil {
		out.Leader = &UsernameRefDTO{Username: ev.Leader.Username}
	}
	for _, c := range ev.Crew {
		out.Crew = append(out.Crew, UsernameRefDTO{Username: c.Username})
	}
	for _, e := range ev.Equipment {
		out.Equipment = append(out.Equipment, UIDRefDTO{UID: e.UID})
	}
	return out
}

// AttachmentDTO is an event photo or file. Exactly one of Photo and File is set.
type AttachmentDTO struct {
	ID    uint64 `json:"id"`
	Event uint64 `json:"event"`
	Photo string `json:"photo,omitempty"`
	File  string `json:"file,omitempty"`
}

const uploadsURLPrefix = "/uploads/"

func NewAttachmentDTO(a *entities.EventAttachment) AttachmentDTO {
	out := AttachmentDTO{ID: a.ID, Event: a.EventID}
	url := uploadsURLPrefix + a.Path
	if a.Kind == entities.EventPhotoKind {
		out.Photo = url
	} else {
		out.File = url
	}
	return out
}
