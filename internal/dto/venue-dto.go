package dto

import "event-rental/internal/entities"

type VenueDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

func NewVenueDTO(v *entities.Venue) VenueDTO {
	return VenueDTO{ID: v.ID, Name: v.Name, Address: v.Address, City: v.City, State: v.State}
}
