package entities

import "event-rental/pkg/types"

type Venue struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`

	types.BaseEntity
}
