package dto

import (
	"github.com/aarondl/null/v8"

	"event-rental/internal/entities"
)

type TaxonomyDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func NewTaxonomyDTO(t *entities.TaxonomyItem) TaxonomyDTO {
	return TaxonomyDTO{ID: t.ID, Name: t.Name}
}

// NameRefDTO is the nested {"name": ...} form used inside equipment.
type NameRefDTO struct {
	Name string `json:"name"`
}

type EquipmentDTO struct {
	ID           uint64      `json:"id"`
	Type         NameRefDTO  `json:"type"`
	Brand        NameRefDTO  `json:"brand"`
	Model        NameRefDTO  `json:"model"`
	Number       int64       `json:"number"`
	UID          string      `json:"uid"`
	SerialNumber null.String `json:"serial_number"`
}

func NewEquipmentDTO(e *entities.Equipment) EquipmentDTO {
	out := EquipmentDTO{
		ID:           e.ID,
		Number:       e.Number,
		UID:          e.UID,
		SerialNumber: e.SerialNumber,
	}
	if e.Type != nil {
		out.Type.Name = e.Type.Name
	}
	if e.Brand != nil {
		out.Brand.Name = e.Brand.Name
	}
	if e.Model != nil {
		out.Model.Name = e.Model.Name
	}
	return out
}
