package entities

import "event-rental/pkg/types"

// TaxonomyKind names one of the three equipment lookup tables.
type TaxonomyKind string

const (
	TaxonomyType  TaxonomyKind = "equipment_type"
	TaxonomyBrand TaxonomyKind = "equipment_brand"
	TaxonomyModel TaxonomyKind = "equipment_model"
)

var TaxonomyKinds = []TaxonomyKind{TaxonomyType, TaxonomyBrand, TaxonomyModel}

func (k TaxonomyKind) Valid() bool {
	switch k {
	case TaxonomyType, TaxonomyBrand, TaxonomyModel:
		return true
	}
	return false
}

// TaxonomyItem is a row of equipment_types, equipment_brands or
// equipment_models. Name is unique within its kind.
type TaxonomyItem struct {
	ID   uint64       `json:"id"`
	Kind TaxonomyKind `json:"-"`
	Name string       `json:"name"`

	types.BaseEntity
}
