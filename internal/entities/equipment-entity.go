package entities

import (
	"fmt"

	"github.com/aarondl/null/v8"

	"event-rental/pkg/types"
)

type Equipment struct {
	ID           uint64      `json:"id"`
	TypeID       uint64      `json:"type_id"`
	BrandID      uint64      `json:"brand_id"`
	ModelID      uint64      `json:"model_id"`
	Number       int64       `json:"number"`
	UID          string      `json:"uid"`
	SerialNumber null.String `json:"serial_number"`

	types.BaseEntity

	// Related rows, not columns
	Type  *TaxonomyItem `db:"-"`
	Brand *TaxonomyItem `db:"-"`
	Model *TaxonomyItem `db:"-"`
}

// DeriveEquipmentUID builds the unit identifier: type, brand and model ids
// zero-padded to two digits, a hyphen, then the sequence number.
// Ids of 100 and above keep all their digits.
func DeriveEquipmentUID(typeID, brandID, modelID uint64, number int64) string {
	return fmt.Sprintf("%02d%02d%02d-%d", typeID, brandID, modelID, number)
}

// RefreshUID recomputes UID from the current references. Called before
// every insert and update.
func (e *Equipment) RefreshUID() {
	e.UID = DeriveEquipmentUID(e.TypeID, e.BrandID, e.ModelID, e.Number)
}
