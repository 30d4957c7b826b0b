package entities

import (
	"github.com/aarondl/null/v8"

	"event-rental/pkg/types"
)

type Customer struct {
	ID      uint64      `json:"id"`
	Name    string      `json:"name"`
	Phone   null.String `json:"phone"`
	Email   null.String `json:"email"`
	Company null.String `json:"company"`

	types.BaseEntity
}
