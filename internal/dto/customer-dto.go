package dto

import (
	"github.com/aarondl/null/v8"

	"event-rental/internal/entities"
)

type CustomerDTO struct {
	ID      uint64      `json:"id"`
	Name    string      `json:"name"`
	Phone   null.String `json:"phone"`
	Email   null.String `json:"email"`
	Company null.String `json:"company"`
}

func NewCustomerDTO(c *entities.Customer) CustomerDTO {
	return CustomerDTO{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, Company: c.Company}
}
