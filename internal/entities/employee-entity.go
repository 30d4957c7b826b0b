package entities

import (
	"github.com/aarondl/null/v8"

	"event-rental/pkg/types"
)

type Role string

const (
	RoleSales     Role = "sales"
	RoleTech      Role = "tech"
	RoleAdmin     Role = "admin"
	RoleFinance   Role = "finance"
	RoleInventory Role = "inventory"
)

// Roles lists every role an employee can hold.
var Roles = []Role{RoleSales, RoleTech, RoleAdmin, RoleFinance, RoleInventory}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Employee is a crew member. Events reference employees by Username.
type Employee struct {
	ID          uint64      `json:"id"`
	Username    string      `json:"username"`
	FirstName   string      `json:"first_name"`
	FathersName string      `json:"fathers_name"`
	MothersName null.String `json:"mothers_name"`
	Email       string      `json:"email"`
	Password    string      `json:"-"`
	Role        Role        `json:"role"`
	IsActive    bool        `json:"is_active"`
	IsStaff     bool        `json:"is_staff"`
	IsSuperuser bool        `json:"is_superuser"`

	types.BaseEntity
}
