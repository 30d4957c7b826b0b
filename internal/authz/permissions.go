package authz

import "event-rental/internal/entities"

// Resource kinds guarded by the policy.
const (
	ResourceCustomer   = "customer"
	ResourceVenue      = "venue"
	ResourceEquipment  = "equipment"
	ResourceTaxonomy   = "taxonomy"
	ResourceEvent      = "event"
	ResourceEventPhoto = "event_photo"
	ResourceEventFile  = "event_file"
)

// Verb groups.
const (
	Read  = "read"
	Write = "write"
)

type rule struct {
	read  []entities.Role
	write []entities.Role
}

var anyRole = entities.Roles

// policy is the whole access table. A resource missing here denies everything.
var policy = map[string]rule{
	ResourceCustomer:   {read: anyRole, write: []entities.Role{entities.RoleSales}},
	ResourceVenue:      {read: anyRole, write: []entities.Role{entities.RoleSales}},
	ResourceEquipment:  {read: anyRole, write: []entities.Role{entities.RoleInventory}},
	ResourceTaxonomy:   {read: anyRole, write: []entities.Role{entities.RoleInventory}},
	ResourceEvent:      {read: anyRole, write: []entities.Role{entities.RoleSales}},
	ResourceEventPhoto: {read: anyRole, write: []entities.Role{entities.RoleSales}},
	ResourceEventFile:  {read: anyRole, write: []entities.Role{entities.RoleSales}},
}

// verbGroup maps an HTTP method to a verb group. Unknown methods map to "".
func verbGroup(method string) string {
	switch method {
	case "GET":
		return Read
	case "POST", "PUT", "PATCH", "DELETE":
		return Write
	}
	return ""
}
