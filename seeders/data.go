package seeders

import "event-rental/internal/entities"

type employeeSeed struct {
	Username  string
	FirstName string
	Surname   string
	Role      entities.Role
	Superuser bool
}

// one account per role, plus the superuser
var employeesData = []employeeSeed{
	{Username: "admin", FirstName: "System", Surname: "Administrator", Role: entities.RoleAdmin, Superuser: true},
	{Username: "sales", FirstName: "Sales", Surname: "Desk", Role: entities.RoleSales},
	{Username: "tech", FirstName: "Stage", Surname: "Technician", Role: entities.RoleTech},
	{Username: "finance", FirstName: "Finance", Surname: "Office", Role: entities.RoleFinance},
	{Username: "inventory", FirstName: "Inventory", Surname: "Keeper", Role: entities.RoleInventory},
}

var taxonomyData = map[entities.TaxonomyKind][]string{
	entities.TaxonomyType: {
		"Speaker", "Subwoofer", "Mixer", "Microphone", "Amplifier",
		"Moving head", "LED par", "Truss", "Projector", "LED screen",
	},
	entities.TaxonomyBrand: {
		"Yamaha", "Shure", "Sennheiser", "JBL", "Allen & Heath", "Robe", "Martin",
	},
}
