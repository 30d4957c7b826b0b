package services

import (
	"event-rental/internal/entities"
	"event-rental/internal/graph"
)

// Resolver targets registered on the assembler.
const (
	targetVenue     = "venue"
	targetCustomer  = "customer"
	targetEmployee  = "employee"
	targetEquipment = "equipment"
)

var venueSchema = &graph.Schema{
	Name: "venue",
	Scalars: []graph.Scalar{
		{Name: "name", Type: graph.String, Required: true, Rules: "max=50"},
		{Name: "address", Type: graph.String, Required: true, Rules: "max=255"},
		{Name: "city", Type: graph.String, Required: true, Rules: "max=255"},
		{Name: "state", Type: graph.String, Required: true, Rules: "max=255"},
	},
	ReadOnly: []string{"id"},
}

var customerSchema = &graph.Schema{
	Name: "customer",
	Scalars: []graph.Scalar{
		{Name: "name", Type: graph.String, Required: true, Rules: "max=50"},
		{Name: "phone", Type: graph.String, Nullable: true, Rules: "max=10"},
		{Name: "email", Type: graph.String, Nullable: true, Rules: "omitempty,max=254,custom_email"},
		{Name: "company", Type: graph.String, Nullable: true, Rules: "max=50"},
	},
	ReadOnly: []string{"id"},
}

var taxonomySchema = &graph.Schema{
	Name: "taxonomy",
	Scalars: []graph.Scalar{
		{Name: "name", Type: graph.String, Required: true, Rules: "max=50"},
	},
	ReadOnly: []string{"id"},
}

func taxonomyRelation(field string, kind entities.TaxonomyKind) graph.Relation {
	return graph.Relation{
		Field:    field,
		Target:   string(kind),
		Key:      "name",
		KeyRules: "max=50",
		Strategy: graph.GetOrCreate,
		Required: true,
	}
}

var equipmentSchema = &graph.Schema{
	Name: "equipment",
	Scalars: []graph.Scalar{
		{Name: "number", Type: graph.Int, Required: true, Rules: "gte=0,lte=2147483647"},
		{Name: "serial_number", Type: graph.String, Nullable: true, Rules: "max=50"},
	},
	Relations: []graph.Relation{
		taxonomyRelation("type", entities.TaxonomyType),
		taxonomyRelation("brand", entities.TaxonomyBrand),
		taxonomyRelation("model", entities.TaxonomyModel),
	},
	ReadOnly: []string{"id", "uid"},
}

var eventSchema = &graph.Schema{
	Name: "event",
	Scalars: []graph.Scalar{
		{Name: "name", Type: graph.String, Required: true, Rules: "max=50"},
		{Name: "load_in_date", Type: graph.DateTime, Required: true},
		{Name: "load_out_date", Type: graph.DateTime, Required: true},
		{Name: "start_date", Type: graph.DateTime, Required: true},
		{Name: "end_date", Type: graph.DateTime, Required: true},
		{Name: "comment", Type: graph.Text, Required: true},
	},
	Relations: []graph.Relation{
		{Field: "venue", Target: targetVenue, Key: "id", Strategy: graph.StrictLookup, Nullable: true},
		{Field: "customer", Target: targetCustomer, Key: "id", Strategy: graph.StrictLookup, Required: true},
		{Field: "leader", Target: targetEmployee, Key: "username", KeyRules: "max=20", Strategy: graph.StrictLookup, Nullable: true},
		{Field: "crew", Target: targetEmployee, Key: "username", KeyRules: "max=20", Strategy: graph.StrictLookup, Many: true},
		{Field: "equipment", Target: targetEquipment, Key: "uid", KeyRules: "max=50", Strategy: graph.StrictLookup, Many: true},
	},
	ReadOnly: []string{"id"},
}
