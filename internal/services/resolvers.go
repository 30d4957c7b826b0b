package services

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"

	"event-rental/internal/entities"
	"event-rental/internal/graph"
	"event-rental/internal/repositories"
	apperrors "event-rental/pkg/errors"
)

// NewAssembler wires every natural-key lookup used by the write schemas.
func NewAssembler(
	validate graph.VarValidator,
	taxonomy TaxonomyResolverInterface,
	venueRepo repositories.VenueRepositoryInterface,
	customerRepo repositories.CustomerRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
) *graph.Assembler {
	a := graph.NewAssembler(validate)

	for _, kind := range entities.TaxonomyKinds {
		kind := kind
		a.RegisterGetOrCreate(string(kind), func(ctx context.Context, tx pgx.Tx, name string) (uint64, error) {
			item, _, err := taxonomy.ResolveOrCreate(ctx, tx, kind, name)
			if err != nil {
				return 0, err
			}
			return item.ID, nil
		})
	}

	a.RegisterLookup(targetVenue, func(ctx context.Context, tx pgx.Tx, key string) (uint64, error) {
		id, err := parseKeyID(key)
		if err != nil {
			return 0, err
		}
		v, err := venueRepo.FindByID(ctx, tx, id)
		if err != nil {
			return 0, err
		}
		return v.ID, nil
	})

	a.RegisterLookup(targetCustomer, func(ctx context.Context, tx pgx.Tx, key string) (uint64, error) {
		id, err := parseKeyID(key)
		if err != nil {
			return 0, err
		}
		c, err := customerRepo.FindByID(ctx, tx, id)
		if err != nil {
			return 0, err
		}
		return c.ID, nil
	})

	a.RegisterLookup(targetEmployee, func(ctx context.Context, tx pgx.Tx, username string) (uint64, error) {
		e, err := employeeRepo.FindByUsername(ctx, tx, username)
		if err != nil {
			return 0, err
		}
		return e.ID, nil
	})

	a.RegisterLookup(targetEquipment, func(ctx context.Context, tx pgx.Tx, uid string) (uint64, error) {
		e, err := equipmentRepo.FindByUID(ctx, tx, uid)
		if err != nil {
			return 0, err
		}
		return e.ID, nil
	})

	return a
}

func parseKeyID(key string) (uint64, error) {
	id, err := strconv.ParseUint(key, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrNotFound
	}
	return id, nil
}
