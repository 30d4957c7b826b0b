package seeders

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"event-rental/internal/entities"
	"event-rental/internal/repositories"
	"event-rental/internal/services"
	"event-rental/pkg/utils"
)

type Seeder struct {
	employees repositories.EmployeeRepositoryInterface
	taxonomy  services.TaxonomyResolverInterface
	txManager repositories.TxManagerInterface
	logger    *zap.Logger
}

func New(
	employees repositories.EmployeeRepositoryInterface,
	taxonomy services.TaxonomyResolverInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{employees: employees, taxonomy: taxonomy, txManager: txManager, logger: logger}
}

// SeedEmployees upserts the default accounts. Every account gets password.
// Rerunning resets their passwords and roles.
func (s *Seeder) SeedEmployees(ctx context.Context, password string) error {
	if password == "" {
		return fmt.Errorf("seed password must not be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, seed := range employeesData {
			id, err := s.employees.Upsert(ctx, tx, entities.Employee{
				Username:    seed.Username,
				FirstName:   seed.FirstName,
				FathersName: seed.Surname,
				Email:       seed.Username + "@event-rental.local",
				Password:    hashed,
				Role:        seed.Role,
				IsActive:    true,
				IsStaff:     true,
				IsSuperuser: seed.Superuser,
			})
			if err != nil {
				return fmt.Errorf("failed to seed employee %s: %w", seed.Username, err)
			}
			s.logger.Info("employee seeded",
				zap.Uint64("id", id),
				zap.String("username", seed.Username),
				zap.String("role", string(seed.Role)))
		}
		return nil
	})
}

// SeedTaxonomies adds the common equipment types and brands. Existing rows
// are left alone.
func (s *Seeder) SeedTaxonomies(ctx context.Context) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, kind := range entities.TaxonomyKinds {
			added := 0
			for _, name := range taxonomyData[kind] {
				_, created, err := s.taxonomy.ResolveOrCreate(ctx, tx, kind, strings.TrimSpace(name))
				if err != nil {
					return fmt.Errorf("failed to seed %s %q: %w", kind, name, err)
				}
				if created {
					added++
				}
			}
			s.logger.Info("taxonomy seeded", zap.String("kind", string(kind)), zap.Int("added", added))
		}
		return nil
	})
}
