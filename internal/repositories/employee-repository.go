package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"event-rental/internal/entities"
)

const (
	employeeTable  = "employees"
	employeeFields = "id, username, first_name, fathers_name, mothers_name, email, password, role, is_active, is_staff, is_superuser, created_at, updated_at"
)

type EmployeeRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Employee, error)
	FindByUsername(ctx context.Context, tx pgx.Tx, username string) (*entities.Employee, error)
	// Upsert creates the employee or refreshes it by username. Used by the seeder.
	Upsert(ctx context.Context, tx pgx.Tx, e entities.Employee) (uint64, error)
}

type employeeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEmployeeRepository(storage *pgxpool.Pool, logger *zap.Logger) EmployeeRepositoryInterface {
	return &employeeRepository{storage: storage, logger: logger}
}

func (r *employeeRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *employeeRepository) findOne(ctx context.Context, tx pgx.Tx, where sq.Eq) (*entities.Employee, error) {
	query, args, err := psql.Select(employeeFields).From(employeeTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build employee lookup: %w", err)
	}

	var e entities.Employee
	err = r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.Username, &e.FirstName, &e.FathersName, &e.MothersName, &e.Email, &e.Password,
		&e.Role, &e.IsActive, &e.IsStaff, &e.IsSuperuser, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err, "failed to scan employee")
	}
	return &e, nil
}

func (r *employeeRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Employee, error) {
	return r.findOne(ctx, tx, sq.Eq{"id": id})
}

func (r *employeeRepository) FindByUsername(ctx context.Context, tx pgx.Tx, username string) (*entities.Employee, error) {
	return r.findOne(ctx, tx, sq.Eq{"username": username})
}

func (r *employeeRepository) Upsert(ctx context.Context, tx pgx.Tx, e entities.Employee) (uint64, error) {
	query, args, err := psql.Insert(employeeTable).
		Columns("username", "first_name", "fathers_name", "mothers_name", "email", "password", "role", "is_active", "is_staff", "is_superuser").
		Values(e.Username, e.FirstName, e.FathersName, e.MothersName, e.Email, e.Password, e.Role, e.IsActive, e.IsStaff, e.IsSuperuser).
		Suffix(`ON CONFLICT (username) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			fathers_name = EXCLUDED.fathers_name,
			mothers_name = EXCLUDED.mothers_name,
			email = EXCLUDED.email,
			password = EXCLUDED.password,
			role = EXCLUDED.role,
			is_active = EXCLUDED.is_active,
			is_staff = EXCLUDED.is_staff,
			is_superuser = EXCLUDED.is_superuser,
			updated_at = NOW()
			RETURNING id`).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build employee upsert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapPgError(err, "failed to upsert employee "+e.Username)
	}
	return id, nil
}
