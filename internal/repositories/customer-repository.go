package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"event-rental/internal/entities"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/types"
)

const (
	customerTable  = "customers"
	customerFields = "id, name, phone, email, company, created_at, updated_at"
)

type CustomerRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Customer, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Customer, uint64, error)
	Create(ctx context.Context, tx pgx.Tx, c entities.Customer) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, c entities.Customer) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
}

type customerRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCustomerRepository(storage *pgxpool.Pool, logger *zap.Logger) CustomerRepositoryInterface {
	return &customerRepository{storage: storage, logger: logger}
}

func (r *customerRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanCustomer(row pgx.Row) (*entities.Customer, error) {
	var c entities.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Company, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapPgError(err, "failed to scan customer")
	}
	return &c, nil
}

func (r *customerRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Customer, error) {
	query, args, err := psql.Select(customerFields).From(customerTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build customer FindByID query: %w", err)
	}
	return scanCustomer(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *customerRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Customer, uint64, error) {
	where := searchCondition(filter.Search, "name", "company", "email")

	total, err := count(ctx, r.storage, customerTable, where)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*entities.Customer{}, 0, nil
	}

	b := psql.Select(customerFields).From(customerTable)
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := paginate(b, "id", filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build customer list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]*entities.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

func (r *customerRepository) Create(ctx context.Context, tx pgx.Tx, c entities.Customer) (uint64, error) {
	query, args, err := psql.Insert(customerTable).
		Columns("name", "phone", "email", "company", "created_at", "updated_at").
		Values(c.Name, c.Phone, c.Email, c.Company, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build customer insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapPgError(err, "failed to create customer")
	}
	return id, nil
}

func (r *customerRepository) Update(ctx context.Context, tx pgx.Tx, c entities.Customer) error {
	query, args, err := psql.Update(customerTable).
		Set("name", c.Name).
		Set("phone", c.Phone).
		Set("email", c.Email).
		Set("company", c.Company).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build customer update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to update customer")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete fails with ErrConflict while events still reference the customer.
func (r *customerRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(customerTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build customer delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to delete customer")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
