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
	venueTable  = "venues"
	venueFields = "id, name, address, city, state, created_at, updated_at"
)

type VenueRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Venue, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Venue, uint64, error)
	Create(ctx context.Context, tx pgx.Tx, v entities.Venue) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, v entities.Venue) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
}

type venueRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewVenueRepository(storage *pgxpool.Pool, logger *zap.Logger) VenueRepositoryInterface {
	return &venueRepository{storage: storage, logger: logger}
}

func (r *venueRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanVenue(row pgx.Row) (*entities.Venue, error) {
	var v entities.Venue
	if err := row.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.State, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, mapPgError(err, "failed to scan venue")
	}
	return &v, nil
}

func (r *venueRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Venue, error) {
	query, args, err := psql.Select(venueFields).From(venueTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build venue FindByID query: %w", err)
	}
	return scanVenue(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *venueRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Venue, uint64, error) {
	where := searchCondition(filter.Search, "name", "city", "state")

	total, err := count(ctx, r.storage, venueTable, where)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*entities.Venue{}, 0, nil
	}

	b := psql.Select(venueFields).From(venueTable)
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := paginate(b, "id", filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build venue list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	venues := make([]*entities.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, 0, err
		}
		venues = append(venues, v)
	}
	return venues, total, rows.Err()
}

func (r *venueRepository) Create(ctx context.Context, tx pgx.Tx, v entities.Venue) (uint64, error) {
	query, args, err := psql.Insert(venueTable).
		Columns("name", "address", "city", "state", "created_at", "updated_at").
		Values(v.Name, v.Address, v.City, v.State, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build venue insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapPgError(err, "failed to create venue")
	}
	return id, nil
}

func (r *venueRepository) Update(ctx context.Context, tx pgx.Tx, v entities.Venue) error {
	query, args, err := psql.Update(venueTable).
		Set("name", v.Name).
		Set("address", v.Address).
		Set("city", v.City).
		Set("state", v.State).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build venue update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to update venue")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a venue. Events keep existing with venue_id set to NULL.
func (r *venueRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(venueTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build venue delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to delete venue")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
