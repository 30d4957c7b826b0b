package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"event-rental/internal/entities"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/types"
)

const taxonomyFields = "id, name, created_at, updated_at"

var taxonomyTables = map[entities.TaxonomyKind]string{
	entities.TaxonomyType:  "equipment_types",
	entities.TaxonomyBrand: "equipment_brands",
	entities.TaxonomyModel: "equipment_models",
}

func taxonomyTable(kind entities.TaxonomyKind) (string, error) {
	table, ok := taxonomyTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown taxonomy kind %q", kind)
	}
	return table, nil
}

type TaxonomyRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, id uint64) (*entities.TaxonomyItem, error)
	FindByName(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, name string) (*entities.TaxonomyItem, error)
	GetAll(ctx context.Context, kind entities.TaxonomyKind, filter types.Filter) ([]*entities.TaxonomyItem, uint64, error)
	// Create inserts name and returns ErrConflict when the name already
	// exists, without aborting tx.
	Create(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, name string) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, item entities.TaxonomyItem) error
	Delete(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, id uint64) error
}

type taxonomyRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTaxonomyRepository(storage *pgxpool.Pool, logger *zap.Logger) TaxonomyRepositoryInterface {
	return &taxonomyRepository{storage: storage, logger: logger}
}

func (r *taxonomyRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanTaxonomyItem(row pgx.Row, kind entities.TaxonomyKind) (*entities.TaxonomyItem, error) {
	item := entities.TaxonomyItem{Kind: kind}
	if err := row.Scan(&item.ID, &item.Name, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, mapPgError(err, "failed to scan "+string(kind))
	}
	return &item, nil
}

func (r *taxonomyRepository) findOne(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, where sq.Eq) (*entities.TaxonomyItem, error) {
	table, err := taxonomyTable(kind)
	if err != nil {
		return nil, err
	}
	query, args, err := psql.Select(taxonomyFields).From(table).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s lookup: %w", table, err)
	}
	return scanTaxonomyItem(r.getQuerier(tx).QueryRow(ctx, query, args...), kind)
}

func (r *taxonomyRepository) FindByID(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, id uint64) (*entities.TaxonomyItem, error) {
	return r.findOne(ctx, tx, kind, sq.Eq{"id": id})
}

// FindByName is an exact, case-sensitive match.
func (r *taxonomyRepository) FindByName(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, name string) (*entities.TaxonomyItem, error) {
	return r.findOne(ctx, tx, kind, sq.Eq{"name": name})
}

func (r *taxonomyRepository) GetAll(ctx context.Context, kind entities.TaxonomyKind, filter types.Filter) ([]*entities.TaxonomyItem, uint64, error) {
	table, err := taxonomyTable(kind)
	if err != nil {
		return nil, 0, err
	}
	where := searchCondition(filter.Search, "name")

	total, err := count(ctx, r.storage, table, where)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*entities.TaxonomyItem{}, 0, nil
	}

	b := psql.Select(taxonomyFields).From(table)
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := paginate(b, "id", filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build %s list query: %w", table, err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	items := make([]*entities.TaxonomyItem, 0)
	for rows.Next() {
		item, err := scanTaxonomyItem(rows, kind)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// Create uses ON CONFLICT DO NOTHING so a duplicate name leaves the
// surrounding transaction usable. A concurrent uncommitted insert of the
// same name makes this statement wait for that transaction to finish.
func (r *taxonomyRepository) Create(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, name string) (uint64, error) {
	table, err := taxonomyTable(kind)
	if err != nil {
		return 0, err
	}
	query, args, err := psql.Insert(table).
		Columns("name", "created_at", "updated_at").
		Values(name, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("ON CONFLICT (name) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s insert: %w", table, err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s %q already exists: %w", kind, name, apperrors.ErrConflict)
		}
		return 0, mapPgError(err, "failed to create "+string(kind))
	}
	return id, nil
}

func (r *taxonomyRepository) Update(ctx context.Context, tx pgx.Tx, item entities.TaxonomyItem) error {
	table, err := taxonomyTable(item.Kind)
	if err != nil {
		return err
	}
	query, args, err := psql.Update(table).
		Set("name", item.Name).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s update: %w", table, err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to update "+string(item.Kind))
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete also removes the equipment units of this type, brand or model.
func (r *taxonomyRepository) Delete(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, id uint64) error {
	table, err := taxonomyTable(kind)
	if err != nil {
		return err
	}
	query, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s delete: %w", table, err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to delete "+string(kind))
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
