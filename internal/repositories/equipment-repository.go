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

const equipmentTable = "equipment"

var equipmentSelectFields = []string{
	"e.id", "e.type_id", "e.brand_id", "e.model_id", "e.number", "e.uid", "e.serial_number",
	"e.created_at", "e.updated_at",
	"t.name", "b.name", "m.name",
}

type EquipmentRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	FindByUID(ctx context.Context, tx pgx.Tx, uid string) (*entities.Equipment, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Equipment, uint64, error)
	// Create and Update store e.UID as given; a duplicate uid is ErrConflict.
	Create(ctx context.Context, tx pgx.Tx, e entities.Equipment) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, e entities.Equipment) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
}

type equipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &equipmentRepository{storage: storage, logger: logger}
}

func (r *equipmentRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *equipmentRepository) baseSelect() sq.SelectBuilder {
	return psql.Select(equipmentSelectFields...).
		From(equipmentTable + " e").
		Join("equipment_types t ON t.id = e.type_id").
		Join("equipment_brands b ON b.id = e.brand_id").
		Join("equipment_models m ON m.id = e.model_id")
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var (
		e                              entities.Equipment
		typeName, brandName, modelName string
	)
	err := row.Scan(
		&e.ID, &e.TypeID, &e.BrandID, &e.ModelID, &e.Number, &e.UID, &e.SerialNumber,
		&e.CreatedAt, &e.UpdatedAt,
		&typeName, &brandName, &modelName,
	)
	if err != nil {
		return nil, mapPgError(err, "failed to scan equipment")
	}
	e.Type = &entities.TaxonomyItem{ID: e.TypeID, Kind: entities.TaxonomyType, Name: typeName}
	e.Brand = &entities.TaxonomyItem{ID: e.BrandID, Kind: entities.TaxonomyBrand, Name: brandName}
	e.Model = &entities.TaxonomyItem{ID: e.ModelID, Kind: entities.TaxonomyModel, Name: modelName}
	return &e, nil
}

func (r *equipmentRepository) findOne(ctx context.Context, tx pgx.Tx, where sq.Eq) (*entities.Equipment, error) {
	query, args, err := r.baseSelect().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build equipment lookup: %w", err)
	}
	return scanEquipment(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *equipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	return r.findOne(ctx, tx, sq.Eq{"e.id": id})
}

func (r *equipmentRepository) FindByUID(ctx context.Context, tx pgx.Tx, uid string) (*entities.Equipment, error) {
	return r.findOne(ctx, tx, sq.Eq{"e.uid": uid})
}

func (r *equipmentRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Equipment, uint64, error) {
	where := searchCondition(filter.Search, "e.uid", "e.serial_number", "t.name", "b.name", "m.name")

	countQuery := psql.Select("COUNT(*)").
		From(equipmentTable + " e").
		Join("equipment_types t ON t.id = e.type_id").
		Join("equipment_brands b ON b.id = e.brand_id").
		Join("equipment_models m ON m.id = e.model_id")
	if where != nil {
		countQuery = countQuery.Where(where)
	}
	query, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build equipment count: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count equipment: %w", err)
	}
	if total == 0 {
		return []*entities.Equipment{}, 0, nil
	}

	b := r.baseSelect()
	if where != nil {
		b = b.Where(where)
	}
	query, args, err = paginate(b, "e.id", filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build equipment list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	units := make([]*entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		units = append(units, e)
	}
	return units, total, rows.Err()
}

func (r *equipmentRepository) Create(ctx context.Context, tx pgx.Tx, e entities.Equipment) (uint64, error) {
	query, args, err := psql.Insert(equipmentTable).
		Columns("type_id", "brand_id", "model_id", "number", "uid", "serial_number", "created_at", "updated_at").
		Values(e.TypeID, e.BrandID, e.ModelID, e.Number, e.UID, e.SerialNumber, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build equipment insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapPgError(err, fmt.Sprintf("failed to create equipment %s", e.UID))
	}
	return id, nil
}

func (r *equipmentRepository) Update(ctx context.Context, tx pgx.Tx, e entities.Equipment) error {
	query, args, err := psql.Update(equipmentTable).
		Set("type_id", e.TypeID).
		Set("brand_id", e.BrandID).
		Set("model_id", e.ModelID).
		Set("number", e.Number).
		Set("uid", e.UID).
		Set("serial_number", e.SerialNumber).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build equipment update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to update equipment %d", e.ID))
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build equipment delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to delete equipment")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
