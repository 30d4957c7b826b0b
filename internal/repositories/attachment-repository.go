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

const attachmentFields = "id, event_id, path, created_at, updated_at"

var attachmentTables = map[entities.EventAttachmentKind]string{
	entities.EventPhotoKind: "event_photos",
	entities.EventFileKind:  "event_files",
}

func attachmentTable(kind entities.EventAttachmentKind) (string, error) {
	table, ok := attachmentTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown attachment kind %q", kind)
	}
	return table, nil
}

type AttachmentRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, kind entities.EventAttachmentKind, id uint64) (*entities.EventAttachment, error)
	GetAll(ctx context.Context, kind entities.EventAttachmentKind, eventID uint64, filter types.Filter) ([]*entities.EventAttachment, uint64, error)
	// PathsByEvent returns the stored paths of every photo and file of an event.
	PathsByEvent(ctx context.Context, tx pgx.Tx, eventID uint64) ([]string, error)
	Create(ctx context.Context, tx pgx.Tx, a entities.EventAttachment) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, a entities.EventAttachment) error
	Delete(ctx context.Context, tx pgx.Tx, kind entities.EventAttachmentKind, id uint64) error
}

type attachmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAttachmentRepository(storage *pgxpool.Pool, logger *zap.Logger) AttachmentRepositoryInterface {
	return &attachmentRepository{storage: storage, logger: logger}
}

func (r *attachmentRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanAttachment(row pgx.Row, kind entities.EventAttachmentKind) (*entities.EventAttachment, error) {
	a := entities.EventAttachment{Kind: kind}
	if err := row.Scan(&a.ID, &a.EventID, &a.Path, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapPgError(err, "failed to scan event "+string(kind))
	}
	return &a, nil
}

func (r *attachmentRepository) FindByID(ctx context.Context, tx pgx.Tx, kind entities.EventAttachmentKind, id uint64) (*entities.EventAttachment, error) {
	table, err := attachmentTable(kind)
	if err != nil {
		return nil, err
	}
	query, args, err := psql.Select(attachmentFields).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s lookup: %w", table, err)
	}
	return scanAttachment(r.getQuerier(tx).QueryRow(ctx, query, args...), kind)
}

// GetAll lists attachments of one kind, restricted to eventID when it is not zero.
func (r *attachmentRepository) GetAll(ctx context.Context, kind entities.EventAttachmentKind, eventID uint64, filter types.Filter) ([]*entities.EventAttachment, uint64, error) {
	table, err := attachmentTable(kind)
	if err != nil {
		return nil, 0, err
	}

	var where sq.Sqlizer
	if eventID != 0 {
		where = sq.Eq{"event_id": eventID}
	}

	total, err := count(ctx, r.storage, table, where)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*entities.EventAttachment{}, 0, nil
	}

	b := psql.Select(attachmentFields).From(table)
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

	items := make([]*entities.EventAttachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows, kind)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *attachmentRepository) PathsByEvent(ctx context.Context, tx pgx.Tx, eventID uint64) ([]string, error) {
	query, args, err := psql.Select("path").From("event_photos").Where(sq.Eq{"event_id": eventID}).
		Suffix("UNION ALL SELECT path FROM event_files WHERE event_id = ?", eventID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attachment path query: %w", err)
	}

	rows, err := r.getQuerier(tx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load attachment paths: %w", err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan attachment path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (r *attachmentRepository) Create(ctx context.Context, tx pgx.Tx, a entities.EventAttachment) (uint64, error) {
	table, err := attachmentTable(a.Kind)
	if err != nil {
		return 0, err
	}
	query, args, err := psql.Insert(table).
		Columns("event_id", "path", "created_at", "updated_at").
		Values(a.EventID, a.Path, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s insert: %w", table, err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapPgError(err, "failed to create event "+string(a.Kind))
	}
	return id, nil
}

func (r *attachmentRepository) Update(ctx context.Context, tx pgx.Tx, a entities.EventAttachment) error {
	table, err := attachmentTable(a.Kind)
	if err != nil {
		return err
	}
	query, args, err := psql.Update(table).
		Set("event_id", a.EventID).
		Set("path", a.Path).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s update: %w", table, err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to update event "+string(a.Kind))
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *attachmentRepository) Delete(ctx context.Context, tx pgx.Tx, kind entities.EventAttachmentKind, id uint64) error {
	table, err := attachmentTable(kind)
	if err != nil {
		return err
	}
	query, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s delete: %w", table, err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to delete event "+string(kind))
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
