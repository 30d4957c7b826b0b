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
	eventTable          = "events"
	eventCrewTable      = "event_crew"
	eventEquipmentTable = "event_equipment"
)

var eventSelectFields = []string{
	"ev.id", "ev.name", "ev.load_in_date", "ev.load_out_date", "ev.start_date", "ev.end_date",
	"ev.comment", "ev.venue_id", "ev.customer_id", "ev.leader_id", "ev.created_at", "ev.updated_at",
	"l.username",
}

type EventRepositoryInterface interface {
	// FindByID loads the event with its leader, crew and equipment.
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Event, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Event, uint64, error)
	Create(ctx context.Context, tx pgx.Tx, ev entities.Event) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, ev entities.Event) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	// ReplaceCrew and ReplaceEquipment make the association set equal to ids.
	ReplaceCrew(ctx context.Context, tx pgx.Tx, eventID uint64, employeeIDs []uint64) error
	ReplaceEquipment(ctx context.Context, tx pgx.Tx, eventID uint64, equipmentIDs []uint64) error
}

type eventRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEventRepository(storage *pgxpool.Pool, logger *zap.Logger) EventRepositoryInterface {
	return &eventRepository{storage: storage, logger: logger}
}

func (r *eventRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *eventRepository) baseSelect() sq.SelectBuilder {
	return psql.Select(eventSelectFields...).
		From(eventTable + " ev").
		LeftJoin("employees l ON l.id = ev.leader_id")
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var (
		ev             entities.Event
		leaderUsername *string
	)
	err := row.Scan(
		&ev.ID, &ev.Name, &ev.LoadInDate, &ev.LoadOutDate, &ev.StartDate, &ev.EndDate,
		&ev.Comment, &ev.VenueID, &ev.CustomerID, &ev.LeaderID, &ev.CreatedAt, &ev.UpdatedAt,
		&leaderUsername,
	)
	if err != nil {
		return nil, mapPgError(err, "failed to scan event")
	}
	if ev.LeaderID.Valid && leaderUsername != nil {
		ev.Leader = &entities.EmployeeRef{ID: ev.LeaderID.Uint64, Username: *leaderUsername}
	}
	return &ev, nil
}

func (r *eventRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Event, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"ev.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event lookup: %w", err)
	}

	q := r.getQuerier(tx)
	ev, err := scanEvent(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if err := r.loadAssociations(ctx, q, []*entities.Event{ev}); err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *eventRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Event, uint64, error) {
	where := searchCondition(filter.Search, "ev.name", "ev.comment")

	total, err := count(ctx, r.storage, eventTable+" ev", where)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*entities.Event{}, 0, nil
	}

	b := r.baseSelect()
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := paginate(b, "ev.id", filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build event list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	events := make([]*entities.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			rows.Close()
			return nil, 0, err
		}
		events = append(events, ev)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadAssociations(ctx, r.storage, events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// loadAssociations fills Crew and Equipment with two queries for the whole page.
func (r *eventRepository) loadAssociations(ctx context.Context, q Querier, events []*entities.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[uint64]*entities.Event, len(events))
	ids := make([]uint64, 0, len(events))
	for _, ev := range events {
		ev.Crew = []entities.EmployeeRef{}
		ev.Equipment = []entities.EquipmentRef{}
		byID[ev.ID] = ev
		ids = append(ids, ev.ID)
	}

	query, args, err := psql.Select("ec.event_id", "emp.id", "emp.username").
		From(eventCrewTable + " ec").
		Join("employees emp ON emp.id = ec.employee_id").
		Where(sq.Eq{"ec.event_id": ids}).
		OrderBy("emp.username").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build crew query: %w", err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load crew: %w", err)
	}
	for rows.Next() {
		var eventID uint64
		var ref entities.EmployeeRef
		if err := rows.Scan(&eventID, &ref.ID, &ref.Username); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan crew: %w", err)
		}
		byID[eventID].Crew = append(byID[eventID].Crew, ref)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	query, args, err = psql.Select("ee.event_id", "eq.id", "eq.uid").
		From(eventEquipmentTable + " ee").
		Join("equipment eq ON eq.id = ee.equipment_id").
		Where(sq.Eq{"ee.event_id": ids}).
		OrderBy("eq.uid").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build equipment query: %w", err)
	}
	rows, err = q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load event equipment: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var eventID uint64
		var ref entities.EquipmentRef
		if err := rows.Scan(&eventID, &ref.ID, &ref.UID); err != nil {
			return fmt.Errorf("failed to scan event equipment: %w", err)
		}
		byID[eventID].Equipment = append(byID[eventID].Equipment, ref)
	}
	return rows.Err()
}

func (r *eventRepository) Create(ctx context.Context, tx pgx.Tx, ev entities.Event) (uint64, error) {
	query, args, err := psql.Insert(eventTable).
		Columns("name", "load_in_date", "load_out_date", "start_date", "end_date", "comment",
			"venue_id", "customer_id", "leader_id", "created_at", "updated_at").
		Values(ev.Name, ev.LoadInDate, ev.LoadOutDate, ev.StartDate, ev.EndDate, ev.Comment,
			ev.VenueID, ev.CustomerID, ev.LeaderID, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build event insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapPgError(err, "failed to create event")
	}
	return id, nil
}

func (r *eventRepository) Update(ctx context.Context, tx pgx.Tx, ev entities.Event) error {
	query, args, err := psql.Update(eventTable).
		Set("name", ev.Name).
		Set("load_in_date", ev.LoadInDate).
		Set("load_out_date", ev.LoadOutDate).
		Set("start_date", ev.StartDate).
		Set("end_date", ev.EndDate).
		Set("comment", ev.Comment).
		Set("venue_id", ev.VenueID).
		Set("customer_id", ev.CustomerID).
		Set("leader_id", ev.LeaderID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": ev.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build event update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to update event %d", ev.ID))
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes the event together with its crew, equipment, photo and file rows.
func (r *eventRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(eventTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build event delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "failed to delete event")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ReplaceCrew(ctx context.Context, tx pgx.Tx, eventID uint64, employeeIDs []uint64) error {
	return r.replaceLinks(ctx, tx, eventCrewTable, "employee_id", eventID, employeeIDs)
}

func (r *eventRepository) ReplaceEquipment(ctx context.Context, tx pgx.Tx, eventID uint64, equipmentIDs []uint64) error {
	return r.replaceLinks(ctx, tx, eventEquipmentTable, "equipment_id", eventID, equipmentIDs)
}

func (r *eventRepository) replaceLinks(ctx context.Context, tx pgx.Tx, table, column string, eventID uint64, ids []uint64) error {
	q := r.getQuerier(tx)

	query, args, err := psql.Delete(table).Where(sq.Eq{"event_id": eventID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s delete: %w", table, err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapPgError(err, "failed to clear "+table)
	}
	if len(ids) == 0 {
		return nil
	}

	insert := psql.Insert(table).Columns("event_id", column)
	for _, id := range ids {
		insert = insert.Values(eventID, id)
	}
	query, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s insert: %w", table, err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapPgError(err, "failed to fill "+table)
	}
	return nil
}
