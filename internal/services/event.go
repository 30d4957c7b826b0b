package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"event-rental/internal/dto"
	"event-rental/internal/entities"
	"event-rental/internal/graph"
	"event-rental/internal/repositories"
	"event-rental/pkg/filestorage"
	"event-rental/pkg/types"
)

type EventServiceInterface interface {
	GetEvents(ctx context.Context, filter types.Filter) (*dto.PaginatedResponse[dto.EventDTO], error)
	FindEvent(ctx context.Context, id uint64) (*dto.EventDTO, error)
	CreateEvent(ctx context.Context, payload []byte) (*dto.EventDTO, error)
	UpdateEvent(ctx context.Context, id uint64, payload []byte, mode graph.Mode) (*dto.EventDTO, error)
	// DeleteEvent also removes the stored photos and files of the event.
	DeleteEvent(ctx context.Context, id uint64) error
}

type EventService struct {
	repo           repositories.EventRepositoryInterface
	attachmentRepo repositories.AttachmentRepositoryInterface
	txManager      repositories.TxManagerInterface
	assembler      *graph.Assembler
	fileStorage    filestorage.FileStorageInterface
	logger         *zap.Logger
}

func NewEventService(
	repo repositories.EventRepositoryInterface,
	attachmentRepo repositories.AttachmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	assembler *graph.Assembler,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) EventServiceInterface {
	return &EventService{
		repo:           repo,
		attachmentRepo: attachmentRepo,
		txManager:      txManager,
		assembler:      assembler,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

func applyEvent(ev *entities.Event, doc *graph.Document, res *graph.Resolved) {
	setString(doc, "name", &ev.Name)
	setTime(doc, "load_in_date", &ev.LoadInDate)
	setTime(doc, "load_out_date", &ev.LoadOutDate)
	setTime(doc, "start_date", &ev.StartDate)
	setTime(doc, "end_date", &ev.EndDate)
	setString(doc, "comment", &ev.Comment)
	setNullRef(res, "venue", &ev.VenueID)
	setRef(res, "customer", &ev.CustomerID)
	setNullRef(res, "leader", &ev.LeaderID)
}

// persistLinks rewrites crew and equipment when the payload carried them.
func (s *EventService) persistLinks(ctx context.Context, tx pgx.Tx, eventID uint64, res *graph.Resolved) error {
	if ids, ok := res.Many("crew"); ok {
		if err := s.repo.ReplaceCrew(ctx, tx, eventID, ids); err != nil {
			return err
		}
	}
	if ids, ok := res.Many("equipment"); ok {
		if err := s.repo.ReplaceEquipment(ctx, tx, eventID, ids); err != nil {
			return err
		}
	}
	return nil
}

func (s *EventService) GetEvents(ctx context.Context, filter types.Filter) (*dto.PaginatedResponse[dto.EventDTO], error) {
	events, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list events", zap.Error(err))
		return nil, err
	}
	list := make([]dto.EventDTO, 0, len(events))
	for _, ev := range events {
		list = append(list, dto.NewEventDTO(ev))
	}
	return &dto.PaginatedResponse[dto.EventDTO]{List: list, Total: total}, nil
}

func (s *EventService) FindEvent(ctx context.Context, id uint64) (*dto.EventDTO, error) {
	ev, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewEventDTO(ev)
	return &out, nil
}

func (s *EventService) CreateEvent(ctx context.Context, payload []byte) (*dto.EventDTO, error) {
	doc, err := s.assembler.Decode(eventSchema, payload, graph.Create)
	if err != nil {
		return nil, err
	}

	var created *entities.Event
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		res, err := s.assembler.Resolve(ctx, tx, eventSchema, doc)
		if err != nil {
			return err
		}

		var ev entities.Event
		applyEvent(&ev, doc, res)

		id, err := s.repo.Create(ctx, tx, ev)
		if err != nil {
			return err
		}
		if err := s.persistLinks(ctx, tx, id, res); err != nil {
			return err
		}
		created, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		s.logger.Warn("failed to create event", zap.Error(err))
		return nil, err
	}

	s.logger.Info("event created", zap.Uint64("id", created.ID))
	out := dto.NewEventDTO(created)
	return &out, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uint64, payload []byte, mode graph.Mode) (*dto.EventDTO, error) {
	ev, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.assembler.Decode(eventSchema, payload, mode)
	if err != nil {
		return nil, err
	}

	var updated *entities.Event
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		res, err := s.assembler.Resolve(ctx, tx, eventSchema, doc)
		if err != nil {
			return err
		}

		applyEvent(ev, doc, res)

		if err := s.repo.Update(ctx, tx, *ev); err != nil {
			return err
		}
		if err := s.persistLinks(ctx, tx, id, res); err != nil {
			return err
		}
		updated, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		s.logger.Warn("failed to update event", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	out := dto.NewEventDTO(updated)
	return &out, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint64) error {
	var paths []string
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		paths, err = s.attachmentRepo.PathsByEvent(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		s.logger.Warn("failed to delete event", zap.Uint64("id", id), zap.Error(err))
		return err
	}

	// rows are gone; a leftover file is only logged
	for _, p := range paths {
		if err := s.fileStorage.Delete(p); err != nil {
			s.logger.Error("failed to remove event attachment", zap.Uint64("event_id", id), zap.String("path", p), zap.Error(err))
		}
	}
	return nil
}
