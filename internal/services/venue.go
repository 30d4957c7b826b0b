package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"event-rental/internal/dto"
	"event-rental/internal/entities"
	"event-rental/internal/graph"
	"event-rental/internal/repositories"
	"event-rental/pkg/types"
)

type VenueServiceInterface interface {
	GetVenues(ctx context.Context, filter types.Filter) (*dto.PaginatedResponse[dto.VenueDTO], error)
	FindVenue(ctx context.Context, id uint64) (*dto.VenueDTO, error)
	CreateVenue(ctx context.Context, payload []byte) (*dto.VenueDTO, error)
	UpdateVenue(ctx context.Context, id uint64, payload []byte, mode graph.Mode) (*dto.VenueDTO, error)
	DeleteVenue(ctx context.Context, id uint64) error
}

type VenueService struct {
	repo      repositories.VenueRepositoryInterface
	txManager repositories.TxManagerInterface
	assembler *graph.Assembler
	logger    *zap.Logger
}

func NewVenueService(
	repo repositories.VenueRepositoryInterface,
	txManager repositories.TxManagerInterface,
	assembler *graph.Assembler,
	logger *zap.Logger,
) VenueServiceInterface {
	return &VenueService{repo: repo, txManager: txManager, assembler: assembler, logger: logger}
}

func applyVenue(v *entities.Venue, doc *graph.Document) {
	setString(doc, "name", &v.Name)
	setString(doc, "address", &v.Address)
	setString(doc, "city", &v.City)
	setString(doc, "state", &v.State)
}

func (s *VenueService) GetVenues(ctx context.Context, filter types.Filter) (*dto.PaginatedResponse[dto.VenueDTO], error) {
	venues, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list venues", zap.Error(err))
		return nil, err
	}
	list := make([]dto.VenueDTO, 0, len(venues))
	for _, v := range venues {
		list = append(list, dto.NewVenueDTO(v))
	}
	return &dto.PaginatedResponse[dto.VenueDTO]{List: list, Total: total}, nil
}

func (s *VenueService) FindVenue(ctx context.Context, id uint64) (*dto.VenueDTO, error) {
	v, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewVenueDTO(v)
	return &out, nil
}

func (s *VenueService) CreateVenue(ctx context.Context, payload []byte) (*dto.VenueDTO, error) {
	doc, err := s.assembler.Decode(venueSchema, payload, graph.Create)
	if err != nil {
		return nil, err
	}

	var v entities.Venue
	applyVenue(&v, doc)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.repo.Create(ctx, tx, v)
		if err != nil {
			return err
		}
		v.ID = id
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create venue", zap.Error(err))
		return nil, err
	}

	out := dto.NewVenueDTO(&v)
	return &out, nil
}

func (s *VenueService) UpdateVenue(ctx context.Context, id uint64, payload []byte, mode graph.Mode) (*dto.VenueDTO, error) {
	v, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.assembler.Decode(venueSchema, payload, mode)
	if err != nil {
		return nil, err
	}
	applyVenue(v, doc)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Update(ctx, tx, *v)
	})
	if err != nil {
		s.logger.Error("failed to update venue", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	out := dto.NewVenueDTO(v)
	return &out, nil
}

func (s *VenueService) DeleteVenue(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		s.logger.Warn("failed to delete venue", zap.Uint64("id", id), zap.Error(err))
	}
	return err
}
