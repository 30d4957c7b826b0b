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

type EquipmentServiceInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) (*dto.PaginatedResponse[dto.EquipmentDTO], error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload []byte) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload []byte, mode graph.Mode) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	repo      repositories.EquipmentRepositoryInterface
	txManager repositories.TxManagerInterface
	assembler *graph.Assembler
	logger    *zap.Logger
}

func NewEquipmentService(
	repo repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	assembler *graph.Assembler,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{repo: repo, txManager: txManager, assembler: assembler, logger: logger}
}

// applyEquipment copies present fields and re-derives the uid.
func applyEquipment(e *entities.Equipment, doc *graph.Document, res *graph.Resolved) {
	setRef(res, "type", &e.TypeID)
	setRef(res, "brand", &e.BrandID)
	setRef(res, "model", &e.ModelID)
	setInt(doc, "number", &e.Number)
	setNullString(doc, "serial_number", &e.SerialNumber)
	e.RefreshUID()
}

func (s *EquipmentService) GetEquipment(ctx context.Context, filter types.Filter) (*dto.PaginatedResponse[dto.EquipmentDTO], error) {
	units, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list equipment", zap.Error(err))
		return nil, err
	}
	list := make([]dto.EquipmentDTO, 0, len(units))
	for _, e := range units {
		list = append(list, dto.NewEquipmentDTO(e))
	}
	return &dto.PaginatedResponse[dto.EquipmentDTO]{List: list, Total: total}, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	e, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewEquipmentDTO(e)
	return &out, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload []byte) (*dto.EquipmentDTO, error) {
	doc, err := s.assembler.Decode(equipmentSchema, payload, graph.Create)
	if err != nil {
		return nil, err
	}

	var created *entities.Equipment
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		res, err := s.assembler.Resolve(ctx, tx, equipmentSchema, doc)
		if err != nil {
			return err
		}

		var e entities.Equipment
		applyEquipment(&e, doc, res)

		id, err := s.repo.Create(ctx, tx, e)
		if err != nil {
			return err
		}
		created, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		s.logger.Warn("failed to create equipment", zap.Error(err))
		return nil, err
	}

	s.logger.Info("equipment created", zap.Uint64("id", created.ID), zap.String("uid", created.UID))
	out := dto.NewEquipmentDTO(created)
	return &out, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload []byte, mode graph.Mode) (*dto.EquipmentDTO, error) {
	e, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.assembler.Decode(equipmentSchema, payload, mode)
	if err != nil {
		return nil, err
	}

	var updated *entities.Equipment
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		res, err := s.assembler.Resolve(ctx, tx, equipmentSchema, doc)
		if err != nil {
			return err
		}

		applyEquipment(e, doc, res)

		if err := s.repo.Update(ctx, tx, *e); err != nil {
			return err
		}
		updated, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		s.logger.Warn("failed to update equipment", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	out := dto.NewEquipmentDTO(updated)
	return &out, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		s.logger.Warn("failed to delete equipment", zap.Uint64("id", id), zap.Error(err))
	}
	return err
}
