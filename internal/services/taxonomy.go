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

// TaxonomyServiceInterface serves equipment types, brands and models.
type TaxonomyServiceInterface interface {
	GetItems(ctx context.Context, kind entities.TaxonomyKind, filter types.Filter) (*dto.PaginatedResponse[dto.TaxonomyDTO], error)
	FindItem(ctx context.Context, kind entities.TaxonomyKind, id uint64) (*dto.TaxonomyDTO, error)
	// CreateItem is get-or-create by name.
	CreateItem(ctx context.Context, kind entities.TaxonomyKind, payload []byte) (*dto.TaxonomyDTO, error)
	UpdateItem(ctx context.Context, kind entities.TaxonomyKind, id uint64, payload []byte, mode graph.Mode) (*dto.TaxonomyDTO, error)
	DeleteItem(ctx context.Context, kind entities.TaxonomyKind, id uint64) error
}

type TaxonomyService struct {
	repo      repositories.TaxonomyRepositoryInterface
	resolver  TaxonomyResolverInterface
	txManager repositories.TxManagerInterface
	assembler *graph.Assembler
	logger    *zap.Logger
}

func NewTaxonomyService(
	repo repositories.TaxonomyRepositoryInterface,
	resolver TaxonomyResolverInterface,
	txManager repositories.TxManagerInterface,
	assembler *graph.Assembler,
	logger *zap.Logger,
) TaxonomyServiceInterface {
	return &TaxonomyService{repo: repo, resolver: resolver, txManager: txManager, assembler: assembler, logger: logger}
}

func (s *TaxonomyService) GetItems(ctx context.Context, kind entities.TaxonomyKind, filter types.Filter) (*dto.PaginatedResponse[dto.TaxonomyDTO], error) {
	items, total, err := s.repo.GetAll(ctx, kind, filter)
	if err != nil {
		s.logger.Error("failed to list taxonomy items", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	list := make([]dto.TaxonomyDTO, 0, len(items))
	for _, item := range items {
		list = append(list, dto.NewTaxonomyDTO(item))
	}
	return &dto.PaginatedResponse[dto.TaxonomyDTO]{List: list, Total: total}, nil
}

func (s *TaxonomyService) FindItem(ctx context.Context, kind entities.TaxonomyKind, id uint64) (*dto.TaxonomyDTO, error) {
	item, err := s.repo.FindByID(ctx, nil, kind, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewTaxonomyDTO(item)
	return &out, nil
}

func (s *TaxonomyService) CreateItem(ctx context.Context, kind entities.TaxonomyKind, payload []byte) (*dto.TaxonomyDTO, error) {
	doc, err := s.assembler.Decode(taxonomySchema, payload, graph.Create)
	if err != nil {
		return nil, err
	}
	var name string
	setString(doc, "name", &name)

	var item *entities.TaxonomyItem
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		item, _, err = s.resolver.ResolveOrCreate(ctx, tx, kind, name)
		return err
	})
	if err != nil {
		s.logger.Error("failed to resolve taxonomy item", zap.String("kind", string(kind)), zap.String("name", name), zap.Error(err))
		return nil, err
	}

	out := dto.NewTaxonomyDTO(item)
	return &out, nil
}

func (s *TaxonomyService) UpdateItem(ctx context.Context, kind entities.TaxonomyKind, id uint64, payload []byte, mode graph.Mode) (*dto.TaxonomyDTO, error) {
	item, err := s.repo.FindByID(ctx, nil, kind, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.assembler.Decode(taxonomySchema, payload, mode)
	if err != nil {
		return nil, err
	}
	setString(doc, "name", &item.Name)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Update(ctx, tx, *item)
	})
	if err != nil {
		s.logger.Warn("failed to rename taxonomy item", zap.String("kind", string(kind)), zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	out := dto.NewTaxonomyDTO(item)
	return &out, nil
}

func (s *TaxonomyService) DeleteItem(ctx context.Context, kind entities.TaxonomyKind, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, kind, id)
	})
	if err != nil {
		s.logger.Warn("failed to delete taxonomy item", zap.String("kind", string(kind)), zap.Uint64("id", id), zap.Error(err))
	}
	return err
}
