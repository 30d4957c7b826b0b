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

type CustomerServiceInterface interface {
	GetCustomers(ctx context.Context, filter types.Filter) (*dto.PaginatedResponse[dto.CustomerDTO], error)
	FindCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error)
	CreateCustomer(ctx context.Context, payload []byte) (*dto.CustomerDTO, error)
	UpdateCustomer(ctx context.Context, id uint64, payload []byte, mode graph.Mode) (*dto.CustomerDTO, error)
	// DeleteCustomer fails with ErrConflict while events reference the customer.
	DeleteCustomer(ctx context.Context, id uint64) error
}

type CustomerService struct {
	repo      repositories.CustomerRepositoryInterface
	txManager repositories.TxManagerInterface
	assembler *graph.Assembler
	logger    *zap.Logger
}

func NewCustomerService(
	repo repositories.CustomerRepositoryInterface,
	txManager repositories.TxManagerInterface,
	assembler *graph.Assembler,
	logger *zap.Logger,
) CustomerServiceInterface {
	return &CustomerService{repo: repo, txManager: txManager, assembler: assembler, logger: logger}
}

func applyCustomer(c *entities.Customer, doc *graph.Document) {
	setString(doc, "name", &c.Name)
	setNullString(doc, "phone", &c.Phone)
	setNullString(doc, "email", &c.Email)
	setNullString(doc, "company", &c.Company)
}

func (s *CustomerService) GetCustomers(ctx context.Context, filter types.Filter) (*dto.PaginatedResponse[dto.CustomerDTO], error) {
	customers, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list customers", zap.Error(err))
		return nil, err
	}
	list := make([]dto.CustomerDTO, 0, len(customers))
	for _, c := range customers {
		list = append(list, dto.NewCustomerDTO(c))
	}
	return &dto.PaginatedResponse[dto.CustomerDTO]{List: list, Total: total}, nil
}

func (s *CustomerService) FindCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error) {
	c, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewCustomerDTO(c)
	return &out, nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, payload []byte) (*dto.CustomerDTO, error) {
	doc, err := s.assembler.Decode(customerSchema, payload, graph.Create)
	if err != nil {
		return nil, err
	}

	var c entities.Customer
	applyCustomer(&c, doc)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.repo.Create(ctx, tx, c)
		if err != nil {
			return err
		}
		c.ID = id
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	out := dto.NewCustomerDTO(&c)
	return &out, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint64, payload []byte, mode graph.Mode) (*dto.CustomerDTO, error) {
	c, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.assembler.Decode(customerSchema, payload, mode)
	if err != nil {
		return nil, err
	}
	applyCustomer(c, doc)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Update(ctx, tx, *c)
	})
	if err != nil {
		s.logger.Error("failed to update customer", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	out := dto.NewCustomerDTO(c)
	return &out, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		s.logger.Warn("failed to delete customer", zap.Uint64("id", id), zap.Error(err))
	}
	return err
}
