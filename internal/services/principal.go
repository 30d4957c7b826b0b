package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"event-rental/internal/authz"
	"event-rental/internal/repositories"
	apperrors "event-rental/pkg/errors"
)

type PrincipalServiceInterface interface {
	// Load returns the principal for employeeID, or ErrUnauthorized when the
	// employee is gone or inactive.
	Load(ctx context.Context, employeeID uint64) (*authz.Principal, error)
	Invalidate(ctx context.Context, employeeID uint64)
}

type PrincipalService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	cache        repositories.CacheRepositoryInterface
	ttl          time.Duration
	logger       *zap.Logger
}

func NewPrincipalService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) PrincipalServiceInterface {
	return &PrincipalService{employeeRepo: employeeRepo, cache: cache, ttl: ttl, logger: logger}
}

func principalCacheKey(employeeID uint64) string {
	return fmt.Sprintf("principal:%d", employeeID)
}

func (s *PrincipalService) Load(ctx context.Context, employeeID uint64) (*authz.Principal, error) {
	key := principalCacheKey(employeeID)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var p authz.Principal
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return activeOnly(&p)
		}
		s.logger.Warn("dropping unreadable cached principal", zap.String("key", key))
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		// cache outage: fall through to the database
		s.logger.Warn("principal cache read failed", zap.Error(err))
	}

	employee, err := s.employeeRepo.FindByID(ctx, nil, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	p := authz.PrincipalFromEmployee(employee)
	if raw, err := json.Marshal(p); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.logger.Warn("principal cache write failed", zap.Error(err))
		}
	}
	return activeOnly(p)
}

func (s *PrincipalService) Invalidate(ctx context.Context, employeeID uint64) {
	if err := s.cache.Del(ctx, principalCacheKey(employeeID)); err != nil {
		s.logger.Warn("principal cache delete failed", zap.Error(err))
	}
}

func activeOnly(p *authz.Principal) (*authz.Principal, error) {
	if !p.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return p, nil
}
