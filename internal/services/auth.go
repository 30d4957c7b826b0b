package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"event-rental/internal/dto"
	"event-rental/internal/entities"
	"event-rental/internal/repositories"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/metrics"
	"event-rental/pkg/service"
	"event-rental/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Me(ctx context.Context, employeeID uint64) (*dto.MeDTO, error)
}

type AuthService struct {
	employeeRepo     repositories.EmployeeRepositoryInterface
	cache            repositories.CacheRepositoryInterface
	jwtService       service.JWTService
	principals       PrincipalServiceInterface
	metrics          *metrics.AuthMetrics
	maxLoginAttempts int
	lockoutDuration  time.Duration
	logger           *zap.Logger
}

func NewAuthService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	principals PrincipalServiceInterface,
	m *metrics.AuthMetrics,
	maxLoginAttempts int,
	lockoutDuration time.Duration,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		employeeRepo:     employeeRepo,
		cache:            cache,
		jwtService:       jwtService,
		principals:       principals,
		metrics:          m,
		maxLoginAttempts: maxLoginAttempts,
		lockoutDuration:  lockoutDuration,
		logger:           logger,
	}
}

func loginAttemptsKey(username string) string {
	return "auth:attempts:" + username
}

func (s *AuthService) isLocked(ctx context.Context, username string) bool {
	if s.maxLoginAttempts <= 0 {
		return false
	}
	raw, err := s.cache.Get(ctx, loginAttemptsKey(username))
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("login attempt counter unavailable", zap.Error(err))
		}
		return false
	}
	n, _ := strconv.Atoi(raw)
	return n >= s.maxLoginAttempts
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	key := loginAttemptsKey(username)
	n, err := s.cache.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("failed to count login attempt", zap.Error(err))
		return
	}
	if n == 1 {
		if _, err := s.cache.Expire(ctx, key, s.lockoutDuration); err != nil {
			s.logger.Warn("failed to set login attempt expiry", zap.Error(err))
		}
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	if s.isLocked(ctx, payload.Username) {
		s.metrics.RecordLogin("locked")
		return nil, apperrors.ErrTooManyAttempts
	}

	employee, err := s.employeeRepo.FindByUsername(ctx, nil, payload.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if employee == nil || !employee.IsActive || utils.ComparePasswords(employee.Password, payload.Password) != nil {
		s.recordFailure(ctx, payload.Username)
		s.metrics.RecordLogin("invalid")
		s.logger.Warn("failed login", zap.String("username", payload.Username))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cache.Del(ctx, loginAttemptsKey(payload.Username)); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}
	s.principals.Invalidate(ctx, employee.ID)
	s.metrics.RecordLogin("success")

	return s.issue(employee)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	employee, err := s.employeeRepo.FindByID(ctx, nil, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !employee.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return s.issue(employee)
}

func (s *AuthService) Me(ctx context.Context, employeeID uint64) (*dto.MeDTO, error) {
	employee, err := s.employeeRepo.FindByID(ctx, nil, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	out := dto.NewMeDTO(employee)
	return &out, nil
}

func (s *AuthService) issue(e *entities.Employee) (*dto.TokenPairDTO, error) {
	access, refresh, err := s.jwtService.GenerateTokens(e.ID, e.Username, string(e.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to sign tokens: %w", err)
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}
