package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/authz"
	"event-rental/pkg/api"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/service"
)

// PrincipalLoader turns a token subject into the current principal.
type PrincipalLoader interface {
	Load(ctx context.Context, employeeID uint64) (*authz.Principal, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	principals PrincipalLoader
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, principals PrincipalLoader, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		principals: principals,
		logger:     logger,
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return parts[1], nil
}

// Auth requires a valid access token and stores the principal on the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			m.logger.Debug("rejected request without bearer token", zap.String("path", c.Path()))
			return api.ErrorResponse(c, err)
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("token validation failed", zap.Error(err))
			return api.ErrorResponse(c, err)
		}
		if claims.IsRefreshToken {
			m.logger.Warn("refresh token used for API access", zap.Uint64("employee_id", claims.EmployeeID))
			return api.ErrorResponse(c, apperrors.ErrTokenIsNotAccess)
		}

		ctx := c.Request().Context()
		principal, err := m.principals.Load(ctx, claims.EmployeeID)
		if err != nil {
			return api.ErrorResponse(c, err)
		}

		c.SetRequest(c.Request().WithContext(authz.WithPrincipal(ctx, principal)))
		return next(c)
	}
}

// RequireAccess checks the access table for resource before the handler runs.
func RequireAccess(gatekeeper *authz.Gatekeeper, resource string, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := authz.PrincipalFrom(c.Request().Context())
			method := c.Request().Method
			if err := gatekeeper.Authorize(principal, method, resource); err != nil {
				if principal != nil {
					logger.Info("access denied",
						zap.String("username", principal.Username),
						zap.String("role", string(principal.Role)),
						zap.String("method", method),
						zap.String("resource", resource),
					)
				}
				return api.ErrorResponse(c, err)
			}
			return next(c)
		}
	}
}
