package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/authz"
	"event-rental/internal/dto"
	"event-rental/internal/services"
	"event-rental/pkg/api"
	apperrors "event-rental/pkg/errors"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewInvalidInputError("malformed login payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	tokens, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne(c, http.StatusOK, "authenticated", tokens)
}

func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewInvalidInputError("malformed refresh payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	tokens, err := ctrl.authService.RefreshToken(c.Request().Context(), payload.RefreshToken)
	if err != nil {
		ctrl.logger.Info("token refresh rejected", zap.Error(err))
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne(c, http.StatusOK, "tokens refreshed", tokens)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	principal := authz.PrincipalFrom(c.Request().Context())
	if principal == nil {
		ctrl.logger.Error("protected route reached without a principal")
		return api.ErrorResponse(c, apperrors.ErrUnauthorized)
	}

	me, err := ctrl.authService.Me(c.Request().Context(), principal.EmployeeID)
	if err != nil {
		ctrl.logger.Error("failed to load current employee", zap.Uint64("employee_id", principal.EmployeeID), zap.Error(err))
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne(c, http.StatusOK, "current employee", me)
}
