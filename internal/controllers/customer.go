package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/services"
	"event-rental/pkg/api"
	"event-rental/pkg/utils"
)

type CustomerController struct {
	customerService services.CustomerServiceInterface
	logger       *zap.Logger
}

func NewCustomerController(customerService services.CustomerServiceInterface, logger *zap.Logger) *CustomerController {
	return &CustomerController{customerService: customerService, logger: logger}
}

func (c *CustomerController) GetCustomers(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	res, err := c.customerService.GetCustomers(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("failed to list clients", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "clients", res.List, res.Total, filter.Page, filter.Limit)
}

func (c *CustomerController) FindCustomer(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.customerService.FindCustomer(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "client", res)
}

func (c *CustomerController) CreateCustomer(ctx echo.Context) error {
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.customerService.CreateCustomer(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("client not created", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "client created", res)
}

func (c *CustomerController) UpdateCustomer(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.customerService.UpdateCustomer(ctx.Request().Context(), id, payload, updateMode(ctx))
	if err != nil {
		c.logger.Warn("client not updated", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "client updated", res)
}

func (c *CustomerController) DeleteCustomer(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.customerService.DeleteCustomer(ctx.Request().Context(), id); err != nil {
		c.logger.Warn("client not deleted", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.NoContent(ctx)
}
