package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/services"
	"event-rental/pkg/api"
	"event-rental/pkg/utils"
)

type EventController struct {
	eventService services.EventServiceInterface
	logger       *zap.Logger
}

func NewEventController(eventService services.EventServiceInterface, logger *zap.Logger) *EventController {
	return &EventController{eventService: eventService, logger: logger}
}

func (c *EventController) GetEvents(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	res, err := c.eventService.GetEvents(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("failed to list events", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "events", res.List, res.Total, filter.Page, filter.Limit)
}

func (c *EventController) FindEvent(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.eventService.FindEvent(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "event", res)
}

func (c *EventController) CreateEvent(ctx echo.Context) error {
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.eventService.CreateEvent(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("event not created", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "event created", res)
}

func (c *EventController) UpdateEvent(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.eventService.UpdateEvent(ctx.Request().Context(), id, payload, updateMode(ctx))
	if err != nil {
		c.logger.Warn("event not updated", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "event updated", res)
}

func (c *EventController) DeleteEvent(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.eventService.DeleteEvent(ctx.Request().Context(), id); err != nil {
		c.logger.Warn("event not deleted", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.NoContent(ctx)
}
