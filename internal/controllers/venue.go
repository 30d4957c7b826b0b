package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/services"
	"event-rental/pkg/api"
	"event-rental/pkg/utils"
)

type VenueController struct {
	venueService services.VenueServiceInterface
	logger       *zap.Logger
}

func NewVenueController(venueService services.VenueServiceInterface, logger *zap.Logger) *VenueController {
	return &VenueController{venueService: venueService, logger: logger}
}

func (c *VenueController) GetVenues(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	res, err := c.venueService.GetVenues(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("failed to list venues", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "venues", res.List, res.Total, filter.Page, filter.Limit)
}

func (c *VenueController) FindVenue(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.venueService.FindVenue(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "venue", res)
}

func (c *VenueController) CreateVenue(ctx echo.Context) error {
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.venueService.CreateVenue(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("venue not created", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "venue created", res)
}

func (c *VenueController) UpdateVenue(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.venueService.UpdateVenue(ctx.Request().Context(), id, payload, updateMode(ctx))
	if err != nil {
		c.logger.Warn("venue not updated", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "venue updated", res)
}

func (c *VenueController) DeleteVenue(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.venueService.DeleteVenue(ctx.Request().Context(), id); err != nil {
		c.logger.Warn("venue not deleted", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.NoContent(ctx)
}
