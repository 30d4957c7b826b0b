package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/entities"
	"event-rental/internal/services"
	"event-rental/pkg/api"
	"event-rental/pkg/utils"
)

// TaxonomyController serves one lookup table: equipment types, brands or models.
type TaxonomyController struct {
	taxonomyService services.TaxonomyServiceInterface
	kind            entities.TaxonomyKind
	logger          *zap.Logger
}

func NewTaxonomyController(taxonomyService services.TaxonomyServiceInterface, kind entities.TaxonomyKind, logger *zap.Logger) *TaxonomyController {
	return &TaxonomyController{taxonomyService: taxonomyService, kind: kind, logger: logger.With(zap.String("kind", string(kind)))}
}

func (c *TaxonomyController) GetItems(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	res, err := c.taxonomyService.GetItems(ctx.Request().Context(), c.kind, filter)
	if err != nil {
		c.logger.Error("failed to list taxonomy items", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, string(c.kind), res.List, res.Total, filter.Page, filter.Limit)
}

func (c *TaxonomyController) FindItem(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.taxonomyService.FindItem(ctx.Request().Context(), c.kind, id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, string(c.kind), res)
}

// CreateItem answers 201 whether the name was new or already present.
func (c *TaxonomyController) CreateItem(ctx echo.Context) error {
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.taxonomyService.CreateItem(ctx.Request().Context(), c.kind, payload)
	if err != nil {
		c.logger.Warn("taxonomy item not created", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, string(c.kind)+" saved", res)
}

func (c *TaxonomyController) UpdateItem(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.taxonomyService.UpdateItem(ctx.Request().Context(), c.kind, id, payload, updateMode(ctx))
	if err != nil {
		c.logger.Warn("taxonomy item not updated", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, string(c.kind)+" updated", res)
}

func (c *TaxonomyController) DeleteItem(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.taxonomyService.DeleteItem(ctx.Request().Context(), c.kind, id); err != nil {
		c.logger.Warn("taxonomy item not deleted", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.NoContent(ctx)
}
