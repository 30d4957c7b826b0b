package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/services"
	"event-rental/pkg/api"
	"event-rental/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	exportService    services.InventoryExportServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	equipmentService services.EquipmentServiceInterface,
	exportService services.InventoryExportServiceInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		exportService:    exportService,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipment(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	res, err := c.equipmentService.GetEquipment(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("failed to list equipment", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "equipment", res.List, res.Total, filter.Page, filter.Limit)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "equipment", res)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("equipment not created", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "equipment created", res)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	payload, err := readPayload(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, payload, updateMode(ctx))
	if err != nil {
		c.logger.Warn("equipment not updated", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "equipment updated", res)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), id); err != nil {
		c.logger.Warn("equipment not deleted", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.NoContent(ctx)
}

// ExportEquipment streams the inventory as an XLSX workbook. The search
// query parameter narrows the rows like the list endpoint.
func (c *EquipmentController) ExportEquipment(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	// buffered so a failed query still gets a JSON error
	var buf bytes.Buffer
	if err := c.exportService.WriteWorkbook(ctx.Request().Context(), filter, &buf); err != nil {
		c.logger.Error("inventory export failed", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	fileName := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
