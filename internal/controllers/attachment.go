package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"event-rental/internal/entities"
	"event-rental/internal/services"
	"event-rental/pkg/api"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/utils"
)

// AttachmentController serves event photos or event files, chosen by kind.
type AttachmentController struct {
	attachmentService services.AttachmentServiceInterface
	kind              entities.EventAttachmentKind
	logger            *zap.Logger
}

func NewAttachmentController(attachmentService services.AttachmentServiceInterface, kind entities.EventAttachmentKind, logger *zap.Logger) *AttachmentController {
	return &AttachmentController{
		attachmentService: attachmentService,
		kind:              kind,
		logger:            logger.With(zap.String("kind", string(kind))),
	}
}

// GetAttachments accepts ?event=<id> to list the attachments of one event.
func (c *AttachmentController) GetAttachments(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	var eventID uint64
	if raw := ctx.QueryParam("event"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return api.ErrorResponse(ctx, apperrors.NewInvalidInputError("event must be a positive integer"))
		}
		eventID = id
	}

	res, err := c.attachmentService.GetAttachments(ctx.Request().Context(), c.kind, eventID, filter)
	if err != nil {
		c.logger.Error("failed to list attachments", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "event "+string(c.kind)+"s", res.List, res.Total, filter.Page, filter.Limit)
}

func (c *AttachmentController) FindAttachment(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.attachmentService.FindAttachment(ctx.Request().Context(), c.kind, id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "event "+string(c.kind), res)
}

func (c *AttachmentController) CreateAttachment(ctx echo.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return api.ErrorResponse(ctx, apperrors.NewInvalidInputError("expected multipart/form-data"))
	}

	res, err := c.attachmentService.CreateAttachment(ctx.Request().Context(), c.kind, form)
	if err != nil {
		c.logger.Warn("attachment not created", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "event "+string(c.kind)+" uploaded", res)
}

func (c *AttachmentController) UpdateAttachment(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	form, err := ctx.MultipartForm()
	if err != nil {
		return api.ErrorResponse(ctx, apperrors.NewInvalidInputError("expected multipart/form-data"))
	}

	res, err := c.attachmentService.UpdateAttachment(ctx.Request().Context(), c.kind, id, form, updateMode(ctx))
	if err != nil {
		c.logger.Warn("attachment not updated", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "event "+string(c.kind)+" updated", res)
}

func (c *AttachmentController) DeleteAttachment(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.attachmentService.DeleteAttachment(ctx.Request().Context(), c.kind, id); err != nil {
		c.logger.Warn("attachment not deleted", zap.Uint64("id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.NoContent(ctx)
}
