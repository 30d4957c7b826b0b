package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"event-rental/internal/graph"
	apperrors "event-rental/pkg/errors"
)

const maxPayloadBytes = 1 << 20

func parseID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(http.StatusNotFound, "not found", apperrors.ErrNotFound, nil)
	}
	return id, nil
}

// readPayload returns the raw JSON body. Schemas decode it themselves so
// that field presence survives.
func readPayload(ctx echo.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxPayloadBytes+1))
	if err != nil {
		return nil, apperrors.NewInvalidInputError("failed to read request body")
	}
	if len(body) > maxPayloadBytes {
		return nil, apperrors.NewHttpError(http.StatusRequestEntityTooLarge, "request body too large", nil, nil)
	}
	return body, nil
}

// updateMode maps PUT to a full update and PATCH to a partial one.
func updateMode(ctx echo.Context) graph.Mode {
	if ctx.Request().Method == http.MethodPatch {
		return graph.PartialUpdate
	}
	return graph.FullUpdate
}
