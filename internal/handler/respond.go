package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/lagunartea/club-ledger/internal/booking"
    "github.com/lagunartea/club-ledger/internal/repository"
)

// respondError maps service errors onto JSON error responses:
// validation 400, missing record 404, duplicate 409, anything else 500.
func respondError(c echo.Context, log *zap.Logger, err error) error {
    var ve *booking.ValidationError
    switch {
    case errors.As(err, &ve):
        body := echo.Map{"error": ve.Message}
        if ve.Field != "" {
            body["field"] = ve.Field
        }
        return c.JSON(http.StatusBadRequest, body)
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "already exists"})
    }
    if log != nil {
        log.Error("request failed",
            zap.String("method", c.Request().Method),
            zap.String("path", c.Path()),
            zap.Error(err))
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage unavailable, try again"})
}
