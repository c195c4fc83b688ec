package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/labstack/echo/v4"
)

// httpError maps ledger errors onto HTTP statuses.
func httpError(err error) error {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
			Message:             conflict.Error(),
			ConflictingBookings: conflict.ConflictingIDs(),
		})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request timed out").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
