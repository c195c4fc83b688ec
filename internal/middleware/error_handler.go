package middleware

import (
	"net/http"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as a JSON body with a message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := dto.ErrorResponse{Message: err.Error()}

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			body.Message = m
		case dto.ErrorResponse:
			body = m
		case error:
			body.Message = m.Error()
		default:
			body.Message = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}
