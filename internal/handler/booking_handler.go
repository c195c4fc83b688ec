package handler

import (
	"net/http"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/middleware"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc      service.BookingService
	enricher service.BookingEnricher
}

func NewBookingHandler(svc service.BookingService, enricher service.BookingEnricher) *BookingHandler {
	return &BookingHandler{svc: svc, enricher: enricher}
}

// RegisterRoutes mounts the booking routes on g. Everything except the
// availability query goes through auth.
func (h *BookingHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/availability", h.CheckAvailability)

	g.POST("", h.CreateBooking, auth)
	g.GET("", h.ListBookings, auth)
	g.GET("/:id", h.GetBooking, auth)
	g.PUT("/:id", h.UpdateBooking, auth)
	g.DELETE("/:id", h.DeleteBooking, auth)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	stay, err := req.Stay()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.NewBooking{
		UserID:     userID,
		RoomID:     req.RoomID,
		Stay:       stay,
		GuestCount: req.NumberOfGuests,
		TotalPrice: *req.TotalPrice,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	ctx := c.Request().Context()

	booking, err := h.svc.GetBooking(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	view, err := h.enricher.EnrichOne(ctx, booking)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingViewResponse(view))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()

	bookings, err := h.svc.ListBookings(ctx)
	if err != nil {
		return httpError(err)
	}

	views, err := h.enricher.Enrich(ctx, bookings)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.BookingResponse, len(views))
	for i := range views {
		resp[i] = dto.ToBookingViewResponse(&views[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), c.Param("id"), service.BookingChanges{
		RoomID:     req.RoomID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: req.NumberOfGuests,
		TotalPrice: req.TotalPrice,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	if err := h.svc.DeleteBooking(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) CheckAvailability(c echo.Context) error {
	var q dto.AvailabilityQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	stay, err := q.Stay()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	availability, err := h.svc.CheckAvailability(c.Request().Context(), q.RoomID, stay)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToAvailabilityResponse(availability))
}
