package handler

import (
	"net/http"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type RoomHandler struct {
	catalog service.RoomCatalog
}

func NewRoomHandler(catalog service.RoomCatalog) *RoomHandler {
	return &RoomHandler{catalog: catalog}
}

func (h *RoomHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListRooms)
	g.GET("/:id", h.GetRoom)
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	room, err := h.catalog.GetRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.catalog.ListRooms(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = dto.ToRoomResponse(&rooms[i])
	}

	return c.JSON(http.StatusOK, resp)
}
