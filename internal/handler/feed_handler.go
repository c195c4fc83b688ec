package handler

import (
	"log"
	"net/http"

	"github.com/Eursukkul/hotel-booking/internal/middleware"
	"github.com/Eursukkul/hotel-booking/internal/notification"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler streams booking events over a websocket. Browsers cannot set
// headers on the upgrade request, so the token travels in the query string.
type FeedHandler struct {
	hub    *notification.Hub
	tokens middleware.TokenValidator
}

func NewFeedHandler(hub *notification.Hub, tokens middleware.TokenValidator) *FeedHandler {
	return &FeedHandler{hub: hub, tokens: tokens}
}

func (h *FeedHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/bookings", h.Subscribe)
}

func (h *FeedHandler) Subscribe(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "token is required")
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("[Feed] upgrade failed for user %s: %v", claims.UserID(), err)
		return nil
	}

	h.hub.Serve(conn)
	return nil
}
