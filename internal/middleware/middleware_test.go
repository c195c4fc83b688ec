package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/pkg/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T) (*echo.Echo, *jwt.Service) {
	t.Helper()
	tokens := jwt.New("test-secret", time.Hour)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, UserID(c))
	}, Auth(tokens))
	return e, tokens
}

func TestAuth_ValidToken(t *testing.T) {
	e, tokens := newAuthServer(t)
	token, err := tokens.GenerateToken("user-7")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-7", rec.Body.String())
}

func TestAuth_Rejects(t *testing.T) {
	e, _ := newAuthServer(t)
	otherToken, err := jwt.New("other-secret", time.Hour).GenerateToken("user-7")
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic dXNlcjpwYXNz",
		"empty token":    "Bearer ",
		"bad signature":  "Bearer " + otherToken,
		"garbage":        "Bearer abc.def.ghi",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set(echo.HeaderAuthorization, header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestUserID_Unauthenticated(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, UserID(c))

	SetUserID(c, "user-1")
	assert.Equal(t, "user-1", UserID(c))
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody dto.ErrorResponse
	}{
		{
			name:     "http error with string",
			err:      echo.NewHTTPError(http.StatusNotFound, "booking not found"),
			wantCode: http.StatusNotFound,
			wantBody: dto.ErrorResponse{Message: "booking not found"},
		},
		{
			name: "http error with body",
			err: echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
				Message:             "room is already booked",
				ConflictingBookings: []string{"b-1"},
			}),
			wantCode: http.StatusBadRequest,
			wantBody: dto.ErrorResponse{Message: "room is already booked", ConflictingBookings: []string{"b-1"}},
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantBody: dto.ErrorResponse{Message: "boom"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tc.err, c)

			assert.Equal(t, tc.wantCode, rec.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantBody, body)
		})
	}
}

type sample struct {
	Room   string   `json:"room" validate:"required"`
	Guests int      `json:"numberOfGuests" validate:"gt=0"`
	Price  *float64 `json:"totalPrice" validate:"omitempty,gte=0"`
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&sample{Room: "room-1", Guests: 2}))

	negative := -1.0
	err := v.Validate(&sample{Guests: 0, Price: &negative})
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	msg, _ := he.Message.(string)
	assert.Contains(t, msg, "room is required")
	assert.Contains(t, msg, "numberOfGuests must be greater than 0")
	assert.Contains(t, msg, "totalPrice must be at least 0")
}
