package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"eventbuddy/internal/auth"
	"eventbuddy/internal/handler"
	"eventbuddy/internal/model"
	"eventbuddy/internal/router"
	"eventbuddy/internal/service"
)

// memoryTokenStore is an in-memory TokenStoreInterface for middleware tests.
type memoryTokenStore struct {
	refresh     map[string]struct{}
	blacklisted map[string]struct{}
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{
		refresh:     make(map[string]struct{}),
		blacklisted: make(map[string]struct{}),
	}
}

func (s *memoryTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email, role string, ttl time.Duration) error {
	s.refresh[tokenID] = struct{}{}
	return nil
}

func (s *memoryTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, string, error) {
	return 0, "", "", nil
}

func (s *memoryTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	delete(s.refresh, tokenID)
	return nil
}

func (s *memoryTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.blacklisted[tokenID] = struct{}{}
	return nil
}

func (s *memoryTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	_, ok := s.blacklisted[tokenID]
	return ok, nil
}

// stubBookingService records the email the handler resolved from the JWT.
type stubBookingService struct {
	lastEmail string
}

func (s *stubBookingService) BookEvent(ctx context.Context, userEmail, eventName string, seatsBooked int) (*model.Booking, error) {
	s.lastEmail = userEmail
	return &model.Booking{UserEmail: userEmail, EventName: eventName, SeatsBooked: seatsBooked}, nil
}

func (s *stubBookingService) GetUserBookings(ctx context.Context, userEmail string) ([]model.Booking, error) {
	s.lastEmail = userEmail
	return []model.Booking{{UserEmail: userEmail, EventName: "Conf", SeatsBooked: 2}}, nil
}

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newSecuredAPI(secret string, store *memoryTokenStore, bookings *stubBookingService, authSvc service.AuthService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}

	g := e.Group("/api", router.JWTMiddleware(secret), router.TokenBlacklist(store))
	g.GET("/bookings", handler.NewBookingHandler(bookings).ListBookings)
	if authSvc != nil {
		g.POST("/auth/logout", handler.NewAuthHandler(authSvc).Logout)
	}
	return e
}

func TestJWTMiddleware_ClaimsReachHandler(t *testing.T) {
	const secret = "test-secret"
	jwtService := auth.NewJWTService(secret)
	bookings := &stubBookingService{}
	e := newSecuredAPI(secret, newMemoryTokenStore(), bookings, nil)

	accessToken, err := jwtService.GenerateAccessToken(7, "a@x.com", model.RoleUser)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", bookings.lastEmail)
	assert.Contains(t, rec.Body.String(), "Conf")
}

func TestJWTMiddleware_RejectsBadTokens(t *testing.T) {
	const secret = "test-secret"
	e := newSecuredAPI(secret, newMemoryTokenStore(), &stubBookingService{}, nil)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := auth.NewJWTService("other-secret").GenerateAccessToken(7, "a@x.com", model.RoleUser)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogout_RevokesAccessToken(t *testing.T) {
	const secret = "test-secret"
	jwtService := auth.NewJWTService(secret)
	store := newMemoryTokenStore()
	authSvc := service.NewAuthService(nil, jwtService, store, nil)
	e := newSecuredAPI(secret, store, &stubBookingService{}, authSvc)

	accessToken, err := jwtService.GenerateAccessToken(7, "a@x.com", model.RoleUser)
	assert.NoError(t, err)
	_, refreshToken, err := jwtService.GenerateRefreshToken(7, "a@x.com", model.RoleUser)
	assert.NoError(t, err)

	// The token works before logout.
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout",
		strings.NewReader(`{"refresh_token":"`+refreshToken+`"}`))
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The same access token is now blacklisted.
	req = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
