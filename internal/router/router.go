package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"eventbuddy/internal/auth"
	"eventbuddy/internal/config"
	"eventbuddy/internal/handler"
	"eventbuddy/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	eventHandler *handler.EventHandler,
	bookingHandler *handler.BookingHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/register-admin", authHandler.RegisterAdmin)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	api.GET("/events/upcoming", eventHandler.ListUpcomingEvents)
	api.GET("/events/past", eventHandler.ListPastEvents)
	api.GET("/events/:eventName", eventHandler.GetEvent)

	// Secured routes (require a non-blacklisted JWT)
	secured := api.Group("", JWTMiddleware(cfg.JWTSecret), TokenBlacklist(tokenStore))

	// Logout needs the access token so it can be blacklisted.
	secured.POST("/auth/logout", authHandler.Logout)

	// Admin-only routes
	admin := secured.Group("", requireRole(model.RoleAdmin))
	admin.POST("/events", eventHandler.CreateEvent)
	admin.PUT("/events/:id", eventHandler.UpdateEvent)
	admin.DELETE("/events/:id", eventHandler.DeleteEvent)
	admin.GET("/events", eventHandler.ListEvents)
	admin.DELETE("/users/:id", userHandler.DeleteUser)

	// User-only routes
	user := secured.Group("", requireRole(model.RoleUser))
	user.POST("/bookings", bookingHandler.CreateBooking)
	user.GET("/bookings", bookingHandler.ListBookings)
}

// JWTMiddleware verifies the bearer token and places a *jwt.Token with
// auth.Claims in the context under "user".
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})
}

// TokenBlacklist rejects access tokens that were revoked by logout.
// Must run after JWTMiddleware.
func TokenBlacklist(store auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			if claims.ID != "" {
				if revoked, _ := store.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID); revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}
			return next(c)
		}
	}
}

// requireRole aborts with 403 unless the JWT role claim matches one of
// the allowed roles.
func requireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || !allowed[claims.Role] {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
