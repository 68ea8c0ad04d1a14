package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/config"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/handler"
)

// Handlers bundles every handler the router wires.
type Handlers struct {
	Auth        *handler.AuthHandler
	Testimonial *handler.TestimonialHandler
	Activity    *handler.ActivityHandler
	Category    *handler.CategoryHandler
	Carousel    *handler.CarouselHandler
	Setting     *handler.SettingHandler
	Donation    *handler.DonationHandler
	User        *handler.UserHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/google", h.Auth.GoogleSignIn)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/categories", h.Category.List)
	api.GET("/carousel", h.Carousel.List)
	api.GET("/settings", h.Setting.GetAll)
	api.POST("/donations", h.Donation.Create)

	// The listing accepts an optional token: admins may ask for the pending
	// queue, anonymous callers silently get approved entries only.
	api.GET("/testimonials", h.Testimonial.List, optionalJWT(cfg.JWTSecret))

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.POST("/testimonials", h.Testimonial.Submit)
	secured.PATCH("/testimonials/:id/approve", h.Testimonial.Approve)
	secured.DELETE("/testimonials/:id", h.Testimonial.Delete)

	secured.POST("/categories", h.Category.Create)
	secured.PUT("/categories/:id", h.Category.Update)
	secured.DELETE("/categories/:id", h.Category.Delete)

	secured.POST("/carousel", h.Carousel.Create)
	secured.PUT("/carousel/:id", h.Carousel.Update)
	secured.DELETE("/carousel/:id", h.Carousel.Delete)

	secured.PUT("/settings", h.Setting.Update)

	admin := secured.Group("/admin")
	admin.GET("/carousel", h.Carousel.ListAll)
	admin.GET("/activities", h.Activity.List)
	admin.GET("/donations", h.Donation.List)
	admin.GET("/donations/summary", h.Donation.Summary)
	admin.GET("/users", h.User.List)
	admin.PATCH("/users/:id/role", h.User.UpdateRole)
	admin.PUT("/users/:id/permissions", h.User.ReplacePermissions)
}

// optionalJWT parses a bearer token when present but lets anonymous
// requests through untouched.
func optionalJWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:             []byte(secret),
		TokenLookup:            "header:" + echo.HeaderAuthorization,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
