package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/kevykibbz/beatrice-cherono-foundation-sub001/docs" // swagger docs

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/cache"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/config"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/db"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/handler"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/logger"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/repository"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/router"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/service"
)

// @title Beatrice Cherono Foundation API
// @version 1.0
// @description Marketing and donation backend with testimonial moderation, admin panel and audit trail.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment)

	e := echo.New()
	// Debug mode makes echo's error handler include the underlying error
	// detail in responses; production keeps the generic message only.
	e.Debug = !cfg.IsProduction()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Permission{},
		&model.Testimonial{},
		&model.Activity{},
		&model.Category{},
		&model.CarouselImage{},
		&model.Setting{},
		&model.Donation{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	testimonialRepo := repository.NewTestimonialRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	carouselRepo := repository.NewCarouselRepository(gormDB)
	settingRepo := repository.NewSettingRepository(gormDB)
	donationRepo := repository.NewDonationRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	gate := auth.NewGate(userRepo)

	// Services
	activityService := service.NewActivityService(activityRepo, gate, log)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, activityService, log)
	testimonialService := service.NewTestimonialService(testimonialRepo, activityService, gate, cacheClient, cfg.ListCacheTTL, log)
	categoryService := service.NewCategoryService(categoryRepo, activityService, gate)
	carouselService := service.NewCarouselService(carouselRepo, activityService, gate)
	settingService := service.NewSettingService(settingRepo, activityService, gate, cacheClient, cfg.ListCacheTTL, log)
	donationService := service.NewDonationService(donationRepo, activityService, gate)
	userService := service.NewUserService(userRepo, activityService, gate)

	// Handlers
	router.Register(e, cfg, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Testimonial: handler.NewTestimonialHandler(testimonialService, gate),
		Activity:    handler.NewActivityHandler(activityService, gate),
		Category:    handler.NewCategoryHandler(categoryService, gate),
		Carousel:    handler.NewCarouselHandler(carouselService, gate),
		Setting:     handler.NewSettingHandler(settingService, gate),
		Donation:    handler.NewDonationHandler(donationService, gate),
		User:        handler.NewUserHandler(userService, gate),
	})

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("server starting")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
